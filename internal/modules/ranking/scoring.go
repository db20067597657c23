// README: Component score computation and the ranking order.
package ranking

import (
	"math"
	"sort"

	"fieldops/internal/modules/contractor"
)

const (
	maxScore = 100.0

	// maxServiceRadiusMiles is where the distance score floors at zero.
	maxServiceRadiusMiles = 25.0

	// availabilityPenaltyPerHour is deducted per hour between the
	// requested start and the closest feasible start.
	availabilityPenaltyPerHour = 10.0

	// feasibleFloor keeps any feasible slot strictly above the no-slot
	// score of zero, however large the temporal mismatch.
	feasibleFloor = 5.0

	maxRating = 5.0
)

// availabilityScore is maxScore for a slot that can start at the
// requested time, degrades linearly with the gap to the closest
// feasible start, and is zero when no slot can host the job.
func availabilityScore(best *contractor.TimeSlot, targetMin, requiredMin int) float64 {
	if best == nil {
		return 0
	}
	gapMin := startGapMinutes(*best, targetMin, requiredMin)
	score := maxScore - float64(gapMin)/60.0*availabilityPenaltyPerHour
	return math.Max(feasibleFloor, score)
}

// startGapMinutes is the distance between the requested start and the
// closest start inside the slot that still fits the duration. Zero when
// the job can begin exactly at the requested time.
func startGapMinutes(s contractor.TimeSlot, targetMin, requiredMin int) int {
	latestStart := s.EndMin - requiredMin
	closest := targetMin
	if closest < s.StartMin {
		closest = s.StartMin
	}
	if closest > latestStart {
		closest = latestStart
	}
	gap := closest - targetMin
	if gap < 0 {
		gap = -gap
	}
	return gap
}

// ratingScore maps a 0-5 rating linearly onto 0-100.
func ratingScore(rating float64) float64 {
	score := rating / maxRating * maxScore
	return math.Min(maxScore, math.Max(0, score))
}

// distanceScore decays linearly with distance and floors at zero at and
// beyond the maximum service radius.
func distanceScore(miles float64) float64 {
	if miles >= maxServiceRadiusMiles {
		return 0
	}
	if miles < 0 {
		miles = 0
	}
	return maxScore * (1 - miles/maxServiceRadiusMiles)
}

// scoreContractor combines availability, rating, and distance into one
// Score using the supplied weights. Pure; safe to call concurrently.
func scoreContractor(c contractor.Contractor, distanceMiles float64, req Request, w Weights) Score {
	requiredMin := int(math.Round(req.DurationHours * 60))
	best := contractor.BestSlot(c, req.Date, req.DurationHours)

	s := Score{
		ContractorID: c.ID,
		Availability: availabilityScore(best, req.TargetTimeMin, requiredMin),
		Rating:       ratingScore(c.Rating),
		Distance:     distanceScore(distanceMiles),
		BestSlot:     best,
	}
	s.Overall = w.Availability*s.Availability + w.Rating*s.Rating + w.Distance*s.Distance
	return s
}

// scored pairs a Score with what the final ordering and the result
// records need.
type scored struct {
	contractor    contractor.Contractor
	score         Score
	distanceMiles float64
	inputPos      int
}

// sortScored orders candidates for presentation. Feasibility is the
// primary key: a contractor with any usable slot outranks every
// contractor without one, whatever the weights say. Within each group
// the order is overall score, then rating score, then nearer distance,
// then stable input position.
func sortScored(items []scored) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.score.Feasible() != b.score.Feasible() {
			return a.score.Feasible()
		}
		if a.score.Overall != b.score.Overall {
			return a.score.Overall > b.score.Overall
		}
		if a.score.Rating != b.score.Rating {
			return a.score.Rating > b.score.Rating
		}
		if a.distanceMiles != b.distanceMiles {
			return a.distanceMiles < b.distanceMiles
		}
		return a.inputPos < b.inputPos
	})
}
