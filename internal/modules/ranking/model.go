// README: Ranking request, scoring weights, and result records.
package ranking

import (
	"math"
	"time"

	"fieldops/internal/modules/contractor"
	"fieldops/internal/types"
)

// Weights are the relative importance of the three score components.
// They must be non-negative and sum to 1. Availability carries the
// largest default share: a contractor who cannot take the job should
// never outrank one who can.
type Weights struct {
	Availability float64
	Rating       float64
	Distance     float64
}

var DefaultWeights = Weights{Availability: 0.5, Rating: 0.3, Distance: 0.2}

const weightSumTolerance = 1e-6

func (w Weights) Sum() float64 {
	return w.Availability + w.Rating + w.Distance
}

func (w Weights) Valid() bool {
	if w.Availability < 0 || w.Rating < 0 || w.Distance < 0 {
		return false
	}
	return math.Abs(w.Sum()-1.0) <= weightSumTolerance
}

// Request describes one ranking run. TopN <= 0 yields an empty result;
// callers that want the default apply DefaultTopN before building the
// request.
type Request struct {
	JobTypeID     types.ID
	Date          time.Time
	TargetTimeMin int // requested start, minutes from midnight
	Location      types.Point
	DurationHours float64
	Weights       *Weights // nil means DefaultWeights
	TopN          int
}

const DefaultTopN = 5

// Score is the per-contractor breakdown. Components are on a 0-100
// scale; Overall is their weighted sum. BestSlot nil signals that no
// feasible slot exists on the target date.
type Score struct {
	ContractorID types.ID
	Availability float64
	Rating       float64
	Distance     float64
	Overall      float64
	BestSlot     *contractor.TimeSlot
}

// Feasible reports whether the contractor can host the job at all.
func (s Score) Feasible() bool {
	return s.BestSlot != nil
}

// Result is the presentation-ready record returned to callers. Computed
// per request, never persisted.
type Result struct {
	ContractorID  types.ID
	DisplayID     string
	Name          string
	JobTypeName   string
	Rating        float64
	Base          types.Point
	DistanceMiles float64
	BestSlot      *contractor.TimeSlot
	Score         Score
}
