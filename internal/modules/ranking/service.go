// README: Ranking orchestrator; fans scoring out over workers and assembles results.
package ranking

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"fieldops/internal/metrics"
	"fieldops/internal/modules/contractor"
	"fieldops/internal/modules/geo"
	"fieldops/internal/modules/notify"
	"fieldops/internal/types"
)

var ErrBadRequest = errors.New("bad request")

// CandidateSource supplies the contractor snapshot. The contractor
// service satisfies it.
type CandidateSource interface {
	ListActiveByJobType(ctx context.Context, jobTypeID types.ID) ([]contractor.Contractor, error)
}

// NameSource resolves job type display names for enrichment.
type NameSource interface {
	GetName(ctx context.Context, id types.ID) (string, bool, error)
}

// Config tunes the orchestrator. Zero values fall back to sane
// defaults: one worker minimum, DefaultWeights for the weight set.
type Config struct {
	Workers        int
	DefaultWeights Weights
}

type Service struct {
	contractors CandidateSource
	jobTypes    NameSource
	distance    geo.Provider
	notifier    notify.Publisher
	log         *zap.Logger
	workers     int
	defaults    Weights
}

func NewService(
	contractors CandidateSource,
	jobTypes NameSource,
	distance geo.Provider,
	notifier notify.Publisher,
	log *zap.Logger,
	cfg Config,
) *Service {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	defaults := cfg.DefaultWeights
	if !defaults.Valid() {
		defaults = DefaultWeights
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Service{
		contractors: contractors,
		jobTypes:    jobTypes,
		distance:    distance,
		notifier:    notifier,
		log:         log,
		workers:     workers,
		defaults:    defaults,
	}
}

// Rank scores every active contractor of the requested job type and
// returns the top candidates in priority order. Identical inputs yield
// an identical ordered list.
func (s *Service) Rank(ctx context.Context, req Request) ([]Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	started := time.Now()

	weights := s.defaults
	if req.Weights != nil {
		weights = *req.Weights
	}

	if req.TopN <= 0 {
		metrics.RankingsServed.WithLabelValues("empty").Inc()
		return []Result{}, nil
	}

	candidates, err := s.contractors.ListActiveByJobType(ctx, req.JobTypeID)
	if err != nil {
		metrics.RankingsServed.WithLabelValues("error").Inc()
		return nil, err
	}
	if len(candidates) == 0 {
		metrics.RankingsServed.WithLabelValues("empty").Inc()
		return []Result{}, nil
	}

	items, err := s.scoreAll(ctx, candidates, req, weights)
	if err != nil {
		metrics.RankingsServed.WithLabelValues("cancelled").Inc()
		return nil, err
	}

	sortScored(items)
	if len(items) > req.TopN {
		items = items[:req.TopN]
	}

	jobTypeName := s.resolveJobTypeName(ctx, req.JobTypeID)

	results := make([]Result, len(items))
	for i, it := range items {
		results[i] = Result{
			ContractorID:  it.contractor.ID,
			DisplayID:     it.contractor.DisplayID,
			Name:          it.contractor.Name,
			JobTypeName:   jobTypeName,
			Rating:        it.contractor.Rating,
			Base:          it.contractor.Base,
			DistanceMiles: it.distanceMiles,
			BestSlot:      it.score.BestSlot,
			Score:         it.score,
		}
	}

	s.publishTop(ctx, req, results)

	metrics.RankingsServed.WithLabelValues("ok").Inc()
	metrics.RankingDuration.Observe(time.Since(started).Seconds())
	metrics.CandidatesScored.Add(float64(len(candidates)))
	return results, nil
}

// scoreAll fans per-contractor scoring out over s.workers goroutines.
// Scoring is pure, so each worker writes only its own result slots and
// no locking is needed. A cancelled context abandons the run without
// publishing partial results.
func (s *Service) scoreAll(ctx context.Context, candidates []contractor.Contractor, req Request, weights Weights) ([]scored, error) {
	items := make([]scored, len(candidates))

	workers := s.workers
	if workers > len(candidates) {
		workers = len(candidates)
	}

	var wg sync.WaitGroup
	idxCh := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idxCh {
				c := candidates[i]
				d := s.distanceTo(ctx, req.Location, c.Base)
				items[i] = scored{
					contractor:    c,
					score:         scoreContractor(c, d, req, weights),
					distanceMiles: d,
					inputPos:      i,
				}
			}
		}()
	}

feed:
	for i := range candidates {
		select {
		case <-ctx.Done():
			break feed
		case idxCh <- i:
		}
	}
	close(idxCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// distanceTo asks the configured provider and falls back to in-process
// haversine when a remote provider fails; a routing hiccup must not
// fail the ranking.
func (s *Service) distanceTo(ctx context.Context, from, to types.Point) float64 {
	d, err := s.distance.Distance(ctx, from, to)
	if err != nil {
		s.log.Warn("distance provider failed, using haversine", zap.Error(err))
		return geo.DistanceMiles(from, to)
	}
	return d
}

func (s *Service) resolveJobTypeName(ctx context.Context, id types.ID) string {
	name, ok, err := s.jobTypes.GetName(ctx, id)
	if err != nil {
		s.log.Warn("job type lookup failed", zap.String("job_type_id", string(id)), zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	return name
}

// publishTop emits the leading candidate to the notifier boundary.
// Fire-and-forget: delivery failures are logged, never surfaced.
func (s *Service) publishTop(ctx context.Context, req Request, results []Result) {
	if len(results) == 0 || !results[0].Score.Feasible() {
		return
	}
	top := results[0]
	d := notify.Decision{
		JobTypeID:    req.JobTypeID,
		ContractorID: top.ContractorID,
		Date:         req.Date.Format("2006-01-02"),
		OverallScore: top.Score.Overall,
	}
	if top.BestSlot != nil {
		d.SlotStart = contractor.FormatClock(top.BestSlot.StartMin)
	}
	if err := s.notifier.PublishAssignment(ctx, d); err != nil {
		s.log.Warn("assignment publish failed", zap.Error(err))
	}
}

func validate(req Request) error {
	if req.DurationHours <= 0 {
		return ErrBadRequest
	}
	if !req.Location.Valid() {
		return ErrBadRequest
	}
	if req.TargetTimeMin < 0 || req.TargetTimeMin >= 24*60 {
		return ErrBadRequest
	}
	if req.Weights != nil && !req.Weights.Valid() {
		return ErrBadRequest
	}
	return nil
}
