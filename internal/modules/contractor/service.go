// README: Contractor service; snapshot reads, availability listing, and upserts.
package contractor

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"fieldops/internal/modules/geo"
	"fieldops/internal/types"
)

var (
	ErrNotFound   = errors.New("contractor not found")
	ErrBadRequest = errors.New("bad request")
)

// Storage is the persistence surface the service needs. *Store satisfies it.
type Storage interface {
	Get(ctx context.Context, id types.ID) (*Contractor, error)
	ListActiveByJobType(ctx context.Context, jobTypeID types.ID) ([]Contractor, error)
	ListActive(ctx context.Context) ([]Contractor, error)
	Upsert(ctx context.Context, c *Contractor) error
	Nearby(ctx context.Context, p types.Point, radiusMiles float64) ([]types.ID, error)
}

type Service struct {
	store Storage
	log   *zap.Logger
}

func NewService(store Storage, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Contractor, error) {
	if id == "" {
		return nil, ErrBadRequest
	}
	return s.store.Get(ctx, id)
}

func (s *Service) ListActiveByJobType(ctx context.Context, jobTypeID types.ID) ([]Contractor, error) {
	return s.store.ListActiveByJobType(ctx, jobTypeID)
}

// Availability returns the complete ordered list of slots on date able
// to host requiredHours for one contractor.
func (s *Service) Availability(ctx context.Context, id types.ID, date time.Time, requiredHours float64) ([]TimeSlot, error) {
	if requiredHours <= 0 {
		return nil, ErrBadRequest
	}
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return QualifyingSlots(*c, date, requiredHours), nil
}

func (s *Service) Upsert(ctx context.Context, c *Contractor) error {
	if c.ID == "" || c.JobTypeID == "" {
		return ErrBadRequest
	}
	if !c.Base.Valid() {
		return ErrBadRequest
	}
	if c.Rating < 0 || c.Rating > 5 {
		return ErrBadRequest
	}
	for _, entry := range c.WeeklySchedule {
		if entry.Weekday < time.Sunday || entry.Weekday > time.Saturday {
			return ErrBadRequest
		}
		for _, slot := range entry.Slots {
			if !slot.Valid() {
				return ErrBadRequest
			}
		}
	}
	return s.store.Upsert(ctx, c)
}

// Nearby returns active contractors within radiusMiles of p, closest
// first. The Redis GEO index is the fast path; when it is unavailable
// the active set is scanned and sorted by haversine distance instead.
func (s *Service) Nearby(ctx context.Context, p types.Point, radiusMiles float64) ([]Contractor, error) {
	if !p.Valid() || radiusMiles <= 0 {
		return nil, ErrBadRequest
	}

	ids, err := s.store.Nearby(ctx, p, radiusMiles)
	if err == nil {
		out := make([]Contractor, 0, len(ids))
		for _, id := range ids {
			c, err := s.store.Get(ctx, id)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					continue // index entry outlived the row
				}
				return nil, err
			}
			if c.Active {
				out = append(out, *c)
			}
		}
		return out, nil
	}
	s.log.Warn("geo index unavailable, falling back to scan", zap.Error(err))

	all, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Contractor, 0, len(all))
	for _, c := range all {
		if geo.DistanceMiles(p, c.Base) <= radiusMiles {
			out = append(out, c)
		}
	}
	geo.SortByDistance(out, func(c Contractor) float64 { return geo.DistanceMiles(p, c.Base) })
	return out, nil
}
