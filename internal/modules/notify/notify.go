// README: Assignment-decision publishing boundary.
package notify

import (
	"context"

	"fieldops/internal/types"
)

// Decision is the outcome the ranking engine hands to downstream
// consumers (assignment UIs, messaging). The engine itself stays pure;
// delivery is this boundary's problem.
type Decision struct {
	JobTypeID    types.ID `json:"job_type_id"`
	ContractorID types.ID `json:"contractor_id"`
	Date         string   `json:"date"`
	SlotStart    string   `json:"slot_start,omitempty"`
	OverallScore float64  `json:"overall_score"`
}

type Publisher interface {
	PublishAssignment(ctx context.Context, d Decision) error
}

// Nop discards decisions; used in tests and when Redis is not wired.
type Nop struct{}

func (Nop) PublishAssignment(context.Context, Decision) error { return nil }
