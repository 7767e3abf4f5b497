package entities

import "time"

const (
	DefaultPauseReason = "Pausa iniciada"
	PauseReasonMaxLen  = 120
)

// Pause is a work stoppage logged against an order. It stays active until
// stopped; an order has at most one active pause.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI order_id-index: order_id
type Pause struct {
	ID        string     `json:"id"`
	OrderID   int64      `json:"order_id"`
	Reason    string     `json:"reason"`
	Note      string     `json:"note,omitempty"`
	StartedBy string     `json:"started_by,omitempty"`
	StoppedBy string     `json:"stopped_by,omitempty"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Active    bool       `json:"active"`
}

// Elapsed is the pause length, measured up to now while it is still active.
func (p Pause) Elapsed(now time.Time) time.Duration {
	end := now
	if p.EndedAt != nil {
		end = *p.EndedAt
	}
	if end.Before(p.StartedAt) {
		return 0
	}
	return end.Sub(p.StartedAt)
}
