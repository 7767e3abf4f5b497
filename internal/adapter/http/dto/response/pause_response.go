package response

import (
	"time"

	"taller_flota/internal/domain/entities"
)

type PauseResponse struct {
	ID             string     `json:"id"`
	OrderID        int64      `json:"order_id"`
	Reason         string     `json:"reason"`
	Note           string     `json:"note,omitempty"`
	StartedBy      string     `json:"started_by,omitempty"`
	StoppedBy      string     `json:"stopped_by,omitempty"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
	Active         bool       `json:"active"`
	ElapsedSeconds int64      `json:"elapsed_seconds"`
}

func FromPause(p entities.Pause, now time.Time) PauseResponse {
	return PauseResponse{
		ID:             p.ID,
		OrderID:        p.OrderID,
		Reason:         p.Reason,
		Note:           p.Note,
		StartedBy:      p.StartedBy,
		StoppedBy:      p.StoppedBy,
		StartedAt:      p.StartedAt,
		EndedAt:        p.EndedAt,
		Active:         p.Active,
		ElapsedSeconds: int64(p.Elapsed(now) / time.Second),
	}
}

type PauseActionResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Pause   PauseResponse `json:"pause"`
}

type PauseListResponse struct {
	Success bool            `json:"success"`
	Items   []PauseResponse `json:"items"`
}

func FromPauses(pauses []entities.Pause, now time.Time) []PauseResponse {
	out := make([]PauseResponse, 0, len(pauses))
	for _, p := range pauses {
		out = append(out, FromPause(p, now))
	}
	return out
}
