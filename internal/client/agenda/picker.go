package agenda

import (
	"context"
	"errors"
	"strings"
	"sync"

	"taller_flota/internal/client/api"

	"go.uber.org/zap"
)

var (
	ErrSlotOccupied = errors.New("el horario seleccionado ya está ocupado")
	ErrSlotUnknown  = errors.New("horario no disponible para la fecha y taller")
	ErrNotLoaded    = errors.New("seleccione fecha y taller")
	// ErrStaleLoad is returned by a Load whose response arrived after a newer
	// Load was issued; its slots were discarded.
	ErrStaleLoad = errors.New("slot load superseded")
)

type Source interface {
	Slots(ctx context.Context, date string, locationID int64) ([]api.Slot, error)
}

// Control is one rendered slot. Occupied slots are never Enabled.
type Control struct {
	Time     string
	Occupied bool
	Enabled  bool
	Selected bool
}

// Selection is the (date, workshop, time) triple as it was when the slot was
// picked.
type Selection struct {
	Date       string
	LocationID int64
	Time       string
}

// SlotPicker holds the slot grid for one (date, workshop). Each Load bumps a
// generation counter; only the response of the latest Load is applied.
type SlotPicker struct {
	source Source
	logger *zap.Logger

	mu         sync.Mutex
	generation uint64
	date       string
	locationID int64
	slots      []api.Slot
	loaded     bool
	selection  *Selection
}

func NewSlotPicker(source Source, logger *zap.Logger) *SlotPicker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotPicker{source: source, logger: logger}
}

// Load fetches the slots for date and locationID. The previous selection is
// cleared before the request goes out.
func (p *SlotPicker) Load(ctx context.Context, date string, locationID int64) error {
	date = strings.TrimSpace(date)

	p.mu.Lock()
	p.generation++
	gen := p.generation
	p.date, p.locationID = date, locationID
	p.slots, p.loaded, p.selection = nil, false, nil
	p.mu.Unlock()

	if date == "" || locationID <= 0 {
		return ErrNotLoaded
	}

	slots, err := p.source.Slots(ctx, date, locationID)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.generation {
		p.logger.Debug("discarding stale slots", zap.String("date", date), zap.Int64("location_id", locationID))
		return ErrStaleLoad
	}
	if err != nil {
		return err
	}
	p.slots = append([]api.Slot(nil), slots...)
	p.loaded = true
	return nil
}

// Controls renders the grid in server order.
func (p *SlotPicker) Controls() []Control {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Control, 0, len(p.slots))
	for _, s := range p.slots {
		out = append(out, Control{
			Time:     s.Time,
			Occupied: s.Occupied,
			Enabled:  !s.Occupied,
			Selected: p.selection != nil && p.selection.Time == s.Time,
		})
	}
	return out
}

// Select picks a free slot of the current grid.
func (p *SlotPicker) Select(t string) error {
	t = strings.TrimSpace(t)
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.loaded {
		return ErrNotLoaded
	}
	for _, s := range p.slots {
		if s.Time != t {
			continue
		}
		if s.Occupied {
			return ErrSlotOccupied
		}
		p.selection = &Selection{Date: p.date, LocationID: p.locationID, Time: s.Time}
		return nil
	}
	return ErrSlotUnknown
}

// Selection returns the picked slot, if any.
func (p *SlotPicker) Selection() (Selection, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selection == nil {
		return Selection{}, false
	}
	return *p.selection, true
}

func (p *SlotPicker) ClearSelection() {
	p.mu.Lock()
	p.selection = nil
	p.mu.Unlock()
}

// Reload fetches the grid again for the current date and workshop.
func (p *SlotPicker) Reload(ctx context.Context) error {
	p.mu.Lock()
	date, loc := p.date, p.locationID
	p.mu.Unlock()
	return p.Load(ctx, date, loc)
}
