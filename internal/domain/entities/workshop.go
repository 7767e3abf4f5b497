package entities

import (
	"fmt"
	"time"
)

// Workshop is a service bay ("andén") inside a site.
type Workshop struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// Slot is one bookable intake hour.
type Slot struct {
	Time     string `json:"time"`
	Occupied bool   `json:"occupied"`
}

const (
	FirstSlotHour = 9
	LastSlotHour  = 18
	SlotStep      = time.Hour
)

// DaySlots returns the day's slot grid in chronological order, marking the
// times present in occupied.
func DaySlots(occupied map[string]bool) []Slot {
	slots := make([]Slot, 0, LastSlotHour-FirstSlotHour+1)
	for h := FirstSlotHour; h <= LastSlotHour; h++ {
		t := fmt.Sprintf("%02d:00", h)
		slots = append(slots, Slot{Time: t, Occupied: occupied[t]})
	}
	return slots
}
