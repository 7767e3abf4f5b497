package usecase

import (
	"errors"
	"sort"
	"strings"
	"time"

	"taller_flota/internal/domain/entities"

	"go.uber.org/zap"
)

var (
	ErrInvalidPlate = errors.New("invalid plate")
	ErrInvalidDate  = errors.New("invalid date")
	ErrForbidden    = errors.New("forbidden")
)

const defaultHistoryWindow = 30 * 24 * time.Hour

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolvePlate(raw string) (string, error) {
	plate := entities.NormalizePlate(raw)
	if !entities.ValidPlate(plate) {
		return "", ErrInvalidPlate
	}
	return plate, nil
}

// latestActive picks the vehicle's current order: the most recent booking
// among active statuses. ok is false when there is none.
func latestActive(orders []entities.WorkOrder) (entities.WorkOrder, bool) {
	var (
		best  entities.WorkOrder
		found bool
	)
	for _, o := range orders {
		if !o.Status.IsActive() {
			continue
		}
		if !found || newer(o, best) {
			best, found = o, true
		}
	}
	return best, found
}

func newer(a, b entities.WorkOrder) bool {
	if a.Date != b.Date {
		return a.Date > b.Date
	}
	if a.Time != b.Time {
		return a.Time > b.Time
	}
	return a.ID > b.ID
}

func sortNewestFirst(orders []entities.WorkOrder) {
	sort.SliceStable(orders, func(i, j int) bool { return newer(orders[i], orders[j]) })
}

func sortOldestFirst(orders []entities.WorkOrder) {
	sort.SliceStable(orders, func(i, j int) bool { return newer(orders[j], orders[i]) })
}

// resolveRange parses an optional [from, to] pair. Missing bounds default to
// the 30 days ending today; reversed bounds are swapped.
func resolveRange(from, to string, now time.Time) (string, string, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	end := now
	if to != "" {
		t, err := time.Parse(entities.DateLayout, to)
		if err != nil {
			return "", "", ErrInvalidDate
		}
		end = t
	}
	start := end.Add(-defaultHistoryWindow)
	if from != "" {
		t, err := time.Parse(entities.DateLayout, from)
		if err != nil {
			return "", "", ErrInvalidDate
		}
		start = t
	}
	if start.After(end) {
		start, end = end, start
	}
	return start.Format(entities.DateLayout), end.Format(entities.DateLayout), nil
}
