package workorder

import "context"

// Prompt is what the panel asks the operator before a status change.
type Prompt struct {
	Title       string
	Message     string
	Placeholder string
}

type DialogResult struct {
	Confirmed bool
	Text      string
}

// Dialog collects input and shows notices. Terminal, web and test front-ends
// each provide their own.
type Dialog interface {
	Ask(ctx context.Context, p Prompt) (DialogResult, error)
	Notify(ctx context.Context, level Level, message string)
}

type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// Refresher is told to reload whatever view hosts the panel after a
// successful change.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type RefresherFunc func(ctx context.Context) error

func (f RefresherFunc) Refresh(ctx context.Context) error { return f(ctx) }
