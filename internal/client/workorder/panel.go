package workorder

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"taller_flota/internal/client/api"
	"taller_flota/internal/domain/entities"

	"go.uber.org/zap"
)

var (
	ErrCommentRequired      = errors.New("debe ingresar un comentario")
	ErrTransitionNotAllowed = errors.New("transición de estado no permitida")
	ErrCancelled            = errors.New("cambio de estado cancelado")
	ErrNoDialog             = errors.New("no dialog configured")
	ErrBusy                 = errors.New("status change already in progress")
)

// Transport is the slice of the API client the panel needs.
type Transport interface {
	ChangeStatus(ctx context.Context, orderKey, status, comment string) (*api.Order, error)
}

// Panel drives the status change of one work order. Options are computed
// from the shared transition table; an unknown status yields none and the
// panel stays hidden.
type Panel struct {
	client    Transport
	dialog    Dialog
	refresher Refresher
	logger    *zap.Logger

	mu       sync.Mutex
	orderKey string
	status   entities.WorkOrderStatus
	busy     bool
}

type Option func(*Panel)

func WithDialog(d Dialog) Option { return func(p *Panel) { p.dialog = d } }

func WithRefresher(r Refresher) Option { return func(p *Panel) { p.refresher = r } }

func WithLogger(l *zap.Logger) Option {
	return func(p *Panel) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPanel builds a panel for the order identified by orderKey (an order id
// or a plate) currently in status.
func NewPanel(client Transport, orderKey, status string, opts ...Option) *Panel {
	p := &Panel{
		client:   client,
		logger:   zap.NewNop(),
		orderKey: strings.TrimSpace(orderKey),
		status:   entities.WorkOrderStatus(strings.TrimSpace(status)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FromOrder builds a panel keyed by the order id.
func FromOrder(client Transport, o api.Order, opts ...Option) *Panel {
	return NewPanel(client, strconv.FormatInt(o.ID, 10), o.Status, opts...)
}

func (p *Panel) OrderKey() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.orderKey
}

func (p *Panel) Status() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return string(p.status)
}

// SetStatus redraws the panel for a status read back from the server.
func (p *Panel) SetStatus(status string) {
	p.mu.Lock()
	p.status = entities.WorkOrderStatus(strings.TrimSpace(status))
	p.mu.Unlock()
}

// Options lists the statuses reachable from the current one, in table order.
func (p *Panel) Options() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	allowed := entities.AllowedTransitions(p.status)
	out := make([]string, 0, len(allowed))
	for _, s := range allowed {
		out = append(out, string(s))
	}
	return out
}

func (p *Panel) Visible() bool {
	return len(p.Options()) > 0
}

// Submit validates locally and sends one request. Nothing is sent when the
// comment is blank or the target is not offered. On success the panel shows
// the status echoed by the server; without an echo it keeps the old status
// until the refresher reloads it.
func (p *Panel) Submit(ctx context.Context, target, comment string) (*api.Order, error) {
	target = strings.TrimSpace(target)
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, ErrCommentRequired
	}

	p.mu.Lock()
	if !entities.CanTransition(p.status, entities.WorkOrderStatus(target)) {
		p.mu.Unlock()
		return nil, ErrTransitionNotAllowed
	}
	if p.busy {
		p.mu.Unlock()
		return nil, ErrBusy
	}
	p.busy = true
	key, from := p.orderKey, p.status
	p.mu.Unlock()

	order, err := p.client.ChangeStatus(ctx, key, target, comment)

	p.mu.Lock()
	p.busy = false
	if err == nil && order != nil && order.Status != "" {
		p.status = entities.WorkOrderStatus(order.Status)
	}
	p.mu.Unlock()

	if err != nil {
		p.logger.Info("status change rejected",
			zap.String("order", key),
			zap.String("from", string(from)),
			zap.String("to", target),
			zap.Error(err))
		return nil, err
	}

	p.logger.Info("status changed", zap.String("order", key), zap.String("from", string(from)), zap.String("to", target))
	if p.refresher != nil {
		if rerr := p.refresher.Refresh(ctx); rerr != nil {
			p.logger.Warn("refresh after status change failed", zap.Error(rerr))
		}
	}
	return order, nil
}

// Request asks the dialog for the mandatory comment and then submits. The
// outcome is also reported through the dialog.
func (p *Panel) Request(ctx context.Context, target string) (*api.Order, error) {
	if p.dialog == nil {
		return nil, ErrNoDialog
	}
	if !entities.CanTransition(entities.WorkOrderStatus(p.Status()), entities.WorkOrderStatus(strings.TrimSpace(target))) {
		p.dialog.Notify(ctx, LevelWarning, "Transición de estado no permitida.")
		return nil, ErrTransitionNotAllowed
	}

	answer, err := p.dialog.Ask(ctx, Prompt{
		Title:       "Cambiar estado a " + target,
		Message:     "Ingrese un comentario para el cambio de estado.",
		Placeholder: "Comentario",
	})
	if err != nil {
		return nil, err
	}
	if !answer.Confirmed {
		return nil, ErrCancelled
	}

	order, err := p.Submit(ctx, target, answer.Text)
	switch {
	case err == nil:
		p.dialog.Notify(ctx, LevelInfo, successNotice(order))
	case errors.Is(err, ErrCommentRequired):
		p.dialog.Notify(ctx, LevelWarning, "Debe ingresar un comentario.")
	default:
		p.dialog.Notify(ctx, LevelError, Message(err))
	}
	return order, err
}

// successNotice names the new status only when the server echoed it.
func successNotice(order *api.Order) string {
	if order == nil || strings.TrimSpace(order.Status) == "" {
		return "Estado actualizado."
	}
	return "Estado actualizado a " + order.Status + "."
}

// Message turns a submit error into the text shown to the operator.
func Message(err error) string {
	if be, ok := api.AsBusinessError(err); ok {
		return be.Message
	}
	if errors.Is(err, api.ErrCommunication) {
		return "Error de comunicación con el servidor."
	}
	return err.Error()
}
