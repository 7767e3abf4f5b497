package intake

import (
	"context"
	"errors"
	"strings"
	"sync"

	"taller_flota/internal/client/api"
	"taller_flota/internal/domain/entities"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var ErrNothingToResubmit = errors.New("no hay un ingreso pendiente de completar")

type Transport interface {
	CreateIntake(ctx context.Context, form api.IntakeForm) (api.IntakeResponse, error)
}

// SlotReloader is the slot grid refreshed after a successful intake.
type SlotReloader interface {
	Load(ctx context.Context, date string, locationID int64) error
}

// Input is the main intake form.
type Input struct {
	Plate       string `form:"plate" validate:"required,plate"`
	Date        string `form:"date" validate:"required,datetime=2006-01-02"`
	Time        string `form:"time" validate:"omitempty,datetime=15:04"`
	LocationID  int64  `form:"location_id" validate:"required,gt=0"`
	Description string `form:"description" validate:"max=2000"`
	DriverRUT   string `form:"driver_rut" validate:"omitempty,max=12"`
}

// VehicleInput is the sub-form revealed after "vehiculo_no_existe".
type VehicleInput struct {
	Brand string `form:"vehicle_brand" validate:"required"`
	Model string `form:"vehicle_model" validate:"required"`
	Year  int    `form:"vehicle_year" validate:"omitempty,gte=1950,lte=2100"`
	Type  string `form:"vehicle_type"`
}

// DriverInput is the sub-form revealed after "nuevo_chofer".
type DriverInput struct {
	Name     string `form:"driver_name" validate:"required"`
	Username string `form:"driver_username" validate:"required"`
	Password string `form:"driver_password" validate:"required,min=6"`
}

// Stage is what the form shows next.
type Stage int

const (
	StageForm Stage = iota
	StageVehicle
	StageDriver
	StageDone
)

type Result struct {
	Stage   Stage
	Order   *api.Order
	Message string
}

// Flow is the intake form state: the last submitted input plus whatever
// sub-forms the server asked for.
type Flow struct {
	client   Transport
	slots    SlotReloader
	validate *validator.Validate
	logger   *zap.Logger

	mu      sync.Mutex
	input   *Input
	vehicle *VehicleInput
	driver  *DriverInput
	stage   Stage
}

func NewFlow(client Transport, slots SlotReloader, logger *zap.Logger) *Flow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{client: client, slots: slots, validate: newValidator(), logger: logger}
}

func (f *Flow) Stage() Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stage
}

// Submit validates and sends the main form. Sub-form data from an earlier
// round is dropped.
func (f *Flow) Submit(ctx context.Context, in Input) (Result, error) {
	in.Plate = entities.NormalizePlate(in.Plate)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	if err := asValidationError(f.validate.Struct(in)); err != nil {
		return Result{Stage: f.Stage()}, err
	}

	f.mu.Lock()
	f.input, f.vehicle, f.driver = &in, nil, nil
	f.mu.Unlock()
	return f.send(ctx)
}

// ProvideVehicle resubmits the stored form with the vehicle sub-form.
func (f *Flow) ProvideVehicle(ctx context.Context, v VehicleInput) (Result, error) {
	if err := asValidationError(f.validate.Struct(v)); err != nil {
		return Result{Stage: f.Stage()}, err
	}
	f.mu.Lock()
	if f.input == nil {
		f.mu.Unlock()
		return Result{}, ErrNothingToResubmit
	}
	f.vehicle = &v
	f.mu.Unlock()
	return f.send(ctx)
}

// ProvideDriver resubmits the stored form with the driver sub-form.
func (f *Flow) ProvideDriver(ctx context.Context, d DriverInput) (Result, error) {
	if err := asValidationError(f.validate.Struct(d)); err != nil {
		return Result{Stage: f.Stage()}, err
	}
	f.mu.Lock()
	if f.input == nil {
		f.mu.Unlock()
		return Result{}, ErrNothingToResubmit
	}
	f.driver = &d
	f.mu.Unlock()
	return f.send(ctx)
}

func (f *Flow) form() api.IntakeForm {
	in := f.input
	form := api.IntakeForm{
		Plate:       in.Plate,
		Date:        in.Date,
		Time:        in.Time,
		LocationID:  in.LocationID,
		Description: strings.TrimSpace(in.Description),
		DriverRUT:   strings.TrimSpace(in.DriverRUT),
	}
	if v := f.vehicle; v != nil {
		form.Vehicle = &api.VehicleForm{Brand: v.Brand, Model: v.Model, Year: v.Year, Type: v.Type}
	}
	if d := f.driver; d != nil {
		form.Driver = &api.DriverForm{Name: d.Name, Username: d.Username, Password: d.Password}
	}
	return form
}

func (f *Flow) send(ctx context.Context) (Result, error) {
	f.mu.Lock()
	form := f.form()
	f.mu.Unlock()

	resp, err := f.client.CreateIntake(ctx, form)
	if err != nil {
		return Result{Stage: f.Stage()}, err
	}

	switch resp.Status {
	case api.IntakeOK:
		f.mu.Lock()
		f.stage = StageDone
		f.input, f.vehicle, f.driver = nil, nil, nil
		f.mu.Unlock()
		if f.slots != nil {
			if err := f.slots.Load(ctx, form.Date, form.LocationID); err != nil {
				f.logger.Warn("slot reload after intake failed", zap.Error(err))
			}
		}
		msg := resp.Message
		if msg == "" && resp.Order != nil {
			msg = "Ingreso registrado."
		}
		return Result{Stage: StageDone, Order: resp.Order, Message: msg}, nil
	case api.IntakeVehicleMissing:
		return f.reveal(StageVehicle, resp.Message), nil
	case api.IntakeNewDriver:
		return f.reveal(StageDriver, resp.Message), nil
	default:
		msg := strings.TrimSpace(resp.Message)
		if msg == "" {
			msg = api.GenericFailureMessage
		}
		return Result{Stage: f.Stage()}, &api.BusinessError{Status: 200, Code: resp.Status, Message: msg}
	}
}

func (f *Flow) reveal(stage Stage, message string) Result {
	f.mu.Lock()
	f.stage = stage
	f.mu.Unlock()
	return Result{Stage: stage, Message: message}
}
