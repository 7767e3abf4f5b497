package session

import (
	"context"
	"strings"
	"time"

	"taller_flota/internal/client/api"

	"go.uber.org/zap"
)

const (
	PageLogin = "inicio-sesion"
	PageHome  = "inicio"
)

type Feature string

const (
	FeatureInicio           Feature = "inicio"
	FeatureRegistroTaller   Feature = "registro_taller"
	FeatureIngresoVehiculos Feature = "ingreso_vehiculos"
	FeatureReportes         Feature = "reportes"
	FeatureFichaVehiculo    Feature = "ficha_vehiculo"
)

var allFeatures = []Feature{FeatureInicio, FeatureRegistroTaller, FeatureIngresoVehiculos, FeatureReportes, FeatureFichaVehiculo}

// roleFeatures maps a lower-case role to the screens it may open.
var roleFeatures = map[string][]Feature{
	"chofer":         {FeatureInicio, FeatureIngresoVehiculos},
	"supervisor":     {FeatureInicio, FeatureRegistroTaller, FeatureIngresoVehiculos, FeatureReportes, FeatureFichaVehiculo},
	"mecanico":       {FeatureInicio, FeatureRegistroTaller, FeatureFichaVehiculo},
	"administrativo": {FeatureInicio, FeatureReportes},
	"guardia":        {FeatureInicio, FeatureIngresoVehiculos},
	"admin":          allFeatures,
}

// Allowed reports whether role may use feature. Unknown roles get nothing.
func Allowed(role string, feature Feature) bool {
	for _, f := range roleFeatures[strings.ToLower(strings.TrimSpace(role))] {
		if f == feature {
			return true
		}
	}
	return false
}

type NavItem struct {
	Label   string
	Href    string
	Feature Feature
}

// DefaultNav is the sidebar of the web front-end.
var DefaultNav = []NavItem{
	{Label: "Inicio", Href: "/inicio/", Feature: FeatureInicio},
	{Label: "Ingreso Vehículos", Href: "/vehiculos/ingreso/", Feature: FeatureIngresoVehiculos},
	{Label: "Registro Taller", Href: "/taller/registro/", Feature: FeatureRegistroTaller},
	{Label: "Ficha Vehículo", Href: "/vehiculos/ficha/", Feature: FeatureFichaVehiculo},
	{Label: "Reportes", Href: "/reportes/", Feature: FeatureReportes},
}

// VisibleNav keeps the items role is allowed to see, in order.
func VisibleNav(role string, items []NavItem) []NavItem {
	out := make([]NavItem, 0, len(items))
	for _, it := range items {
		if Allowed(role, it.Feature) {
			out = append(out, it)
		}
	}
	return out
}

// Decision is the outcome of a page check. Redirect is empty when the page
// may be shown.
type Decision struct {
	Redirect string
	Session  *Session
}

type Authenticator interface {
	Login(ctx context.Context, username, password string) (api.LoginResult, error)
	Logout(ctx context.Context) error
	SetToken(token string)
}

// Gate guards pages with the stored session.
type Gate struct {
	store  Store
	auth   Authenticator
	logger *zap.Logger
	now    func() time.Time
}

func NewGate(store Store, auth Authenticator, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{store: store, auth: auth, logger: logger, now: time.Now}
}

// Check decides whether page can be shown: without a session everything but
// the login page redirects to login; with one the login page redirects home.
// An expired session is cleared and treated as missing.
func (g *Gate) Check(page string) (Decision, error) {
	s, ok, err := g.store.Load()
	if err != nil {
		return Decision{}, err
	}
	if ok && s.Expired(g.now()) {
		g.logger.Info("session expired", zap.String("rut", s.Employee.RUT))
		if err := g.store.Clear(); err != nil {
			return Decision{}, err
		}
		ok = false
	}

	onLogin := strings.Contains(page, PageLogin)
	switch {
	case !ok && !onLogin:
		return Decision{Redirect: "/" + PageLogin + "/"}, nil
	case ok && onLogin:
		return Decision{Redirect: "/" + PageHome + "/", Session: &s}, nil
	case ok:
		if g.auth != nil {
			g.auth.SetToken(s.Token)
		}
		return Decision{Session: &s}, nil
	default:
		return Decision{}, nil
	}
}

// Login authenticates and stores the session.
func (g *Gate) Login(ctx context.Context, username, password string) (Session, error) {
	res, err := g.auth.Login(ctx, username, password)
	if err != nil {
		return Session{}, err
	}
	s := Session{Token: res.Token, ExpiresAt: res.ExpiresAt, Employee: res.Employee}
	if err := g.store.Save(s); err != nil {
		return Session{}, err
	}
	g.logger.Info("logged in", zap.String("rut", s.Employee.RUT), zap.String("role", s.Employee.Role))
	return s, nil
}

// Logout clears the local session even when the server call fails.
func (g *Gate) Logout(ctx context.Context) error {
	err := g.auth.Logout(ctx)
	if cerr := g.store.Clear(); cerr != nil {
		return cerr
	}
	if err != nil {
		g.logger.Warn("server logout failed", zap.Error(err))
	}
	return err
}
