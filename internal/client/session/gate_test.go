package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"taller_flota/internal/client/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	token     string
	logoutErr error
	loginErr  error
	logouts   int
}

func (f *fakeAuth) Login(_ context.Context, username, _ string) (api.LoginResult, error) {
	if f.loginErr != nil {
		return api.LoginResult{}, f.loginErr
	}
	return api.LoginResult{
		Token:     "tok-" + username,
		ExpiresAt: time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC),
		Employee:  api.Employee{RUT: "1-9", Role: "SUPERVISOR"},
	}, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logouts++
	return f.logoutErr
}

func (f *fakeAuth) SetToken(token string) { f.token = token }

func newGate(store Store, auth *fakeAuth, now time.Time) *Gate {
	g := NewGate(store, auth, nil)
	g.now = func() time.Time { return now }
	return g
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed("SUPERVISOR", FeatureReportes))
	assert.True(t, Allowed(" Admin ", FeatureFichaVehiculo))
	assert.True(t, Allowed("chofer", FeatureIngresoVehiculos))
	assert.False(t, Allowed("chofer", FeatureReportes))
	assert.False(t, Allowed("mecanico", FeatureIngresoVehiculos))
	assert.False(t, Allowed("desconocido", FeatureInicio))

	nav := VisibleNav("ADMINISTRATIVO", DefaultNav)
	require.Len(t, nav, 2)
	assert.Equal(t, "Inicio", nav[0].Label)
	assert.Equal(t, "Reportes", nav[1].Label)
}

func TestGate_Check(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no session", func(t *testing.T) {
		g := newGate(NewMemoryStore(), &fakeAuth{}, now)
		d, err := g.Check("/inicio/")
		require.NoError(t, err)
		assert.Equal(t, "/inicio-sesion/", d.Redirect)

		d, err = g.Check("/inicio-sesion/")
		require.NoError(t, err)
		assert.Empty(t, d.Redirect)
		assert.Nil(t, d.Session)
	})

	t.Run("active session", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Save(Session{Token: "tok", ExpiresAt: now.Add(time.Hour)}))
		auth := &fakeAuth{}
		g := newGate(store, auth, now)

		d, err := g.Check("/inicio-sesion/")
		require.NoError(t, err)
		assert.Equal(t, "/inicio/", d.Redirect)

		d, err = g.Check("/reportes/")
		require.NoError(t, err)
		assert.Empty(t, d.Redirect)
		require.NotNil(t, d.Session)
		assert.Equal(t, "tok", auth.token)
	})

	t.Run("expired session is cleared", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Save(Session{Token: "tok", ExpiresAt: now}))
		g := newGate(store, &fakeAuth{}, now)

		d, err := g.Check("/inicio/")
		require.NoError(t, err)
		assert.Equal(t, "/inicio-sesion/", d.Redirect)
		_, ok, _ := store.Load()
		assert.False(t, ok)
	})
}

func TestGate_LoginLogout(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	auth := &fakeAuth{logoutErr: errors.New("offline")}
	g := newGate(store, auth, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	s, err := g.Login(ctx, "ana", "secreto")
	require.NoError(t, err)
	assert.Equal(t, "tok-ana", s.Token)
	stored, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, s, stored)

	assert.Error(t, g.Logout(ctx))
	assert.Equal(t, 1, auth.logouts)
	_, ok, _ = store.Load()
	assert.False(t, ok, "the local session is cleared even when the server fails")

	auth.loginErr = &api.BusinessError{Status: 401, Message: "Usuario o contraseña incorrectos."}
	_, err = g.Login(ctx, "ana", "mala")
	assert.Error(t, err)
	_, ok, _ = store.Load()
	assert.False(t, ok)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	s := Session{Token: "tok", ExpiresAt: time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC), Employee: api.Employee{RUT: "1-9", Name: "Ana"}}
	require.NoError(t, store.Save(s))

	got, ok, err := NewFileStore(path).Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, s.Token, got.Token)
	assert.True(t, s.ExpiresAt.Equal(got.ExpiresAt))
	assert.Equal(t, s.Employee, got.Employee)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	_, ok, err = store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	assert.False(t, Session{}.Expired(now))
	assert.False(t, Session{ExpiresAt: now.Add(time.Second)}.Expired(now))
	assert.True(t, Session{ExpiresAt: now}.Expired(now))
}
