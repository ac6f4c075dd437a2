package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
)

type cli struct {
	t   *testing.T
	app *app
	out *bytes.Buffer
}

func newCLI(t *testing.T) *cli {
	t.Setenv("CLINIC_STORAGE_DRIVER", "memory")
	t.Setenv("CLINIC_LOG_LEVEL", "error")

	out := &bytes.Buffer{}
	c := &cli{t: t, app: &app{out: out}, out: out}
	t.Cleanup(func() { _ = c.app.close() })
	return c
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	c.out.Reset()
	cmd := newRootCmd(c.app)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return c.out.String(), err
}

func TestSeedAdminAndAuthenticate(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("seed-admin", "--password", "secret", "--carnet", "1001")
	require.NoError(t, err)
	assert.Contains(t, out, "admin@clinic.com")
	assert.NotContains(t, out, "secret")

	out, err = c.run("authenticate", "--email", "admin@clinic.com", "--password", "secret")
	require.NoError(t, err)
	var account model.PublicAccount
	require.NoError(t, json.Unmarshal([]byte(out), &account))
	assert.Equal(t, model.ID(1), account.ID)
	assert.True(t, account.Enabled)

	_, err = c.run("authenticate", "--email", "admin@clinic.com", "--password", "wrong")
	assert.EqualError(t, err, "invalid credentials")
}

func TestSeedAdminRequiresPassword(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("seed-admin")
	assert.Error(t, err)
}

func TestPatientsCount(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("patients", "count")
	require.NoError(t, err)
	assert.Equal(t, "0", strings.TrimSpace(out))

	ctx := context.Background()
	require.NoError(t, c.app.repos.Patients.Mutate(ctx, repository.Append(model.Patient{ID: 1, Name: "Ana"})))

	out, err = c.run("patients", "count")
	require.NoError(t, err)
	assert.Equal(t, "1", strings.TrimSpace(out))
}

func TestMonthlyTotal(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("patients", "count")
	require.NoError(t, err)

	ctx := context.Background()
	for _, inv := range []model.Invoice{
		{ID: 1, Timestamp: time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), Total: 200},
		{ID: 2, Timestamp: time.Date(2024, 3, 28, 16, 30, 0, 0, time.UTC), Total: 150},
		{ID: 3, Timestamp: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC), Total: 99},
	} {
		require.NoError(t, c.app.repos.Invoices.Mutate(ctx, repository.Append(inv)))
	}

	out, err := c.run("monthly-total", "--month", "2", "--year", "2024")
	require.NoError(t, err)
	var result struct {
		Month int     `json:"month"`
		Year  int     `json:"year"`
		Total float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2, result.Month)
	assert.Equal(t, 2024, result.Year)
	assert.Equal(t, 350.0, result.Total)

	_, err = c.run("monthly-total", "--month", "12", "--year", "2024")
	assert.Error(t, err)
}

func TestDoctorsAvailable(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("doctors", "available", "--date", "2024-03-04")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, c.app.repos.Doctors.Mutate(ctx, repository.Append(model.Doctor{
		ID:        5,
		Name:      "Dra. Ruiz",
		Specialty: model.SpecialtyDentistry,
		Schedule:  []model.TimeSlot{{Day: model.Monday, Start: "09:00", End: "13:00"}},
	})))

	// 2024-03-04 is a Monday, 2024-03-05 a Tuesday.
	out, err := c.run("doctors", "available", "--date", "2024-03-04")
	require.NoError(t, err)
	var doctors []model.Doctor
	require.NoError(t, json.Unmarshal([]byte(out), &doctors))
	require.Len(t, doctors, 1)
	assert.Equal(t, model.ID(5), doctors[0].ID)

	out, err = c.run("doctors", "available", "--date", "2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))

	_, err = c.run("doctors", "available", "--date", "04/03/2024")
	assert.Error(t, err)
}
