package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/clinic-admin/internal/config"
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	accountService "github.com/jwalitptl/clinic-admin/internal/service/account"
	doctorService "github.com/jwalitptl/clinic-admin/internal/service/doctor"
	eventService "github.com/jwalitptl/clinic-admin/internal/service/event"
	invoiceService "github.com/jwalitptl/clinic-admin/internal/service/invoice"
	patientService "github.com/jwalitptl/clinic-admin/internal/service/patient"
	"github.com/jwalitptl/clinic-admin/internal/store"
	"github.com/jwalitptl/clinic-admin/pkg/logger"
	"github.com/jwalitptl/clinic-admin/pkg/security"
)

// app holds what every subcommand needs. It is built lazily so that --help
// works without a reachable store.
type app struct {
	cfg    *config.Config
	loc    *time.Location
	repos  *repository.Repositories
	closer io.Closer
	out    io.Writer
}

func main() {
	a := &app{out: os.Stdout}

	err := newRootCmd(a).ExecuteContext(context.Background())
	if cerr := a.close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "clinicctl",
		Short:         "Clinic administration commands against the configured store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
	}
	rootCmd.SetOut(a.out)
	rootCmd.AddCommand(seedAdminCmd(a))
	rootCmd.AddCommand(authenticateCmd(a))
	rootCmd.AddCommand(monthlyTotalCmd(a))
	rootCmd.AddCommand(patientsCmd(a))
	rootCmd.AddCommand(doctorsCmd(a))
	return rootCmd
}

// open is a no-op once the store is open.
func (a *app) open(ctx context.Context) error {
	if a.repos != nil {
		return nil
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	// Commands print results on stdout; logs go to stderr.
	log.Logger = logger.NewLogger(&logger.Config{Level: logger.ParseLevel(cfg.Log.Level), Output: os.Stderr}).ZL

	loc, err := cfg.Clinic.Location()
	if err != nil {
		return err
	}
	backend, closer, err := store.Open(ctx, cfg.Storage.ToStoreOptions())
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	a.cfg = cfg
	a.loc = loc
	a.closer = closer
	a.repos = repository.New(backend, cfg.Storage.ToRepositoryOptions())
	return nil
}

func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	a.repos = nil
	return err
}

func (a *app) events() eventService.Emitter {
	if a.cfg.Events.Enabled {
		return eventService.NewEventService(a.repos.Outbox)
	}
	return eventService.Noop()
}

func (a *app) accounts() (*accountService.Service, error) {
	hasher, err := security.NewPasswordHasher(a.cfg.Auth.PasswordHashing, a.cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}
	return accountService.NewService(a.repos.Accounts, hasher, a.events()), nil
}

func (a *app) print(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func seedAdminCmd(a *app) *cobra.Command {
	var account model.Account
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create an enabled account",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.accounts()
			if err != nil {
				return err
			}
			account.Enabled = true
			if err := svc.Create(cmd.Context(), &account); err != nil {
				return err
			}
			return a.print(account.Public())
		},
	}
	cmd.Flags().Int64Var((*int64)(&account.ID), "id", 1, "Account id")
	cmd.Flags().StringVar(&account.Name, "name", "Administrador", "Display name")
	cmd.Flags().Int64Var(&account.Carnet, "carnet", 0, "Staff card number")
	cmd.Flags().StringVar(&account.Email, "email", "admin@clinic.com", "Login email")
	cmd.Flags().StringVar(&account.Password, "password", "", "Login password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func authenticateCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "authenticate",
		Short: "Check credentials against the account store",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.accounts()
			if err != nil {
				return err
			}
			account, err := svc.Authenticate(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if account == nil {
				return fmt.Errorf("invalid credentials")
			}
			return a.print(account.Public())
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Login email")
	cmd.Flags().StringVar(&password, "password", "", "Login password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func monthlyTotalCmd(a *app) *cobra.Command {
	var month, year int
	cmd := &cobra.Command{
		Use:   "monthly-total",
		Short: "Sum invoice totals for a month (0 = January)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month < 0 || month > 11 {
				return fmt.Errorf("month must be between 0 and 11, got %d", month)
			}
			svc := invoiceService.NewService(a.repos.Invoices, a.repos.Items, a.events(), a.loc)
			total, err := svc.MonthlyTotal(cmd.Context(), month, year)
			if err != nil {
				return err
			}
			return a.print(map[string]interface{}{"month": month, "year": year, "total": total})
		},
	}
	cmd.Flags().IntVar(&month, "month", 0, "Zero based month")
	cmd.Flags().IntVar(&year, "year", 0, "Year")
	_ = cmd.MarkFlagRequired("month")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func patientsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Patient queries",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "count",
		Short: "Print the number of registered patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := patientService.NewService(a.repos.Patients, a.repos.Prescriptions, a.events())
			n, err := svc.Count(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, n)
			return err
		},
	})
	return cmd
}

func doctorsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "Doctor queries",
	}

	var date string
	availableCmd := &cobra.Command{
		Use:   "available",
		Short: "List doctors whose schedule covers the weekday of --date (YYYY-MM-DD)",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := time.ParseInLocation("2006-01-02", date, a.loc)
			if err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}
			svc := doctorService.NewService(a.repos.Doctors, a.events(), a.loc)
			doctors, err := svc.AvailableOn(cmd.Context(), day)
			if err != nil {
				return err
			}
			return a.print(doctors)
		},
	}
	availableCmd.Flags().StringVar(&date, "date", "", "Calendar date")
	_ = availableCmd.MarkFlagRequired("date")
	cmd.AddCommand(availableCmd)
	return cmd
}
