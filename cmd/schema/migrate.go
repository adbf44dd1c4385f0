package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/imrishuroy/go-appointment-flow/internal/appointments"
	"github.com/imrishuroy/go-appointment-flow/internal/config"
	"github.com/imrishuroy/go-appointment-flow/internal/country"
	"github.com/imrishuroy/go-appointment-flow/internal/logging"
)

func migrateCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the appointment table of a country database",
		Long: `Create or update the appointment table in the database configured by
DB_HOST_<ISO>, DB_PORT_<ISO>, DB_USERNAME_<ISO>, DB_PASSWORD_<ISO> and DB_NAME_<ISO>.

Examples:
  schema migrate --country PE
  schema migrate --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			codes, err := selectedCountries(cmd, all)
			if err != nil {
				return err
			}
			return forEachCountry(cmd.Context(), codes, func(ctx context.Context, code country.Code, db *gorm.DB) error {
				if err := appointments.Migrate(ctx, db); err != nil {
					return err
				}
				cmd.Printf("migrated appointment table for %s\n", code)
				return nil
			})
		},
	}
	cmd.Flags().StringP("country", "c", "", "country ISO code listed in SUPPORTED_COUNTRIES")
	cmd.Flags().BoolVar(&all, "all", false, "migrate every country in SUPPORTED_COUNTRIES")
	return cmd
}

func pingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that a country database answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			codes, err := selectedCountries(cmd, false)
			if err != nil {
				return err
			}
			return forEachCountry(cmd.Context(), codes, func(ctx context.Context, code country.Code, db *gorm.DB) error {
				if err := appointments.Ping(ctx, db); err != nil {
					return err
				}
				cmd.Printf("%s database is reachable\n", code)
				return nil
			})
		},
	}
	cmd.Flags().StringP("country", "c", "", "country ISO code listed in SUPPORTED_COUNTRIES")
	return cmd
}

func selectedCountries(cmd *cobra.Command, all bool) ([]country.Code, error) {
	cfg := config.Load()
	if err := country.Configure(cfg.Countries...); err != nil {
		return nil, fmt.Errorf("SUPPORTED_COUNTRIES: %w", err)
	}
	if all {
		var out []country.Code
		for _, raw := range cfg.Countries {
			code, ok := country.Parse(raw)
			if !ok {
				return nil, fmt.Errorf("SUPPORTED_COUNTRIES lists unknown country %q", raw)
			}
			out = append(out, code)
		}
		return out, nil
	}
	raw, _ := cmd.Flags().GetString("country")
	code, ok := country.Parse(raw)
	if !ok {
		return nil, fmt.Errorf("--country must be one of %v, got %q", country.Supported(), raw)
	}
	return []country.Code{code}, nil
}

func forEachCountry(ctx context.Context, codes []country.Code, fn func(context.Context, country.Code, *gorm.DB) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	for _, code := range codes {
		db, err := appointments.OpenDB(cfg.CountryDB(code.String()), cfg.DBPool, logger.WithField("country", code))
		if err != nil {
			return err
		}
		runCtx, cancel := context.WithTimeout(ctx, time.Minute)
		err = fn(runCtx, code, db)
		cancel()
		if sqlDB, derr := db.DB(); derr == nil {
			_ = sqlDB.Close()
		}
		if err != nil {
			return fmt.Errorf("%s: %w", code, err)
		}
	}
	return nil
}
