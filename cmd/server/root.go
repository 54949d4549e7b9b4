// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/mcutracker/internal/config"
	"github.com/tomtom215/mcutracker/internal/logging"
	"github.com/tomtom215/mcutracker/internal/models"
	"github.com/tomtom215/mcutracker/internal/store"
)

// loadConfig loads configuration and initializes logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	return cfg, nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "server",
		Short:         "MCU Tracker HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return serve(ctx, cfg)
		},
	}

	rootCmd.AddCommand(newPromoteAdminCommand())
	return rootCmd
}

func newPromoteAdminCommand() *cobra.Command {
	var revoke bool

	cmd := &cobra.Command{
		Use:   "promote-admin EMAIL",
		Short: "Grant or revoke the admin flag of an existing account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			st, err := store.Open(cmd.Context(), cfg.Store)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logging.Error().Err(cerr).Msg("Error closing store")
				}
			}()

			return setAdmin(cmd, st, args[0], !revoke)
		},
	}

	cmd.Flags().BoolVar(&revoke, "revoke", false, "Remove the admin flag instead of granting it")
	return cmd
}

// setAdmin flips the admin flag of email and reports the result on cmd's
// output.
func setAdmin(cmd *cobra.Command, users store.UserStore, email string, isAdmin bool) error {
	email = models.NormalizeEmail(email)
	if err := users.SetAdmin(cmd.Context(), email, isAdmin); err != nil {
		return fmt.Errorf("set admin flag for %s: %w", email, err)
	}

	logging.Info().
		Str("email", logging.SanitizeEmail(email)).
		Bool("is_admin", isAdmin).
		Msg("Admin flag updated")

	verb := "granted to"
	if !isAdmin {
		verb = "revoked from"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Admin %s %s\n", verb, email)
	return nil
}
