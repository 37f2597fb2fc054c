package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/samhotchkiss/sindicato-comms/internal/automigrate"
	"github.com/samhotchkiss/sindicato-comms/internal/models"
	"github.com/samhotchkiss/sindicato-comms/internal/store"
	"github.com/samhotchkiss/sindicato-comms/migrations"
	"github.com/spf13/cobra"
)

const seedTimeout = 30 * time.Second

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the demo dashboard data into an empty database",
		Long: `Apply pending migrations, then record the demo activities, press release,
contacts and channels. A database that already holds dashboard state is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acting, err := actingFromEnv()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), seedTimeout)
			defer cancel()

			db, err := store.OpenPostgres(os.Getenv("DATABASE_URL"))
			if err != nil {
				return err
			}
			defer db.Close()

			if err := automigrate.Run(db, migrations.FS); err != nil {
				return err
			}

			created, err := seedJournal(ctx, store.NewPostgresJournal(db), acting)
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintln(cmd.OutOrStdout(), "Dashboard state already exists, skipping seed.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded demo data (acting secretariat %s)\n", acting)
			return nil
		},
	}
}

func actingFromEnv() (models.Secretariat, error) {
	raw := strings.TrimSpace(os.Getenv("ACTING_SECRETARIAT"))
	if raw == "" {
		return models.SecretariatGeneral, nil
	}
	return models.ParseSecretariat(raw)
}

// seedJournal records the demo snapshot unless the journal already has state.
func seedJournal(ctx context.Context, journal store.Journal, acting models.Secretariat) (bool, error) {
	_, found, err := journal.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load journal: %w", err)
	}
	if found {
		return false, nil
	}

	event := store.Event{Kind: store.EventReset, Entity: store.EntityAll, Payload: store.DemoSnapshot(acting)}
	if err := journal.Record(ctx, event); err != nil {
		return false, fmt.Errorf("record demo data: %w", err)
	}
	return true, nil
}
