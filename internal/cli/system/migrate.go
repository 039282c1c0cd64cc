package system

import (
	"fmt"

	"github.com/julianstephens/onething/internal/cli"
	"github.com/julianstephens/onething/internal/storage/sqlite"
)

type MigrateCmd struct {
	DryRun bool `help:"List pending migrations without applying them."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		fmt.Println("JSON storage has no schema migrations. Nothing to do.")
		return nil
	}

	if c.DryRun {
		pending, err := sqliteStore.PendingMigrations()
		if err != nil {
			return fmt.Errorf("failed to read migrations: %w", err)
		}
		if len(pending) == 0 {
			fmt.Println("No migrations to apply. Database is up to date.")
			return nil
		}
		fmt.Printf("%d pending migration(s):\n", len(pending))
		for _, m := range pending {
			fmt.Printf("  %03d  %s\n", m.Version, m.Name)
		}
		return nil
	}

	count, err := sqliteStore.Migrate(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}
