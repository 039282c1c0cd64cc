package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/onething/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing journal before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			// Close first to release the file handle
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing journal at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized onething storage at: %s\n", ctx.Store.GetConfigPath())

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	ctx.Settings = settings

	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  onething answer          answer today's question")
	fmt.Printf("  onething keyring set     store your %s API key for monthly reflections\n", cli.ProviderLabel(ctx.Config))
	return nil
}
