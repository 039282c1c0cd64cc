package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/onething/internal/backup"
	"github.com/julianstephens/onething/internal/cli"
	"github.com/julianstephens/onething/internal/constants"
	"github.com/julianstephens/onething/internal/storage/sqlite"
	"github.com/julianstephens/onething/internal/utils"
	"github.com/julianstephens/onething/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name     string
	run      func(*cli.Context) error
	needsDB  bool
	warnOnly bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Entry validation", run: checkEntries, needsDB: true},
	{name: "Reflection validation", run: checkReflections, needsDB: true},
	{name: "Settings validation", run: checkSettings, needsDB: true},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Reflection credentials", run: checkCredentials, warnOnly: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		// JSON store doesn't have schema version
		return nil
	}

	current, latest, err := sqliteStore.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}

	current, latest, err := sqliteStore.SchemaVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'onething migrate')", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'onething backup create'")
	}

	return nil
}

func checkEntries(ctx *cli.Context) error {
	result := validation.New().ValidateEntries(ctx.Store.GetAllEntries())
	if result.HasConflicts() {
		return errors.New(result.FormatReport())
	}
	return nil
}

func checkReflections(ctx *cli.Context) error {
	records, err := ctx.Store.GetAllReflections()
	if err != nil {
		return fmt.Errorf("failed to read reflections: %w", err)
	}
	result := validation.New().ValidateReflections(records, ctx.Store.GetAllEntries())
	if result.HasConflicts() {
		return errors.New(result.FormatReport())
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	result := validation.New().ValidateSettings(settings)
	if result.HasConflicts() {
		return errors.New(result.FormatReport())
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	if _, err := utils.NowInTimezone(ctx.Settings.Timezone); err != nil {
		return err
	}
	return nil
}

func checkCredentials(ctx *cli.Context) error {
	provider := cli.ProviderLabel(ctx.Config)
	if provider == constants.ProviderRemote {
		if ctx.Config == nil || ctx.Config.Synthesis.BaseURL == "" {
			return fmt.Errorf("synthesis.base_url is not set for the remote provider")
		}
		return nil
	}
	if cli.ResolveAPIKey(provider) == "" {
		return fmt.Errorf("no %s API key found - run 'onething keyring set' or set %s", provider, envHint(provider))
	}
	return nil
}
