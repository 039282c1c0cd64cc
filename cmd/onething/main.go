package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/onething/internal/cli"
	"github.com/julianstephens/onething/internal/cli/backups"
	"github.com/julianstephens/onething/internal/cli/entries"
	"github.com/julianstephens/onething/internal/cli/reflections"
	"github.com/julianstephens/onething/internal/cli/settings"
	"github.com/julianstephens/onething/internal/cli/system"
	"github.com/julianstephens/onething/internal/config"
	"github.com/julianstephens/onething/internal/constants"
	apperrors "github.com/julianstephens/onething/internal/errors"
	"github.com/julianstephens/onething/internal/logger"
	"github.com/julianstephens/onething/internal/storage"
	"github.com/julianstephens/onething/internal/storage/jsonfile"
	"github.com/julianstephens/onething/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"~/.config/onething/config.yaml"`
	DB      string `help:"Journal path, overriding storage.path. A .json suffix selects the JSON backend." type:"string"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize onething storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Today   entries.TodayCmd   `cmd:"" help:"Show today's question."`
	Answer  entries.AnswerCmd  `cmd:"" help:"Answer today's question."`
	History entries.HistoryCmd `cmd:"" help:"List past entries."`
	Show    entries.ShowCmd    `cmd:"" help:"Show the entry for a date."`

	Month   reflections.MonthCmd   `cmd:"" help:"Show a month's progress and reflection."`
	Reflect reflections.ReflectCmd `cmd:"" help:"Generate a month's reflection."`

	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Keyring  struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store an API key in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored API key (masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Delete the stored API key."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage the text-generation API key."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage journal backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("One question a day, and a reflection once a month"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, apperrors.Format(err))
		os.Exit(1)
	}
	if CLI.DB != "" {
		if cfg.Storage.Path, err = config.ExpandPath(CLI.DB); err != nil {
			fmt.Fprintln(os.Stderr, apperrors.Format(err))
			os.Exit(1)
		}
	}
	if CLI.Debug {
		cfg.Log.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Log.Debug, ConfigDir: cfg.ConfigDir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	// Initialize storage based on the journal path
	var store storage.Provider
	if cfg.UsesJSONBackend() {
		store = jsonfile.NewStore(cfg.Storage.Path)
	} else {
		store = sqlite.NewStore(cfg.Storage.Path)
	}
	defer store.Close()

	orch, err := cli.NewOrchestrator(cfg, store)
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:        store,
		Orchestrator: orch,
		Config:       cfg,
	}

	// Load the store before running the command
	command := ctx.Command()
	if needsStore(command) {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		appCtx.LoadSettings()
	}

	logger.Debug("Running command", "command", command, "storage", cfg.Storage.Path)
	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

// needsStore reports whether command reads the journal. init creates it, keyring
// never touches it, and backup list/restore work on files so a damaged journal
// can still be replaced.
func needsStore(command string) bool {
	switch {
	case command == "init",
		strings.HasPrefix(command, "keyring"),
		command == "backup list",
		strings.HasPrefix(command, "backup restore"):
		return false
	default:
		return true
	}
}
