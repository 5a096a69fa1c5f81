package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/ascend/internal/auth"
	"github.com/julianstephens/ascend/internal/cli"
	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/errors"
	"github.com/julianstephens/ascend/internal/keyring"
	"github.com/julianstephens/ascend/internal/logger"
	"github.com/julianstephens/ascend/internal/progress"
	"github.com/julianstephens/ascend/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Debug   bool   `help:"Enable debug logging to stderr."`
	Config  string `help:"Storage path or connection string. File paths select SQLite (or JSON for .json files); postgres:// and redis:// URLs select the matching remote backend. Connection strings must NOT embed a password." default:"~/.config/ascend/ascend.db"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize ascend storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive checklist." default:"1"`
	Today    cli.TodayCmd    `cmd:"" help:"Show today's checklist."`
	Check    cli.CheckCmd    `cmd:"" help:"Toggle a task on today's checklist."`
	Complete cli.CompleteCmd `cmd:"" help:"Finish the day once all tasks are done."`
	Status   cli.StatusCmd   `cmd:"" help:"Show attempt progress."`
	History  cli.HistoryCmd  `cmd:"" help:"Show past attempts."`
	Reset    cli.ResetCmd    `cmd:"" help:"Abandon the attempt and start over at day 1."`
	Rules    cli.RulesCmd    `cmd:"" help:"Show the challenge rules."`
	Clear    struct {
		History cli.ClearHistoryCmd `cmd:"" help:"Delete all past attempts."`
	} `cmd:"" help:"Clear recorded data."`
	Login      cli.LoginCmd      `cmd:"" help:"Sign in for remote backends."`
	Logout     cli.LogoutCmd     `cmd:"" help:"Sign out."`
	Whoami     cli.WhoamiCmd     `cmd:"" help:"Show the current identity."`
	Connection cli.ConnectionCmd `cmd:"" help:"Manage the keyring-stored connection string."`
	Migrate    cli.MigrateCmd    `cmd:"" help:"Run database schema migrations."`
	Doctor     cli.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Backup     struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage local storage backups."`
	Debug2 cli.DebugCmd `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

// commands that must run without a loaded store
var skipLoad = map[string]bool{
	"init":       true,
	"migrate":    true,
	"login":      true,
	"logout":     true,
	"whoami":     true,
	"rules":      true,
	"connection": true,
	"doctor":     true,
}

// expandHome resolves a leading ~/ against the user's home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func configDir() string {
	return filepath.Dir(expandHome(constants.DefaultConfigPath))
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("75-day challenge tracker: seven daily tasks, no exceptions"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir()}); err != nil {
		errors.Fatal(err)
	}

	// A stored connection string takes over only when --config was left at
	// its default.
	config := CLI.Config
	if config == constants.DefaultConfigPath {
		if stored, err := keyring.GetConnectionString(); err == nil {
			config = stored
		}
	}

	var store storage.Provider
	remote := false
	switch {
	case strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://"):
		if ok, err := storage.ValidatePostgresConnString(config); !ok {
			errors.Fatal(err)
		}
		store = storage.NewPostgresStore(config)
		remote = true
	case strings.HasPrefix(config, "redis://") || strings.HasPrefix(config, "rediss://"):
		store = storage.NewRedisStore(config)
		remote = true
	case strings.HasSuffix(config, ".json"):
		store = storage.NewJSONStore(expandHome(config))
	default:
		store = storage.NewSQLiteStore(expandHome(config))
	}

	// Remote backends get a local cache file so a flaky connection degrades
	// to the last known record instead of an error.
	var cache *storage.JSONStore
	if remote {
		cache = storage.NewJSONStore(filepath.Join(configDir(), "cache.json"))
	}

	appCtx := &cli.Context{
		Store:    store,
		Progress: progress.New(store, cache),
		Session:  auth.NewSession(),
		Remote:   remote,
	}

	command := ctx.Command()
	if i := strings.IndexByte(command, ' '); i >= 0 {
		command = command[:i]
	}
	if !skipLoad[command] {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}
