package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nhle/todo/internal/app"
	"github.com/nhle/todo/internal/logging"
	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "A local todo tracker",
	Long: `A local todo tracker.

Without a subcommand, todo opens the terminal UI when attached to a
terminal and prints the list otherwise.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: openEnv,
	RunE:              runRoot,
}

var (
	rootConfigPath string
	rootDataPath   string
	rootBackend    string
	rootVerbose    bool
	rootOpenID     string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootConfigPath, "config", "", "config file (default ~/.config/todo/config.yaml)")
	flags.StringVar(&rootDataPath, "data", "", "storage path, overrides storage.path")
	flags.StringVar(&rootBackend, "backend", "", "storage backend: sqlite or file")
	flags.BoolVarP(&rootVerbose, "verbose", "v", false, "also log to stderr at debug level")

	rootCmd.Flags().StringVar(&rootOpenID, "open", "", "open the detail view for this todo id")
}

// appEnv is what every command needs: config, logger and the repository.
type appEnv struct {
	cfg    *model.AppConfig
	logger *log.Logger
	repo   *store.Repository
	kv     store.KV
	logs   io.Closer
}

// env is set by openEnv before any command runs.
var env *appEnv

func openEnv(cmd *cobra.Command, _ []string) error {
	path := rootConfigPath
	if path == "" {
		path = model.DefaultConfigPath()
	}
	cfg, err := model.LoadConfig(path)
	if err != nil {
		return err
	}
	if rootBackend != "" {
		cfg.Storage.Backend = rootBackend
	}
	if rootDataPath != "" {
		cfg.Storage.Path = rootDataPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := cfg.Log.Level
	if rootVerbose {
		level = "debug"
	}
	logger, logs, err := logging.Setup(logging.Options{
		Level:  level,
		File:   cfg.Log.File,
		Stderr: rootVerbose,
	})
	if err != nil {
		return err
	}

	repo, kv, err := store.Open(cfg, logger)
	if err != nil {
		logs.Close()
		return err
	}

	logger.Debug("command started", "cmd", cmd.CommandPath(), "backend", cfg.Storage.Backend)
	env = &appEnv{cfg: cfg, logger: logger, repo: repo, kv: kv, logs: logs}
	return nil
}

// Close releases the store and the log file.
func (e *appEnv) Close() error {
	return errors.Join(e.kv.Close(), e.logs.Close())
}

func runRoot(cmd *cobra.Command, _ []string) error {
	if !isTerminal() {
		if rootOpenID != "" {
			return showTodo(cmd, rootOpenID)
		}
		return listTodos(cmd, model.FilterAll)
	}

	opts := []app.Option{app.WithLogger(env.logger)}
	if rootOpenID != "" {
		opts = append(opts, app.WithInitialDetail(rootOpenID))
	}
	p := tea.NewProgram(app.New(env.repo, env.cfg.DefaultTheme(), opts...), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}

// isTerminal reports whether both stdin and stdout are a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
