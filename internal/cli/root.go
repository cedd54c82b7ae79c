// Package cli is the todolist command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/api"
	"github.com/idilsaglam/todolist/internal/apiclient"
	"github.com/idilsaglam/todolist/internal/auth"
	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/logging"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/ui"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// usageError marks a mistake on the command line.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// app is what every command shares once the root has loaded config.
type app struct {
	// persistent flags
	apiURL, logLevel, logFormat, theme, configPath string

	cfg    *config.Config
	logger *slog.Logger
	client *apiclient.Client
	todos  *store.TodoStore
	cats   *store.CategoryStore

	stderr io.Writer
}

// Run executes the command line and returns an exit code
// (0 ok, 1 failure, 2 usage).
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Execute(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

// Execute runs args against a fresh command tree.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	ui.SetOutput(out, errOut)
	a := &app{stderr: errOut}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	ui.Fail(err.Error())
	if isUsage(err) {
		fmt.Fprintln(errOut, ui.Current().Muted.Render("Run 'todolist --help' for usage."))
		return ExitUsage
	}
	return ExitFailure
}

func isUsage(err error) bool {
	var ue *usageError
	if errors.As(err, &ue) {
		return true
	}
	// cobra's own argument errors carry no type
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "todolist",
		Short: "todolist is a client for the todolist API",
		Long: `todolist manages todos and categories on a todolist server.

Configuration is read from <user config dir>/todolist/config.yaml, then
.todolistrc.yaml or .todolist.toml in the working directory, then
TODOLIST_* environment variables, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.apiURL, "api-url", "", "API base URL (default "+apiclient.DefaultBaseURL+")")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.logFormat, "log-format", "", "log format: text, json")
	pf.StringVar(&a.theme, "theme", "", "theme: "+strings.Join(ui.Themes, ", "))
	pf.StringVar(&a.configPath, "config", "", "config file, replaces the local one")

	root.AddCommand(
		newListCmd(a),
		newAddCmd(a),
		newShowCmd(a),
		newEditCmd(a),
		newDoneCmd(a),
		newRemoveCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newCategoryCmd(a),
		newUICmd(a),
		newAuthCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup loads config and builds the logger, client and stores.
func (a *app) setup(cmd *cobra.Command) error {
	var o config.Overrides
	flags := cmd.Flags()
	str := func(name, v string) *string {
		if flags.Changed(name) {
			return &v
		}
		return nil
	}
	o.APIURL = str("api-url", a.apiURL)
	o.LogLevel = str("log-level", a.logLevel)
	o.LogFormat = str("log-format", a.logFormat)
	o.Theme = str("theme", a.theme)

	cfg, err := config.Load(a.configPath, o)
	if err != nil {
		var ve *config.ValidationError
		if errors.As(err, &ve) {
			return &usageError{msg: err.Error()}
		}
		return err
	}
	a.cfg = cfg
	ui.SetTheme(cfg.Theme)

	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(cfg.LogLevel)
	lc.Format = logging.ParseFormat(cfg.LogFormat)
	lc.Output = a.stderr
	a.logger = logging.New(lc)
	a.logger.Debug("config loaded", "files", cfg.Files, "apiUrl", cfg.APIURL)

	opts := []apiclient.Option{apiclient.WithLogger(a.logger)}
	ti, err := auth.GetToken()
	switch {
	case err == nil:
		opts = append(opts, apiclient.WithToken(ti.Token))
	case !errors.Is(err, auth.ErrNoToken):
		a.logger.Warn("ignoring credentials", "error", err)
	}
	a.client = apiclient.New(cfg.APIURL, opts...)
	a.todos = store.NewTodoStore(api.Todos(a.client), a.logger)
	a.cats = store.NewCategoryStore(api.Categories(a.client), a.logger)
	return nil
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: todolist %s", usage)
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("usage: todolist %s", usage)
		}
		return nil
	}
}

func maxArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return usagef("usage: todolist %s", usage)
		}
		return nil
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, usagef("not a valid id: %s", s)
	}
	return id, nil
}

// fetchTodos loads the todo list, turning a recorded failure into an error.
func (a *app) fetchTodos(ctx context.Context) error {
	a.todos.Fetch(ctx)
	if err := a.todos.Failure(); err != nil {
		return fmt.Errorf("fetch todos: %w", err)
	}
	return nil
}

func (a *app) fetchCategories(ctx context.Context) error {
	a.cats.Fetch(ctx)
	if err := a.cats.Failure(); err != nil {
		return fmt.Errorf("fetch categories: %w", err)
	}
	return nil
}
