// Command pedidos is the terminal client of the pedidos service: it signs
// users in and drives the pedido lifecycle against the REST API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	dbfs "github.com/garnizeh/pedidos/db"
	"github.com/garnizeh/pedidos/internal/config"
	"github.com/garnizeh/pedidos/internal/db"
	"github.com/garnizeh/pedidos/internal/pedidos"
	"github.com/garnizeh/pedidos/internal/repository/sqlite"
	"github.com/garnizeh/pedidos/internal/session"
	"github.com/garnizeh/pedidos/internal/validation"
	"github.com/garnizeh/pedidos/pkg/client"
	"github.com/garnizeh/pedidos/pkg/lifecycle"
	"github.com/garnizeh/pedidos/pkg/repository"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses the global flags, wires the app and dispatches one command.
// It returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pedidos", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to config YAML file")
	fs.Usage = func() { printUsage(stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() == 0 {
		printUsage(stderr)
		return 1
	}
	name, rest := fs.Arg(0), fs.Args()[1:]
	if name == "version" {
		fmt.Fprintf(stdout, "pedidos %s (built at %s)\n", version, buildTime)
		return 0
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "ERROR: comando desconocido %q\n", name)
		printUsage(stderr)
		return 1
	}

	cfg, err := config.LoadConfig(*configPath)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: configuración inválida: %v\n", err)
		return 1
	}

	a, err := newApp(ctx, cfg, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %s\n", message(err))
		return 1
	}
	defer a.close()

	if err := cmd.run(ctx, a, rest); err != nil {
		a.logger.Debug("command failed", slog.String("command", name), slog.String("err", err.Error()))
		fmt.Fprintf(stderr, "ERROR: %s\n", message(err))
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprintf(stderr, "Uso: pedidos %s %s\n", name, cmd.usage)
		}
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Uso: pedidos [-config archivo] <comando> [argumentos]")
	fmt.Fprintln(w, "\nComandos:")
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "  %-10s %s\n", n, commands[n].usage)
	}
}

// app holds the collaborators shared by every command.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	api       *client.Client
	sessions  *session.Manager
	svc       *pedidos.Service
	validator *validation.Validator
	out       io.Writer
	closers   []func() error
}

func newApp(ctx context.Context, cfg *config.Config, out io.Writer) (*app, error) {
	logger, err := cfg.Log.NewLogger()
	if err != nil {
		return nil, err
	}
	client.SetLogger(logger)

	v, err := validation.Default()
	if err != nil {
		return nil, fmt.Errorf("load form schemas: %w", err)
	}
	policy, err := lifecycle.ParseFinalizePolicy(cfg.Lifecycle.FinalizePolicy)
	if err != nil {
		return nil, err
	}

	api, err := client.NewDefaultClient(cfg.API)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, api: api, validator: v, out: out}
	a.closers = append(a.closers, api.Close)

	var (
		store   repository.SessionRepo
		journal repository.MutationRepo
	)
	switch cfg.Session.Store {
	case config.StoreFile:
		store = session.NewFileStore(cfg.Session.FilePath)
	default:
		database, err := db.New(ctx, cfg.Session.DatabasePath, logger)
		if err != nil {
			a.close()
			return nil, err
		}
		a.closers = append(a.closers, database.Close)
		if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
			a.close()
			return nil, err
		}
		repo := sqlite.New(database, logger)
		store, journal = repo, repo
	}

	a.sessions = session.NewManager(api, store, v, logger)
	api.SetTokenSource(a.sessions)
	a.svc = pedidos.New(pedidos.Deps{
		Pedidos:          api,
		Disponibilidades: api,
		Profiles:         api,
		Journal:          journal,
		Validator:        v,
		Logger:           logger,
		Policy:           policy,
	})
	return a, nil
}

// close releases resources in reverse order of acquisition.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", slog.String("err", err.Error()))
		}
	}
	a.closers = nil
}

// actor restores the stored session and resolves the acting profile.
func (a *app) actor(ctx context.Context) (pedidos.Actor, error) {
	sess, err := a.sessions.Hydrate(ctx)
	if err != nil {
		return pedidos.Actor{}, err
	}
	return a.svc.ActorFor(ctx, sess)
}

func (a *app) ok(format string, args ...any) {
	fmt.Fprintf(a.out, "OK: "+format+"\n", args...)
}

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// joinArgs rebuilds free text passed as several arguments.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
