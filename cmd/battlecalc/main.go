// Battle analytics over a CSV creature dataset.
//
// Usage:
//
//	battlecalc [-config battlecalc.yaml] [-env .env] [-json] <command> [flags] [args]
//	battlecalc --list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/udisondev/pkmbattle/internal/config"
	"github.com/udisondev/pkmbattle/internal/data"
)

const DefaultConfigPath = "battlecalc.yaml"

var errUsage = errors.New("usage")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fset := flag.NewFlagSet("battlecalc", flag.ContinueOnError)
	cfgPath := fset.String("config", "", "config file (default $PKMBATTLE_CONFIG or "+DefaultConfigPath+")")
	envFile := fset.String("env", ".env", "dotenv file, ignored when missing")
	asJSON := fset.Bool("json", false, "print JSON instead of tables")
	list := fset.Bool("list", false, "list commands")
	fset.Usage = func() { printUsage(fset.Output(), fset) }
	if err := fset.Parse(args); err != nil {
		return err
	}

	if *list {
		printList(stdout)
		return nil
	}
	if fset.NArg() == 0 {
		printUsage(os.Stderr, fset)
		return errUsage
	}

	// .env goes first so it can point at the config file
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", *envFile, err)
	}

	path := *cfgPath
	if path == "" {
		path = DefaultConfigPath
		if p := os.Getenv("PKMBATTLE_CONFIG"); p != "" {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	cmd, ok := lookupCommand(fset.Arg(0))
	if !ok {
		printList(os.Stderr)
		return fmt.Errorf("unknown command %q", fset.Arg(0))
	}

	store, err := data.Load(ctx, cfg.Store())
	if err != nil {
		return fmt.Errorf("loading dataset from %s: %w", cfg.Data.Dir, err)
	}

	a := newApp(cfg, store, newOutput(stdout, *asJSON))
	return a.exec(cmd, fset.Args()[1:])
}

func printUsage(w io.Writer, fset *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: battlecalc [flags] <command> [command flags] [args]")
	fmt.Fprintln(w, "       battlecalc --list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fset.SetOutput(w)
	fset.PrintDefaults()
	fmt.Fprintln(w)
	printList(w)
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
