// binel inspects and converts Celeste binary map files.
//
// Usage:
//
//	binel [--config FILE] [--debug] <command> [args]
//
// Commands:
//
//	dump FILE.bin [-o FILE.yaml]       print a map as YAML
//	build FILE.yaml -o FILE.bin        encode a YAML map
//	stats FILE.bin                     summarize a map's shape and encoding
//	verify FILE.bin                    check that a map survives a round trip
//	snapshot save|list|restore|prune   manage the autosave history
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"github.com/rhelmot/arborio-sub001/internal/config"
)

// errUsage signals a command line mistake; usage has already been printed.
var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

type app struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	cfg    *config.Config
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var configPath string
	var debug bool

	flagSet := pflag.NewFlagSet("binel", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&configPath, "config", "", "config file (default: $"+config.EnvVar+")")
	flagSet.BoolVar(&debug, "debug", false, "enable debug logging")
	flagSet.Usage = func() { printUsage(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return errUsage
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printUsage(stderr, flagSet)
		return errUsage
	}

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := cfg.SlogLevel()
	if debug {
		level = slog.LevelDebug
	}

	a := &app{
		stdout: stdout,
		stderr: stderr,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
		cfg:    cfg,
	}

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "dump":
		return a.dump(cmdArgs)
	case "build":
		return a.build(cmdArgs)
	case "stats":
		return a.stats(cmdArgs)
	case "verify":
		return a.verify(cmdArgs)
	case "snapshot":
		return a.snapshot(ctx, cmdArgs)
	case "help":
		printUsage(stdout, flagSet)
		return nil
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
		printUsage(stderr, flagSet)

		return errUsage
	}
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprint(w, `binel - inspect and convert Celeste binary map files

Usage:
  binel [flags] <command> [args]

Commands:
  dump FILE.bin [-o FILE.yaml]       print a map as YAML
  build FILE.yaml -o FILE.bin        encode a YAML map
  stats FILE.bin                     summarize a map's shape and encoding
  verify FILE.bin                    check that a map survives a round trip
  snapshot save FILE.bin             store a snapshot of a map
  snapshot list                      list snapshots, newest first
  snapshot restore ID -o FILE.bin    write a snapshot back out
  snapshot prune --keep N            drop all but the newest N snapshots

Flags:
`)
	fmt.Fprint(w, flagSet.FlagUsages())
}

// subcommand parses the flags of one command and checks its positional
// argument count.
func (a *app) subcommand(name string, args []string, nargs int, setup func(*pflag.FlagSet)) ([]string, error) {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SetOutput(a.stderr)
	if setup != nil {
		setup(flagSet)
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, errUsage
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if flagSet.NArg() != nargs {
		return nil, fmt.Errorf("%s: expected %d argument(s), got %d", name, nargs, flagSet.NArg())
	}

	return flagSet.Args(), nil
}
