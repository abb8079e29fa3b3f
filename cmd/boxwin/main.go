// Package main is the entry point for the boxwin command.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/boxwin/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// cliFlags holds flags that steer main rather than the application.
type cliFlags struct {
	dump     bool
	headless bool
	fill     bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, cli := parseFlags()

	stdout := int(os.Stdout.Fd())
	opts.Terminal = !cli.headless && term.IsTerminal(stdout)
	if opts.Terminal && cli.fill {
		if w, h, err := term.GetSize(stdout); err == nil {
			opts.Width, opts.Height = w, h
		}
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if cli.dump {
		doc, err := application.Session().Dump()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: dump: %v\n", err)
			return 1
		}
		fmt.Print(doc)
	}

	return 0
}

func parseFlags() (app.Options, cliFlags) {
	var opts app.Options
	var cli cliFlags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (TOML or YAML)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ScriptPath, "script", "", "Lua script to run")
	flag.StringVar(&opts.ScriptPath, "s", "", "Lua script to run (shorthand)")
	flag.BoolVar(&opts.Watch, "watch", false, "Re-run the script when it changes")
	flag.BoolVar(&opts.Watch, "w", false, "Re-run the script when it changes (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.IntVar(&opts.Width, "width", 0, "Surface width in cells")
	flag.IntVar(&opts.Height, "height", 0, "Surface height in cells")
	flag.BoolVar(&cli.fill, "fill", false, "Use the whole terminal")
	flag.BoolVar(&cli.headless, "headless", false, "Draw on an in-memory surface instead of the terminal")
	flag.BoolVar(&cli.dump, "dump", false, "Print the session as JSON on exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "boxwin - bordered text boxes for the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: boxwin [options] [script.lua]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  boxwin demo.lua                 Run a script, q or Esc quits\n")
		fmt.Fprintf(os.Stderr, "  boxwin -w demo.lua              Re-run on every save\n")
		fmt.Fprintf(os.Stderr, "  boxwin -headless -dump demo.lua Print the resulting session\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("boxwin %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	if opts.ScriptPath == "" && flag.NArg() > 0 {
		opts.ScriptPath = flag.Arg(0)
	}

	return opts, cli
}
