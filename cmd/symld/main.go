package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/symld/symld/internal/config"
	"github.com/symld/symld/internal/debug"
	"github.com/symld/symld/internal/version"
)

var Version = version.Version // Use centralized version management

// Exit codes: ingest and file I/O failures exit 2, script emission
// failures exit 3. A run that only produced warnings exits 0.
const (
	exitOK     = 0
	exitIngest = 2
	exitEmit   = 3
)

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	// Apply CLI flag overrides
	if c.Bool("lenient") {
		cfg.Scanner.Lenient = true
	}
	if c.Bool("warn-undefined") {
		cfg.Link.WarnUndefined = true
	}
	if c.Bool("multidefs") {
		cfg.Link.CheckMultipleDefs = true
	}
	if seed := c.String("app-seed"); seed != "" {
		cfg.Link.AppSeed = seed
	}
	if c.Bool("quiet") {
		cfg.Output.Quiet = true
	}
	if c.Bool("verbose") {
		cfg.Output.Verbose = true
	}
	if log := c.String("log"); log != "" {
		cfg.Output.LogFile = log
	}

	return cfg, nil
}

func applyOutputConfig(cfg *config.Config) error {
	switch {
	case cfg.Output.Quiet:
		debug.SetVerbosity(debug.Quiet)
	case cfg.Output.Verbose:
		debug.SetVerbosity(debug.Verbose)
	default:
		debug.SetVerbosity(debug.Normal)
	}
	if cfg.Output.LogFile != "" {
		return debug.InitLogFile(cfg.Output.LogFile)
	}
	return nil
}

func newApp() *cli.App {
	app := &cli.App{
		Name:                   "symld",
		Usage:                  "object-file dependency analyzer over symbol listings",
		Version:                Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Config file path",
				Value: ".symld.kdl",
			},
			&cli.StringFlag{
				Name:    "emit",
				Aliases: []string{"e"},
				Usage:   "Emit a linker script to `FILE`",
			},
			&cli.StringFlag{
				Name:    "remove",
				Aliases: []string{"r"},
				Usage:   "Read object names from `FILE` and un-link them from the Optional set",
			},
			&cli.StringFlag{
				Name:    "app-seed",
				Aliases: []string{"A"},
				Usage:   "Use `SYM`'s definition site as the Application seed instead of the first listing",
			},
			&cli.StringFlag{
				Name:    "log",
				Aliases: []string{"o"},
				Usage:   "Redirect warnings and trace output to `FILE`",
			},
			&cli.BoolFlag{
				Name:    "lenient",
				Aliases: []string{"f"},
				Usage:   "Lenient scanner: upcase lowercase type codes, accept '?' imports",
			},
			&cli.BoolFlag{
				Name:    "multidefs",
				Aliases: []string{"m"},
				Usage:   "Report symbols with more than one strong definition",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Enter the interactive query loop after linking",
			},
			&cli.BoolFlag{
				Name:    "deps",
				Aliases: []string{"d"},
				Usage:   "Dump every object with its exports and imports",
			},
			&cli.BoolFlag{
				Name:    "syms",
				Aliases: []string{"s"},
				Usage:   "Dump every symbol with its definition and use sites",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Bulk dump format: text or toml",
				Value: "text",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"l"},
				Usage:   "Trace link-set construction and pruning",
			},
			&cli.BoolFlag{
				Name:    "warn-undefined",
				Aliases: []string{"u"},
				Usage:   "Warn for every import that no object defines",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress warnings",
			},
		},
		Action: runAnalyze,
		Commands: []*cli.Command{
			{
				Name:      "link",
				Usage:     "Build the database, link, prune, and optionally emit a script",
				ArgsUsage: "<listing>...",
				Action:    runAnalyze,
			},
			{
				Name:      "report",
				Usage:     "Build the database and trace the named symbols and objects",
				ArgsUsage: "<listing>...",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "sym",
						Usage: "Trace `SYMBOL`: definers, forward closure, importers",
					},
					&cli.StringSliceFlag{
						Name:  "obj",
						Usage: "Trace `OBJECT`: exports, imports, both closures",
					},
				},
				Action: func(c *cli.Context) error {
					return analyze(c, runOpts{
						trackSyms: c.StringSlice("sym"),
						trackObjs: c.StringSlice("obj"),
					})
				},
			},
			{
				Name:      "dump",
				Usage:     "Build the database and dump objects or symbols",
				ArgsUsage: "<listing>...",
				Action: func(c *cli.Context) error {
					return analyze(c, runOpts{
						deps: c.Bool("deps") || !c.Bool("syms"),
						syms: c.Bool("syms"),
					})
				},
			},
			{
				Name:      "repl",
				Usage:     "Build the database and enter the interactive query loop",
				ArgsUsage: "<listing>...",
				Action: func(c *cli.Context) error {
					return analyze(c, runOpts{interactive: true})
				},
			},
		},
	}
	return app
}

func main() {
	defer debug.CloseLog()
	// Script-emission failures return a cli.Exit error and never reach
	// this handler; everything else is an ingest or I/O failure.
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "symld: %v\n", err)
		os.Exit(exitIngest)
	}
}
