package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/symld/symld/internal/config"
	"github.com/symld/symld/internal/debug"
	"github.com/symld/symld/internal/errors"
	"github.com/symld/symld/internal/graph"
	"github.com/symld/symld/internal/ingest"
	"github.com/symld/symld/internal/linker"
	"github.com/symld/symld/internal/report"
	"github.com/symld/symld/internal/suggest"
	"github.com/symld/symld/internal/unlinker"
)

// runOpts selects the outputs of one driver run; the subcommands are
// thin wrappers that pre-set these.
type runOpts struct {
	deps        bool
	syms        bool
	interactive bool
	trackSyms   []string
	trackObjs   []string
}

func runAnalyze(c *cli.Context) error {
	return analyze(c, runOpts{
		deps:        c.Bool("deps"),
		syms:        c.Bool("syms"),
		interactive: c.Bool("interactive"),
	})
}

// analyze is the whole driver: build the database from the listing
// files, construct the link sets, apply removals, prune undefineds,
// then produce whatever outputs the flags ask for.
func analyze(c *cli.Context, opts runOpts) error {
	listings := c.Args().Slice()
	if len(listings) == 0 {
		return fmt.Errorf("no listing files given")
	}

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	if err := applyOutputConfig(cfg); err != nil {
		return err
	}

	a, watermark, err := buildDatabase(cfg, listings)
	if err != nil {
		return err
	}

	lnk := linker.New(a)
	lnk.WarnUndefined = cfg.Link.WarnUndefined
	if cfg.Link.AppSeed != "" {
		if err := lnk.SeedByEntrySymbol(cfg.Link.AppSeed); err != nil {
			return err
		}
	} else {
		lnk.SeedByWatermark(watermark)
	}

	if removeFile := c.String("remove"); removeFile != "" {
		if err := applyRemovalList(a, removeFile); err != nil {
			return err
		}
	}

	unlinker.PruneUndefined(a)

	if cfg.Link.CheckMultipleDefs {
		clashes := report.CheckMultipleDefs(c.App.Writer, a, graph.Application)
		clashes += report.CheckMultipleDefs(c.App.Writer, a, graph.Optional)
		debug.Infof("%d name clash(es)", clashes)
	}

	if opts.deps || opts.syms {
		var d report.Dump
		if opts.deps {
			d.Objects = report.BuildObjectDump(a)
		}
		if opts.syms {
			d.Symbols = report.BuildSymbolDump(a)
		}
		if err := report.WriteDump(c.App.Writer, d, c.String("format")); err != nil {
			return err
		}
	}

	if scriptFile := c.String("emit"); scriptFile != "" {
		if err := emitScriptFile(a, scriptFile); err != nil {
			return cli.Exit(fmt.Sprintf("symld: %v", err), exitEmit)
		}
	}

	for _, name := range opts.trackSyms {
		querySym(c.App.Writer, a, name)
	}
	for _, pattern := range opts.trackObjs {
		queryObj(c.App.Writer, a, pattern)
	}

	if opts.interactive {
		runREPL(c.App.Reader, c.App.Writer, a)
	}
	return nil
}

// buildDatabase reads all listing files concurrently, then ingests
// them one at a time in command-line order. The returned watermark is
// the last object of the first listing, separating the default
// Application seeds from the Optional ones.
func buildDatabase(cfg *config.Config, listings []string) (*graph.Analyzer, graph.ObjectID, error) {
	contents := make([][]byte, len(listings))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, file := range listings {
		i, file := i, file
		g.Go(func() error {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			contents[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	a := graph.New()
	in := ingest.NewIngester(a, cfg.Scanner.Lenient)

	var watermark graph.ObjectID
	for i, file := range listings {
		if err := in.IngestListing(bytes.NewReader(contents[i]), file); err != nil {
			return nil, 0, err
		}
		if i == 0 {
			watermark = graph.ObjectID(a.NumObjects())
		}
	}
	in.Finish()
	return a, watermark, nil
}

func emitScriptFile(a *graph.Analyzer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.EmitScript(f, a, true); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// applyRemovalList un-links the objects named in path from the
// Optional set, one name or glob pattern per line. Rejections,
// lookup misses, and ambiguous bare names are reported and skipped;
// none of them is fatal.
func applyRemovalList(a *graph.Analyzer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		removeByName(a, line)
	}
	return sc.Err()
}

func removeByName(a *graph.Analyzer, pattern string) {
	matches, err := report.FileListFind(a, pattern)
	if err != nil {
		debug.Warnf("remove %s: %v", pattern, err)
		return
	}

	if len(matches) == 0 {
		err := errors.NewNotFoundError(pattern)
		if hint, ok := suggest.Closest(pattern, allDisplayNames(a)); ok {
			err = err.WithSuggestion(hint)
		}
		debug.Warnf("remove: %v", err)
		return
	}

	// A bare name hitting several archive members is an ambiguity the
	// caller must resolve with the lib[member] form; an explicit glob
	// means every match.
	if len(matches) > 1 && !isGlobPattern(pattern) {
		names := make([]string, len(matches))
		for i, id := range matches {
			names[i] = a.DisplayName(id)
		}
		debug.Warnf("remove: %v", errors.NewAmbiguousMatchError(pattern, names))
		return
	}

	for _, id := range matches {
		if err := unlinker.UnlinkObj(a, id); err != nil {
			debug.Warnf("remove %s: %v", a.DisplayName(id), err)
		}
	}
}

func isGlobPattern(pattern string) bool {
	return strings.ContainsAny(pattern, "*?{")
}

func allDisplayNames(a *graph.Analyzer) []string {
	var out []string
	for _, id := range a.Objects() {
		if id == a.UndefinedPod {
			continue
		}
		out = append(out, a.DisplayName(id), a.ObjectName(id))
	}
	return out
}
