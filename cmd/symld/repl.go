package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/symld/symld/internal/errors"
	"github.com/symld/symld/internal/graph"
	"github.com/symld/symld/internal/report"
	"github.com/symld/symld/internal/suggest"
	"github.com/symld/symld/internal/unlinker"
)

// runREPL reads queries from r until a single "." line or EOF.
// Queries:
//
//	sym <name>      trace a symbol
//	obj <name>      trace an object (lib[member] and globs accepted)
//	unlink <name>   un-link an object from the Optional set
//	<name>          try object lookup first, then symbol
func runREPL(r io.Reader, w io.Writer, a *graph.Analyzer) {
	sc := bufio.NewScanner(r)
	fmt.Fprintln(w, "symld interactive mode; '.' ends")

	for {
		fmt.Fprint(w, "> ")
		if !sc.Scan() {
			return
		}
		line := strings.TrimSpace(sc.Text())
		if line == "." {
			return
		}
		if line == "" {
			continue
		}

		cmd, arg, hasArg := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch {
		case cmd == "sym" && hasArg:
			querySym(w, a, arg)
		case cmd == "obj" && hasArg:
			queryObj(w, a, arg)
		case cmd == "unlink" && hasArg:
			queryUnlink(w, a, arg)
		default:
			// A bare name: object first, then symbol.
			matches, err := report.FileListFind(a, line)
			if err == nil && len(matches) > 0 {
				queryObj(w, a, line)
				continue
			}
			if _, ok := a.LookupSymbol(line); ok {
				querySym(w, a, line)
				continue
			}
			reportMiss(w, a, line)
		}
	}
}

func querySym(w io.Writer, a *graph.Analyzer, name string) {
	if err := report.TrackSym(w, a, name); err != nil {
		reportMiss(w, a, name)
	}
}

func queryObj(w io.Writer, a *graph.Analyzer, pattern string) {
	matches, err := report.FileListFind(a, pattern)
	if err != nil {
		fmt.Fprintf(w, "%v\n", err)
		return
	}
	if len(matches) == 0 {
		reportMiss(w, a, pattern)
		return
	}
	if len(matches) > 1 && !isGlobPattern(pattern) {
		names := make([]string, len(matches))
		for i, id := range matches {
			names[i] = a.DisplayName(id)
		}
		fmt.Fprintf(w, "%v\n", errors.NewAmbiguousMatchError(pattern, names))
		return
	}
	for _, id := range matches {
		report.TrackObj(w, a, id)
	}
}

func queryUnlink(w io.Writer, a *graph.Analyzer, pattern string) {
	matches, err := report.FileListFind(a, pattern)
	if err != nil || len(matches) == 0 {
		reportMiss(w, a, pattern)
		return
	}
	if len(matches) > 1 && !isGlobPattern(pattern) {
		names := make([]string, len(matches))
		for i, id := range matches {
			names[i] = a.DisplayName(id)
		}
		fmt.Fprintf(w, "%v\n", errors.NewAmbiguousMatchError(pattern, names))
		return
	}
	for _, id := range matches {
		if err := unlinker.UnlinkObj(a, id); err != nil {
			fmt.Fprintf(w, "%v\n", err)
		} else {
			fmt.Fprintf(w, "unlinked %s\n", a.DisplayName(id))
		}
	}
}

// reportMiss prints a not-found diagnostic with a closest-name hint
// drawn from both the object and symbol namespaces.
func reportMiss(w io.Writer, a *graph.Analyzer, query string) {
	candidates := allDisplayNames(a)
	for _, symID := range a.Symbols() {
		candidates = append(candidates, a.SymbolName(symID))
	}

	err := errors.NewNotFoundError(query)
	if hint, ok := suggest.Closest(query, candidates); ok {
		err = err.WithSuggestion(hint)
	}
	fmt.Fprintf(w, "%v\n", err)
}
