// Package report implements the analyzer's query and output surface:
// symbol and object traces, the multiple-definition check, object
// lookup, the linker-script emitter, and the bulk dumps.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/symld/symld/internal/errors"
	"github.com/symld/symld/internal/graph"
	"github.com/symld/symld/internal/walker"
	"github.com/symld/symld/pkg/pathutil"
)

// FileListFind resolves a display name (or glob pattern) against all
// real objects. Matches come back sorted by (member name, library
// name); a bare member name can legitimately match several archive
// members, and the caller decides whether that ambiguity is an error.
func FileListFind(a *graph.Analyzer, pattern string) ([]graph.ObjectID, error) {
	var matches []graph.ObjectID
	for _, id := range a.Objects() {
		if id == a.UndefinedPod {
			continue
		}
		d := objectDisplay(a, id)
		ok, err := pathutil.Match(pattern, d)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, id)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		ni, nj := a.ObjectName(matches[i]), a.ObjectName(matches[j])
		if ni != nj {
			return ni < nj
		}
		return libName(a, matches[i]) < libName(a, matches[j])
	})
	return matches, nil
}

func objectDisplay(a *graph.Analyzer, id graph.ObjectID) pathutil.DisplayName {
	obj := a.Object(id)
	d := pathutil.DisplayName{Member: a.ObjectName(id)}
	if obj.Library != 0 {
		d.Library = libName(a, id)
		d.IsArchived = true
	}
	return d
}

func libName(a *graph.Analyzer, id graph.ObjectID) string {
	obj := a.Object(id)
	if obj.Library == 0 {
		return ""
	}
	return a.Arena.String(a.Library(obj.Library).Name)
}

// writeClosure prints a work list as a branch tree: the start object
// first, then every discovered object in discovery order.
func writeClosure(w io.Writer, a *graph.Analyzer, wl *walker.WorkList) {
	for i, id := range wl.Objects {
		var branch string
		switch {
		case i == 0:
			branch = "→ "
		case i == len(wl.Objects)-1:
			branch = "└─→ "
		default:
			branch = "├─→ "
		}
		fmt.Fprintf(w, "  %s%s\n", branch, a.DisplayName(id))
	}
}

// TrackSym prints everything known about one symbol: its defining
// objects with weak flags, the forward dependency closure of the
// first definition, and the backward closure of every importer.
func TrackSym(w io.Writer, a *graph.Analyzer, name string) error {
	symID, ok := a.LookupSymbol(name)
	if !ok {
		return errors.NewNotFoundError(name)
	}
	sym := a.Symbol(symID)

	fmt.Fprintf(w, "symbol %s (%c)\n", name, sym.Type)

	defs := a.ExportedBy(symID)
	if len(defs) == 0 {
		fmt.Fprintf(w, "defined nowhere\n")
	} else {
		fmt.Fprintf(w, "defined in:\n")
		for _, exID := range defs {
			ex := a.Xref(exID)
			weak := ""
			if ex.Weak {
				weak = " [weak]"
			}
			fmt.Fprintf(w, "  %s%s\n", a.DisplayName(ex.Obj), weak)
		}

		first := a.Xref(defs[0]).Obj
		fmt.Fprintf(w, "%s depends on:\n", a.DisplayName(first))
		wl := walker.New(a, walker.Imports).BuildList(first)
		writeClosure(w, a, wl)
		wl.Release()
	}

	imps := a.ImportedFrom(symID)
	if len(imps) == 0 {
		fmt.Fprintf(w, "used by: nothing\n")
		return nil
	}
	fmt.Fprintf(w, "used by:\n")
	for _, impID := range imps {
		importer := a.Xref(impID).Obj
		wl := walker.New(a, walker.Exports).BuildList(importer)
		writeClosure(w, a, wl)
		wl.Release()
	}
	return nil
}

// TrackObj prints one object's exports and imports and both of its
// transitive closures: the objects that depend on it and the objects
// it depends on.
func TrackObj(w io.Writer, a *graph.Analyzer, f graph.ObjectID) {
	obj := a.Object(f)
	fmt.Fprintf(w, "object %s (%s set)\n", a.DisplayName(f), obj.Anchor)

	fmt.Fprintf(w, "exports:\n")
	for _, exID := range obj.Exports {
		ex := a.Xref(exID)
		weak := ""
		if ex.Weak {
			weak = " [weak]"
		}
		fmt.Fprintf(w, "  %s%s\n", a.SymbolName(ex.Sym), weak)
	}

	fmt.Fprintf(w, "imports:\n")
	for _, impID := range obj.Imports {
		fmt.Fprintf(w, "  %s\n", a.SymbolName(a.Xref(impID).Sym))
	}

	fmt.Fprintf(w, "depended on by:\n")
	wl := walker.New(a, walker.Exports).BuildList(f)
	writeClosure(w, a, wl)
	wl.Release()

	fmt.Fprintf(w, "depends on:\n")
	wl = walker.New(a, walker.Imports).BuildList(f)
	writeClosure(w, a, wl)
	wl.Release()
}

// CheckMultipleDefs scans every object in set for exported symbols
// that more than one object defines, skipping common ('C') symbols,
// and reports each clash once with all of its definition sites.
// A chain where at most one definition is strong is not a clash: weak
// definitions exist to be overridden. Returns the number of clashes
// reported.
func CheckMultipleDefs(w io.Writer, a *graph.Analyzer, set graph.LinkSetID) int {
	reported := make(map[graph.SymbolID]bool)
	clashes := 0

	for _, f := range a.SetMembers(set) {
		for _, exID := range a.Object(f).Exports {
			symID := a.Xref(exID).Sym
			if reported[symID] {
				continue
			}
			sym := a.Symbol(symID)
			if sym.Type == graph.TypeCommon {
				continue
			}
			chain := a.ExportedBy(symID)
			if len(chain) < 2 {
				continue
			}
			strong := 0
			for _, defID := range chain {
				if !a.Xref(defID).Weak {
					strong++
				}
			}
			if strong < 2 {
				continue
			}
			reported[symID] = true
			clashes++

			fmt.Fprintf(w, "symbol %s multiply defined:\n", a.SymbolName(symID))
			for _, defID := range chain {
				def := a.Xref(defID)
				weak := ""
				if def.Weak {
					weak = " [weak]"
				}
				fmt.Fprintf(w, "  %s%s\n", a.DisplayName(def.Obj), weak)
			}
		}
	}
	return clashes
}
