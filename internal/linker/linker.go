// Package linker assigns objects to link sets. Seeding puts each
// unanchored object into Application or Optional; LinkObj then
// recursively pulls the provider of every import into the same set,
// so Application membership dominates Optional membership whenever an
// object could satisfy both.
package linker

import (
	"fmt"

	"github.com/symld/symld/internal/debug"
	"github.com/symld/symld/internal/errors"
	"github.com/symld/symld/internal/graph"
)

// Linker drives link-set construction over an Analyzer's graph.
type Linker struct {
	a *graph.Analyzer

	// WarnUndefined emits a warning for every import whose symbol has
	// no real definition.
	WarnUndefined bool

	warnings []error
}

// New creates a Linker over a.
func New(a *graph.Analyzer) *Linker {
	return &Linker{a: a}
}

// Warnings returns the undefined-symbol warnings accumulated by
// LinkObj calls (empty unless WarnUndefined is set).
func (l *Linker) Warnings() []error {
	return l.warnings
}

// LinkObj installs f's imports into their symbols' imported-from
// chains and recursively anchors the provider of each import into f's
// set. f must already be anchored by the caller. Providers that
// already belong to some set are left as-is; in particular the
// undefined pod, permanently anchored to the Undefined set, is never
// pulled in, so imports of symbols defined nowhere terminate here.
func (l *Linker) LinkObj(f graph.ObjectID) {
	obj := l.a.Object(f)
	if obj == nil || obj.Anchor == graph.NoSet {
		panic("linker: LinkObj on nil or unanchored object")
	}

	for _, impID := range obj.Imports {
		imp := l.a.Xref(impID)
		if imp.Next != 0 {
			panic("linker: invariant violation: import already installed in a chain")
		}
		l.a.LinkImport(impID)

		chain := l.a.ExportedBy(imp.Sym)
		if len(chain) == 0 {
			// Unreachable after Finish seeds the pod, but a graph
			// linked without the dangling pass still has to hold.
			l.warnUndefined(imp.Sym, f)
			continue
		}

		dep := l.a.Xref(chain[0]).Obj
		if dep == l.a.UndefinedPod {
			l.warnUndefined(imp.Sym, f)
		}
		if l.a.Object(dep).Anchor == graph.NoSet {
			l.a.SetAnchor(obj.Anchor, dep)
			debug.Verbosef("%s pulls %s into %s", l.a.ObjectName(f), l.a.ObjectName(dep), obj.Anchor)
			l.LinkObj(dep)
		}
	}

	// f joins its set's chain only after its providers, so the seed of
	// each pull ends up at the head and the chain reads in dependency
	// order from there.
	l.a.PrependToChain(f)
}

func (l *Linker) warnUndefined(sym graph.SymbolID, from graph.ObjectID) {
	if !l.WarnUndefined {
		return
	}
	warn := errors.NewLinkWarning(l.a.SymbolName(sym), l.a.ObjectName(from), "no object defines it")
	l.warnings = append(l.warnings, warn)
	debug.Warnf("%s", warn.Error())
}

// seed anchors f into set and links it.
func (l *Linker) seed(set graph.LinkSetID, f graph.ObjectID) {
	l.a.SetAnchor(set, f)
	l.LinkObj(f)
}

// SeedByWatermark iterates all objects in ingest order and anchors
// every still-unanchored one: objects with ID at or below watermark
// (the last object of the first listing file) seed the Application
// set, the rest seed Optional. Objects already pulled into a set by an
// earlier seed are left alone.
func (l *Linker) SeedByWatermark(watermark graph.ObjectID) {
	for _, f := range l.a.Objects() {
		if f == l.a.UndefinedPod {
			continue
		}
		if l.a.Object(f).Anchor != graph.NoSet {
			continue
		}
		set := graph.Optional
		if f <= watermark {
			set = graph.Application
		}
		l.seed(set, f)
	}
}

// SeedByEntrySymbol anchors the definition site of sym as the sole
// Application seed, then sweeps the remaining unanchored objects into
// Optional. A symbol that is unknown or defined nowhere is a fatal
// input error.
func (l *Linker) SeedByEntrySymbol(sym string) error {
	symID, ok := l.a.LookupSymbol(sym)
	if !ok {
		return errors.NewIngestError("application seed", fmt.Errorf("symbol %s not seen in any listing", sym))
	}
	chain := l.a.ExportedBy(symID)
	if len(chain) == 0 || l.a.Xref(chain[0]).Obj == l.a.UndefinedPod {
		return errors.NewIngestError("application seed", fmt.Errorf("symbol %s has no definition", sym))
	}

	entry := l.a.Xref(chain[0]).Obj
	if l.a.Object(entry).Anchor == graph.NoSet {
		l.seed(graph.Application, entry)
	}

	for _, f := range l.a.Objects() {
		if f == l.a.UndefinedPod || l.a.Object(f).Anchor != graph.NoSet {
			continue
		}
		l.seed(graph.Optional, f)
	}
	return nil
}
