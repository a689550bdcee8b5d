// Package ingest builds the symbol/object graph from symbol listings.
// The Scanner tokenizes one listing into BeginObject/Symbol events; the
// Ingester consumes those events, creating objects and symbols,
// appending export/import cross-references, and running the deferred
// export fix-up once per object. After the last listing, Finish runs
// the dangling-undefineds pass that seeds the undefined pod.
package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/symld/symld/internal/debug"
	"github.com/symld/symld/internal/errors"
	"github.com/symld/symld/internal/graph"
	"github.com/symld/symld/pkg/pathutil"
)

// Ingester accumulates listings into an Analyzer's graph. Listings are
// ingested strictly one at a time, in call order.
type Ingester struct {
	a        *graph.Analyzer
	lenient  bool
	current  graph.ObjectID // most recently begun object of the active listing
	finished bool
	warnings []error
}

// NewIngester creates an Ingester building into a. When lenient is
// true the scanner upcases lowercase type codes and accepts '?' as an
// import.
func NewIngester(a *graph.Analyzer, lenient bool) *Ingester {
	return &Ingester{a: a, lenient: lenient}
}

// Warnings returns the non-fatal conditions accumulated so far (type
// disagreements between definitions).
func (in *Ingester) Warnings() []error {
	return in.warnings
}

// IngestListing reads one listing from r, identified as file in
// diagnostics, and folds its objects and symbols into the graph. The
// last object of the listing has its export fix-up applied before
// IngestListing returns, so the next listing starts clean.
func (in *Ingester) IngestListing(r io.Reader, file string) error {
	if in.finished {
		return errors.NewIngestError("ingest", fmt.Errorf("listing %s arrived after Finish", file))
	}

	in.current = 0
	sc := New(r, file, in.lenient)
	for {
		ev, err := sc.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch ev.Kind {
		case BeginObject:
			if err := in.beginObject(ev.DisplayName, file, sc.line); err != nil {
				return err
			}
		case SymbolEvent:
			if err := in.symbol(ev.SymbolName, ev.TypeChar, file); err != nil {
				return err
			}
		}
	}

	in.flushCurrent()
	return nil
}

// beginObject closes out the previous object (running its export
// fix-up, now that its export array will not be appended to again) and
// registers the next one.
func (in *Ingester) beginObject(display, file string, line int) error {
	in.flushCurrent()

	d, err := pathutil.ParseDisplayName(display)
	if err != nil {
		return errors.NewIngestError("object header", err).WithLocation(file, line)
	}

	var id graph.ObjectID
	if d.IsArchived {
		var ok bool
		id, ok = in.a.NewLibraryObject(d.Library, d.Member)
		if !ok {
			return errors.NewIngestError("object header",
				fmt.Errorf("duplicate archive member %s", d.Format())).WithLocation(file, line)
		}
	} else {
		id = in.a.NewObject(d.Member)
	}

	debug.LogIngest("object %s -> id %d\n", display, id)
	in.current = id
	return nil
}

// symbol attributes one symbol occurrence to the current object,
// fabricating an object named after the listing file if none has been
// begun yet.
func (in *Ingester) symbol(name string, typeChar byte, file string) error {
	if in.current == 0 {
		in.current = in.a.NewObject(syntheticObjectName(file))
		debug.LogIngest("fabricated object %s for headerless listing %s\n", in.a.ObjectName(in.current), file)
	}

	symID := in.a.GetOrCreateSymbol(name)
	sym := in.a.Symbol(symID)
	typ := graph.SymbolType(typeChar)

	switch {
	case sym.Type == 0:
		sym.Type = typ
	case sym.Type == graph.TypeUndefined && typ != graph.TypeUndefined:
		sym.Type = typ
	case typ != graph.TypeUndefined && sym.Type != typ &&
		!graph.IsWeakType(typ) && !graph.IsWeakType(sym.Type):
		// Weak and strong definitions of the same name coexist by
		// contract, so only strong-vs-strong disagreements warn. The
		// first recorded type is kept either way.
		warn := errors.NewLinkWarning(name, in.a.ObjectName(in.current),
			fmt.Sprintf("type mismatch: %c vs %c, keeping %c", sym.Type, typ, sym.Type))
		in.warnings = append(in.warnings, warn)
		debug.Warnf("%s", warn.Error())
	}

	if graph.IsExportType(typ) {
		in.a.AppendExport(in.current, symID, graph.IsWeakType(typ))
	} else {
		in.a.AppendImport(in.current, symID, false)
	}
	return nil
}

// flushCurrent applies the deferred export fix-up to the active object
// and deactivates it.
func (in *Ingester) flushCurrent() {
	if in.current == 0 {
		return
	}
	in.a.FixupExports(in.current)
	in.current = 0
}

// Finish runs the dangling-undefineds pass: every symbol whose
// exported-by chain is still empty gets one export on the undefined
// pod, in symbol-table order, so the pod's export list enumerates
// exactly the symbols defined nowhere. Must be called once, after the
// last listing.
func (in *Ingester) Finish() {
	if in.finished {
		return
	}
	in.finished = true

	pod := in.a.UndefinedPod
	for _, symID := range in.a.Symbols() {
		if in.a.Symbol(symID).ExportedBy == 0 {
			in.a.AppendExport(pod, symID, false)
			debug.LogIngest("symbol %s defined nowhere, seeded on undefined pod\n", in.a.SymbolName(symID))
		}
	}
	in.a.FixupExports(pod)
}

// syntheticObjectName derives a fabricated object name from a
// headerless listing's base name, with the extension stripped.
func syntheticObjectName(file string) string {
	base := filepath.Base(file)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
