package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symld/symld/internal/errors"
	"github.com/symld/symld/internal/graph"
)

const appListing = `
A.o:
main T 0000 0010
foo U
`

const libListing = `
libx.a[b.o]:
foo T 0020 0008
bar U

libx.a[c.o]:
bar T 0030 0004
`

func ingestAll(t *testing.T, a *graph.Analyzer, lenient bool, listings map[string]string, order ...string) *Ingester {
	t.Helper()
	in := NewIngester(a, lenient)
	for _, file := range order {
		require.NoError(t, in.IngestListing(strings.NewReader(listings[file]), file))
	}
	in.Finish()
	return in
}

func TestIngestBuildsObjectsAndXrefs(t *testing.T) {
	a := graph.New()
	ingestAll(t, a, false,
		map[string]string{"app.nm": appListing, "lib.nm": libListing},
		"app.nm", "lib.nm")

	require.NoError(t, a.CheckInvariants())

	// app.nm: A.o, lib.nm: libx.a[b.o], libx.a[c.o], plus the pod.
	require.Equal(t, 4, a.NumObjects())

	var appObj graph.ObjectID
	for _, id := range a.Objects() {
		if a.ObjectName(id) == "A.o" {
			appObj = id
		}
	}
	require.NotZero(t, appObj)
	assert.Len(t, a.Object(appObj).Exports, 1)
	assert.Len(t, a.Object(appObj).Imports, 1)

	mainSym, ok := a.LookupSymbol("main")
	require.True(t, ok)
	chain := a.ExportedBy(mainSym)
	require.Len(t, chain, 1)
	assert.Equal(t, appObj, a.Xref(chain[0]).Obj)

	// foo is defined in b.o; the chain was threaded at fix-up time.
	fooSym, ok := a.LookupSymbol("foo")
	require.True(t, ok)
	require.Len(t, a.ExportedBy(fooSym), 1)
	assert.Equal(t, "b.o", a.ObjectName(a.Xref(a.ExportedBy(fooSym)[0]).Obj))

	// Imports are not threaded into imported-from chains at ingest.
	assert.Empty(t, a.ImportedFrom(fooSym))
}

func TestIngestUndefinedPodExhaustiveness(t *testing.T) {
	a := graph.New()
	// bar is imported by b.o but c.o (its definer) is absent.
	trimmed := `
libx.a[b.o]:
foo T
bar U
`
	ingestAll(t, a, false, map[string]string{"lib.nm": trimmed}, "lib.nm")

	// A symbol has a pod export iff its exported-by chain is otherwise
	// empty.
	pod := a.Object(a.UndefinedPod)
	podSyms := make(map[string]bool)
	for _, ex := range pod.Exports {
		podSyms[a.SymbolName(a.Xref(ex).Sym)] = true
	}
	assert.Equal(t, map[string]bool{"bar": true}, podSyms)

	barSym, ok := a.LookupSymbol("bar")
	require.True(t, ok)
	chain := a.ExportedBy(barSym)
	require.Len(t, chain, 1)
	assert.Equal(t, a.UndefinedPod, a.Xref(chain[0]).Obj)
}

func TestIngestFabricatesObjectForHeaderlessListing(t *testing.T) {
	a := graph.New()
	listing := `
main T
helper U
`
	ingestAll(t, a, false, map[string]string{"dir/app.nm": listing}, "dir/app.nm")

	var found bool
	for _, id := range a.Objects() {
		if a.ObjectName(id) == "app" {
			found = true
			assert.Len(t, a.Object(id).Exports, 1)
			assert.Len(t, a.Object(id).Imports, 1)
		}
	}
	assert.True(t, found, "a synthetic object named after the listing file must be fabricated")
}

func TestIngestTypeMergePolicy(t *testing.T) {
	a := graph.New()
	listing := `
p.o:
sym U

q.o:
sym T

r.o:
sym D
`
	in := ingestAll(t, a, false, map[string]string{"l.nm": listing}, "l.nm")

	symID, ok := a.LookupSymbol("sym")
	require.True(t, ok)
	// U is overwritten by the first non-U type; the later D disagrees
	// and is dropped with a warning.
	assert.Equal(t, graph.TypeText, a.Symbol(symID).Type)

	require.Len(t, in.Warnings(), 1)
	var warn *errors.LinkWarning
	require.ErrorAs(t, in.Warnings()[0], &warn)
	assert.Equal(t, "sym", warn.Symbol)
}

func TestIngestWeakTypesMarkOccurrenceWeak(t *testing.T) {
	a := graph.New()
	listing := `
p.o:
sym W

q.o:
sym T
`
	ingestAll(t, a, false, map[string]string{"l.nm": listing}, "l.nm")

	symID, ok := a.LookupSymbol("sym")
	require.True(t, ok)
	chain := a.ExportedBy(symID)
	require.Len(t, chain, 2)
	// The strong q.o definition was promoted to the chain head.
	assert.False(t, a.Xref(chain[0]).Weak)
	assert.Equal(t, "q.o", a.ObjectName(a.Xref(chain[0]).Obj))
	assert.True(t, a.Xref(chain[1]).Weak)
}

func TestIngestLenientMode(t *testing.T) {
	a := graph.New()
	listing := `
p.o:
alpha t
beta ?
`
	ingestAll(t, a, true, map[string]string{"l.nm": listing}, "l.nm")

	p := a.Objects()[1] // pod is first
	assert.Len(t, a.Object(p).Exports, 1, "lowercase t upcases to an export")
	assert.Len(t, a.Object(p).Imports, 1, "'?' classifies as an import in lenient mode")
}

func TestIngestRejectsUnknownTypeChar(t *testing.T) {
	a := graph.New()
	in := NewIngester(a, false)
	err := in.IngestListing(strings.NewReader("p.o:\nsym ?\n"), "l.nm")
	require.Error(t, err)

	var scanErr *errors.ScanError
	require.ErrorAs(t, err, &scanErr)
	assert.Equal(t, "l.nm", scanErr.File)
	assert.Equal(t, 2, scanErr.Line)
}

func TestIngestRejectsDuplicateArchiveMember(t *testing.T) {
	a := graph.New()
	in := NewIngester(a, false)
	listing := `
libx.a[b.o]:
foo T

libx.a[b.o]:
bar T
`
	err := in.IngestListing(strings.NewReader(listing), "l.nm")
	require.Error(t, err)

	var ingErr *errors.IngestError
	require.ErrorAs(t, err, &ingErr)
	assert.Contains(t, ingErr.Error(), "duplicate archive member")
}

func TestIngestRejectsMalformedMemberName(t *testing.T) {
	a := graph.New()
	in := NewIngester(a, false)
	err := in.IngestListing(strings.NewReader("b.o]:\nfoo T\n"), "l.nm")
	require.Error(t, err)
}

func TestIngestTwiceGrowsChainsProportionally(t *testing.T) {
	a := graph.New()
	first := `
p.o:
shared T
`
	second := `
q.o:
shared T
`
	ingestAll(t, a, false,
		map[string]string{"a.nm": first, "b.nm": second},
		"a.nm", "b.nm")

	symID, ok := a.LookupSymbol("shared")
	require.True(t, ok)
	assert.Len(t, a.ExportedBy(symID), 2)
	require.NoError(t, a.CheckInvariants())
}

func TestScannerIgnoresValueAndSizeFields(t *testing.T) {
	sc := New(strings.NewReader("main T 00000000 0000001c\n"), "l.nm", false)
	ev, err := sc.Next()
	require.NoError(t, err)
	assert.Equal(t, SymbolEvent, ev.Kind)
	assert.Equal(t, "main", ev.SymbolName)
	assert.Equal(t, byte('T'), ev.TypeChar)
}
