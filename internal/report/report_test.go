package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symld/symld/internal/errors"
	"github.com/symld/symld/internal/graph"
	"github.com/symld/symld/internal/ingest"
	"github.com/symld/symld/internal/linker"
)

const appListing = `
A.o:
main T
foo U
`

const libListing = `
libx.a[b.o]:
foo T
bar U

libx.a[c.o]:
bar T
`

func buildLinked(t *testing.T, listings ...string) *graph.Analyzer {
	t.Helper()
	a := graph.New()
	in := ingest.NewIngester(a, false)

	var watermark graph.ObjectID
	for i, text := range listings {
		require.NoError(t, in.IngestListing(strings.NewReader(text), "listing.nm"))
		if i == 0 {
			watermark = graph.ObjectID(a.NumObjects())
		}
	}
	in.Finish()
	linker.New(a).SeedByWatermark(watermark)
	return a
}

func findObject(t *testing.T, a *graph.Analyzer, name string) graph.ObjectID {
	t.Helper()
	for _, id := range a.Objects() {
		if a.ObjectName(id) == name {
			return id
		}
	}
	t.Fatalf("object %s not found", name)
	return 0
}

func TestEmitScriptSectionOrder(t *testing.T) {
	a := buildLinked(t, appListing, libListing)

	var buf bytes.Buffer
	require.NoError(t, EmitScript(&buf, a, true))
	out := buf.String()

	assert.Contains(t, out, "/* ===== Application link set ===== */")
	assert.Contains(t, out, "/* ===== Optional link set ===== */")
	assert.Contains(t, out, "/* A.o */")
	assert.Contains(t, out, "/* libx.a[b.o] */")

	// Membership order: the application seed first, then providers.
	iMain := strings.Index(out, "EXTERN( main )")
	iFoo := strings.Index(out, "EXTERN( foo )")
	iBar := strings.Index(out, "EXTERN( bar )")
	require.True(t, iMain >= 0 && iFoo >= 0 && iBar >= 0)
	assert.Less(t, iMain, iFoo)
	assert.Less(t, iFoo, iBar)
}

func TestEmitScriptIsLengthStable(t *testing.T) {
	a := buildLinked(t, appListing, libListing)

	var first, second bytes.Buffer
	require.NoError(t, EmitScript(&first, a, true))
	require.NoError(t, EmitScript(&second, a, true))
	assert.Equal(t, first.String(), second.String())
}

func TestEmitScriptSuppressesApplication(t *testing.T) {
	a := buildLinked(t, appListing, libListing)

	var buf bytes.Buffer
	require.NoError(t, EmitScript(&buf, a, false))
	assert.NotContains(t, buf.String(), "Application")
	assert.Contains(t, buf.String(), "/* ===== Optional link set ===== */")
}

func TestFileListFindBareAndQualified(t *testing.T) {
	lib := `
libx.a[b.o]:
foo T

liby.a[b.o]:
other T
`
	a := buildLinked(t, appListing, lib)

	// A bare member name matches both archive members, sorted by
	// (name, lib) so the caller can present the ambiguity.
	matches, err := FileListFind(a, "b.o")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "libx.a", libName(a, matches[0]))
	assert.Equal(t, "liby.a", libName(a, matches[1]))

	// The qualified form disambiguates.
	matches, err = FileListFind(a, "liby.a[b.o]")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "liby.a", libName(a, matches[0]))
}

func TestFileListFindGlob(t *testing.T) {
	a := buildLinked(t, appListing, libListing)

	matches, err := FileListFind(a, "libx.a[*]")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = FileListFind(a, "*.o")
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestFileListFindSkipsUndefinedPod(t *testing.T) {
	a := buildLinked(t, appListing)
	matches, err := FileListFind(a, "*")
	require.NoError(t, err)
	for _, id := range matches {
		assert.NotEqual(t, a.UndefinedPod, id)
	}
}

func TestTrackSymShowsDefinersAndClosures(t *testing.T) {
	a := buildLinked(t, appListing, libListing)

	var buf bytes.Buffer
	require.NoError(t, TrackSym(&buf, a, "foo"))
	out := buf.String()

	assert.Contains(t, out, "symbol foo (T)")
	assert.Contains(t, out, "libx.a[b.o]")
	// Forward closure of the defining object reaches bar's provider.
	assert.Contains(t, out, "libx.a[c.o]")
	// Backward closure of the importer A.o.
	assert.Contains(t, out, "A.o")
}

func TestTrackSymUnknownSymbol(t *testing.T) {
	a := buildLinked(t, appListing)

	var buf bytes.Buffer
	err := TrackSym(&buf, a, "no_such")
	var notFound *errors.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestTrackObjListsExportsImportsAndClosures(t *testing.T) {
	a := buildLinked(t, appListing, libListing)
	b := findObject(t, a, "b.o")

	var buf bytes.Buffer
	TrackObj(&buf, a, b)
	out := buf.String()

	assert.Contains(t, out, "object libx.a[b.o] (Application set)")
	assert.Contains(t, out, "exports:\n  foo")
	assert.Contains(t, out, "imports:\n  bar")
	assert.Contains(t, out, "A.o", "the backward closure reaches the importer")
	assert.Contains(t, out, "libx.a[c.o]", "the forward closure reaches the provider")
}

func TestCheckMultipleDefsReportsStrongClash(t *testing.T) {
	lib := `
libx.a[p.o]:
sym T

libx.a[q.o]:
sym T
`
	a := buildLinked(t, appListing, lib)

	var buf bytes.Buffer
	clashes := CheckMultipleDefs(&buf, a, graph.Optional)
	assert.Equal(t, 1, clashes)
	assert.Contains(t, buf.String(), "symbol sym multiply defined")
	assert.Contains(t, buf.String(), "libx.a[p.o]")
	assert.Contains(t, buf.String(), "libx.a[q.o]")
}

func TestCheckMultipleDefsIgnoresWeakOverride(t *testing.T) {
	lib := `
libx.a[p.o]:
sym W

libx.a[q.o]:
sym T
`
	a := buildLinked(t, appListing, lib)

	var buf bytes.Buffer
	clashes := CheckMultipleDefs(&buf, a, graph.Optional)
	assert.Zero(t, clashes, "a weak definition next to one strong definition is not a clash")
}

func TestCheckMultipleDefsIgnoresCommon(t *testing.T) {
	lib := `
libx.a[p.o]:
shared C

libx.a[q.o]:
shared C
`
	a := buildLinked(t, appListing, lib)

	var buf bytes.Buffer
	clashes := CheckMultipleDefs(&buf, a, graph.Optional)
	assert.Zero(t, clashes)
}

func TestBuildDumpsAndWriteFormats(t *testing.T) {
	a := buildLinked(t, appListing, libListing)

	d := Dump{
		Objects: BuildObjectDump(a),
		Symbols: BuildSymbolDump(a),
	}
	require.Len(t, d.Objects, 3)
	require.Len(t, d.Symbols, 3)

	var text bytes.Buffer
	require.NoError(t, WriteDump(&text, d, "text"))
	assert.Contains(t, text.String(), "A.o (Application)")
	assert.Contains(t, text.String(), "  exports main")

	var tomlBuf bytes.Buffer
	require.NoError(t, WriteDump(&tomlBuf, d, "toml"))
	assert.Contains(t, tomlBuf.String(), "[[objects]]")
	assert.Contains(t, tomlBuf.String(), "A.o")

	require.Error(t, WriteDump(&text, d, "yaml"))
}
