package graph

import "github.com/symld/symld/internal/arena"

// UndefinedPodName is the display name of the synthetic object that
// holds one export per symbol defined nowhere.
const UndefinedPodName = "*UND*"

// Analyzer is the single handle packaging every piece of shared graph
// state (the name arena, the object/symbol/xref tables, the library
// index, and the three link-set chain heads) passed explicitly
// through every entry point in this repository instead of living in
// package-level globals.
type Analyzer struct {
	Arena *arena.Arena

	objects   []Object
	symbols   []Symbol
	xrefs     []Xref
	libraries []Library

	symbolByName  map[arena.Name]SymbolID
	libraryByName map[arena.Name]LibraryID

	linkHeads [4]ObjectID // indexed by LinkSetID

	UndefinedPod ObjectID
}

// New creates an empty Analyzer, including the Undefined-pod object
// (always the first object created, so its ObjectID is stable at 1
// regardless of ingest order).
func New() *Analyzer {
	a := &Analyzer{
		Arena:         arena.New(),
		symbolByName:  make(map[arena.Name]SymbolID),
		libraryByName: make(map[arena.Name]LibraryID),
	}
	a.UndefinedPod = a.newObject(UndefinedPodName, 0)
	a.PrependToSet(Undefined, a.UndefinedPod)
	return a
}
