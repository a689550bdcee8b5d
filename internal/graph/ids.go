// Package graph implements the symbol/object dependency graph: the
// doubly cross-linked structure of objects, symbols, and the Xref
// edges that connect them, plus the three link sets that partition
// objects once the linker has run.
//
// Pointers are replaced throughout by integer handles into
// arena-style slices owned by the Analyzer, per the handle-based
// redesign recommended in the design notes this repository follows:
// an Xref lives once in a central slice and is referenced by ID from
// both an object's export/import arrays and a symbol's
// exported-by/imported-from chains.
package graph

// ObjectID identifies an Object within an Analyzer. The zero value
// means "no object".
type ObjectID int32

// SymbolID identifies a Symbol within an Analyzer. The zero value
// means "no symbol".
type SymbolID int32

// XrefID identifies an Xref within an Analyzer. The zero value means
// "no edge" (a chain terminator).
type XrefID int32

// LibraryID identifies a Library within an Analyzer. The zero value
// means "standalone object, no owning library".
type LibraryID int32

// LinkSetID names one of the three link sets.
type LinkSetID int8

const (
	// NoSet means the object has not yet been assigned to a link set.
	NoSet LinkSetID = iota
	Application
	Optional
	Undefined
)

func (s LinkSetID) String() string {
	switch s {
	case Application:
		return "Application"
	case Optional:
		return "Optional"
	case Undefined:
		return "Undefined"
	default:
		return "none"
	}
}
