package graph

import "github.com/symld/symld/internal/arena"

// SymbolType is the single-character type code carried by a symbol,
// as reported in the listing. A zero value means "not yet typed" and
// only occurs transiently during ingest.
type SymbolType byte

// Recognized type codes. '?' only classifies as an import in lenient
// mode; outside lenient mode the scanner rejects it before it reaches
// the graph.
const (
	TypeText      SymbolType = 'T'
	TypeData      SymbolType = 'D'
	TypeBSS       SymbolType = 'B'
	TypeReadOnly  SymbolType = 'R'
	TypeGroup     SymbolType = 'G'
	TypeSmallData SymbolType = 'S'
	TypeAbsolute  SymbolType = 'A'
	TypeCommon    SymbolType = 'C'
	TypeWeakDef   SymbolType = 'W'
	TypeWeakVal   SymbolType = 'V'
	TypeUndefined SymbolType = 'U'
	TypeUnknown   SymbolType = '?'
)

// IsExportType reports whether a type code classifies an occurrence as
// a definition (an export) rather than a use (an import).
func IsExportType(t SymbolType) bool {
	switch t {
	case TypeText, TypeData, TypeBSS, TypeReadOnly, TypeGroup, TypeSmallData, TypeAbsolute, TypeCommon, TypeWeakDef, TypeWeakVal:
		return true
	}
	return false
}

// IsWeakType reports whether a type code marks a definition weak.
func IsWeakType(t SymbolType) bool {
	return t == TypeWeakDef || t == TypeWeakVal
}

// Symbol represents one linker name.
//
// Invariant: after graph construction, for every object f and every i,
// the Xref f.Imports[i] appears exactly once in the ImportedFrom chain
// of the symbol it names, and symmetrically for Exports/ExportedBy
// (CheckInvariants verifies this).
type Symbol struct {
	Name arena.Name
	Type SymbolType

	ExportedBy     XrefID // head of the export chain
	exportedByTail XrefID // tail, so fix-up can append in ingest order

	ImportedFrom XrefID // head of the import chain; populated at link time
}

// Symbol returns the Symbol for id, or nil if id is 0 or out of range.
func (a *Analyzer) Symbol(id SymbolID) *Symbol {
	if id <= 0 || int(id) > len(a.symbols) {
		return nil
	}
	return &a.symbols[id-1]
}

// SymbolName returns the interned name of a symbol.
func (a *Analyzer) SymbolName(id SymbolID) string {
	sym := a.Symbol(id)
	if sym == nil {
		return ""
	}
	return a.Arena.String(sym.Name)
}

// LookupSymbol returns the SymbolID for name if it has been seen
// before, or (0, false) otherwise.
func (a *Analyzer) LookupSymbol(name string) (SymbolID, bool) {
	n := a.Arena.Intern(name)
	id, ok := a.symbolByName[n]
	return id, ok
}

// GetOrCreateSymbol returns the existing SymbolID for name, or creates
// a fresh untyped Symbol for it.
func (a *Analyzer) GetOrCreateSymbol(name string) SymbolID {
	n := a.Arena.Intern(name)
	if id, ok := a.symbolByName[n]; ok {
		return id
	}
	a.symbols = append(a.symbols, Symbol{Name: n})
	id := SymbolID(len(a.symbols))
	a.symbolByName[n] = id
	return id
}

// Symbols iterates all SymbolIDs in creation order.
func (a *Analyzer) Symbols() []SymbolID {
	ids := make([]SymbolID, 0, len(a.symbols))
	for i := range a.symbols {
		ids = append(ids, SymbolID(i+1))
	}
	return ids
}
