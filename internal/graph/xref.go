package graph

// Xref is the physical record of one directed edge between an object
// and a symbol, either a definition (export) or a use (import). A
// single Xref lives in exactly one object's Exports or Imports array
// and simultaneously threads exactly one of its symbol's two chains
// (ExportedBy for an export, ImportedFrom for an import) via Next.
type Xref struct {
	Sym      SymbolID
	Obj      ObjectID
	Weak     bool
	IsExport bool
	Next     XrefID
}

// Xref returns the Xref for id, or nil if id is 0 or out of range.
func (a *Analyzer) Xref(id XrefID) *Xref {
	if id <= 0 || int(id) > len(a.xrefs) {
		return nil
	}
	return &a.xrefs[id-1]
}

// AppendExport records that obj defines sym with the given weakness,
// appending a new Xref to obj.Exports in ingest order. It does not
// install the symbol-chain back-link; that happens in FixupExports,
// deferred until obj's Exports array has reached its final storage.
func (a *Analyzer) AppendExport(obj ObjectID, sym SymbolID, weak bool) XrefID {
	id := a.newXref(sym, obj, weak, true)
	o := a.Object(obj)
	o.Exports = append(o.Exports, id)
	return id
}

// AppendImport records that obj uses sym, appending a new Xref to
// obj.Imports in ingest order. Unlike exports, the import's insertion
// into the symbol's ImportedFrom chain happens later still: not at
// ingest and not at a per-object fix-up, but during the linker step.
func (a *Analyzer) AppendImport(obj ObjectID, sym SymbolID, weak bool) XrefID {
	id := a.newXref(sym, obj, weak, false)
	o := a.Object(obj)
	o.Imports = append(o.Imports, id)
	return id
}

func (a *Analyzer) newXref(sym SymbolID, obj ObjectID, weak, isExport bool) XrefID {
	a.xrefs = append(a.xrefs, Xref{Sym: sym, Obj: obj, Weak: weak, IsExport: isExport})
	return XrefID(len(a.xrefs))
}

// FixupExports threads every Xref in obj's Exports array onto the tail
// of its symbol's ExportedBy chain, in ingest order across all
// objects. Must be called once per object, after all of that object's
// exports have been appended and before the next object's exports are
// ingested.
//
// If a later export for some symbol is a strong (non-weak) definition
// and an earlier export of the same symbol was weak, the strong
// definition is moved to the front of the chain instead of appended,
// so traversal (which always follows the chain head) resolves to a
// strong definition whenever one exists.
func (a *Analyzer) FixupExports(obj ObjectID) {
	o := a.Object(obj)
	for _, xrefID := range o.Exports {
		xr := a.Xref(xrefID)
		sym := a.Symbol(xr.Sym)

		if sym.ExportedBy == 0 {
			sym.ExportedBy = xrefID
			sym.exportedByTail = xrefID
			continue
		}

		if !xr.Weak && a.Xref(sym.ExportedBy).Weak {
			xr.Next = sym.ExportedBy
			sym.ExportedBy = xrefID
			continue
		}

		a.Xref(sym.exportedByTail).Next = xrefID
		sym.exportedByTail = xrefID
	}
}

// LinkImport prepends imp onto its symbol's ImportedFrom chain. Called
// once per import, by the linker, never at ingest. It is an invariant
// violation to call this twice for the same Xref without an
// intervening un-link removing it first.
func (a *Analyzer) LinkImport(imp XrefID) {
	xr := a.Xref(imp)
	sym := a.Symbol(xr.Sym)
	xr.Next = sym.ImportedFrom
	sym.ImportedFrom = imp
}

// UnlinkImport splices imp out of its symbol's ImportedFrom chain by
// linear search of predecessors. It is a programming error (invariant
// violation) for imp not to be present; callers must only invoke this
// for imports that LinkImport actually linked.
func (a *Analyzer) UnlinkImport(imp XrefID) {
	xr := a.Xref(imp)
	sym := a.Symbol(xr.Sym)

	if sym.ImportedFrom == imp {
		sym.ImportedFrom = xr.Next
		xr.Next = 0
		return
	}

	prev := sym.ImportedFrom
	for prev != 0 {
		prevXr := a.Xref(prev)
		if prevXr.Next == imp {
			prevXr.Next = xr.Next
			xr.Next = 0
			return
		}
		prev = prevXr.Next
	}
	panic("graph: invariant violation: UnlinkImport: xref not found in imported-from chain")
}

// ExportedBy iterates the exported-by chain of sym in chain order
// (ingest order, modulo the weak-override reorder in FixupExports).
func (a *Analyzer) ExportedBy(sym SymbolID) []XrefID {
	return a.chain(a.Symbol(sym).ExportedBy)
}

// ImportedFrom iterates the imported-from chain of sym.
func (a *Analyzer) ImportedFrom(sym SymbolID) []XrefID {
	return a.chain(a.Symbol(sym).ImportedFrom)
}

func (a *Analyzer) chain(head XrefID) []XrefID {
	var out []XrefID
	for id := head; id != 0; id = a.Xref(id).Next {
		out = append(out, id)
	}
	return out
}
