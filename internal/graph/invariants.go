package graph

import "fmt"

// CheckInvariants verifies the structural invariants of the graph:
// back-pointer integrity, edge-uniqueness, link-set disjointness, and
// anchor consistency. It is meant for tests and debug assertions, not
// the hot path: O(edges) work with map allocations.
//
// Undefined-pod exhaustiveness and removal completeness are
// scenario-specific and checked by the ingest and unlinker packages
// directly, since they depend on a point in time ("after ingest",
// "after a successful unlink") that this package has no way to name
// generically.
func (a *Analyzer) CheckInvariants() error {
	if err := a.checkBackPointers(); err != nil {
		return err
	}
	if err := a.checkEdgeUniqueness(); err != nil {
		return err
	}
	if err := a.checkSetDisjointness(); err != nil {
		return err
	}
	return a.checkAnchorConsistency()
}

func (a *Analyzer) checkBackPointers() error {
	for i := range a.objects {
		obj := ObjectID(i + 1)
		o := &a.objects[i]
		for _, id := range o.Exports {
			if a.Xref(id).Obj != obj {
				return fmt.Errorf("graph: invariant violation: export xref %d claims obj %d, owned by %d", id, a.Xref(id).Obj, obj)
			}
		}
		for _, id := range o.Imports {
			if a.Xref(id).Obj != obj {
				return fmt.Errorf("graph: invariant violation: import xref %d claims obj %d, owned by %d", id, a.Xref(id).Obj, obj)
			}
		}
	}
	return nil
}

func (a *Analyzer) checkEdgeUniqueness() error {
	seenExport := make(map[XrefID]bool)
	seenImport := make(map[XrefID]bool)

	for i := range a.symbols {
		sym := SymbolID(i + 1)
		for id := a.Symbol(sym).ExportedBy; id != 0; id = a.Xref(id).Next {
			if seenExport[id] {
				return fmt.Errorf("graph: invariant violation: export xref %d appears twice across exported-by chains", id)
			}
			seenExport[id] = true
		}
		for id := a.Symbol(sym).ImportedFrom; id != 0; id = a.Xref(id).Next {
			if seenImport[id] {
				return fmt.Errorf("graph: invariant violation: import xref %d appears twice across imported-from chains", id)
			}
			seenImport[id] = true
		}
	}
	return nil
}

func (a *Analyzer) checkSetDisjointness() error {
	seen := make(map[ObjectID]LinkSetID)
	for _, set := range []LinkSetID{Application, Optional, Undefined} {
		for _, obj := range a.SetMembers(set) {
			if prior, ok := seen[obj]; ok {
				return fmt.Errorf("graph: invariant violation: object %d is a member of both %s and %s", obj, prior, set)
			}
			seen[obj] = set
		}
	}
	return nil
}

func (a *Analyzer) checkAnchorConsistency() error {
	for i := range a.objects {
		obj := ObjectID(i + 1)
		o := &a.objects[i]
		if o.Anchor == NoSet {
			continue
		}
		if !a.IsReachableInSet(o.Anchor, obj) {
			return fmt.Errorf("graph: invariant violation: object %d has anchor %s but is not reachable from its head", obj, o.Anchor)
		}
	}
	return nil
}
