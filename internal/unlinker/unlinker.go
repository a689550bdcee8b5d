// Package unlinker removes objects from the link sets. UnlinkObj
// evicts an object together with everything that transitively depends
// on it, refusing the whole operation if that closure touches the
// Application set. PruneUndefined repeatedly un-links the importers of
// symbols defined nowhere.
package unlinker

import (
	"github.com/symld/symld/internal/debug"
	"github.com/symld/symld/internal/errors"
	"github.com/symld/symld/internal/graph"
	"github.com/symld/symld/internal/walker"
)

// ErrNotLinked is returned when the object is not currently a member
// of any link set, typically because a previous UnlinkObj already
// removed it. Nothing is mutated.
var ErrNotLinked = errors.NewNotFoundError("object not in any link set")

// UnlinkObj removes f and every object that transitively depends on f
// through its exports. If any object in that closure belongs to the
// Application set the entire operation is rejected with
// *errors.UnlinkRejectedError and no mutation occurs. A second call
// for the same object returns ErrNotLinked.
func UnlinkObj(a *graph.Analyzer, f graph.ObjectID) error {
	obj := a.Object(f)
	if obj == nil || obj.Anchor == graph.NoSet || f == a.UndefinedPod {
		return ErrNotLinked
	}

	wl := walker.New(a, walker.Exports).BuildList(f)
	defer wl.Release()

	// The blocker reported is the first Application-set object that
	// depends on f; f itself is named only when nothing else blocks.
	var blocker graph.ObjectID
	for _, g := range wl.Objects {
		if a.Object(g).Anchor == graph.Application {
			blocker = g
			if g != f {
				break
			}
		}
	}
	if blocker != 0 {
		return errors.NewUnlinkRejectedError(a.ObjectName(f), a.ObjectName(blocker))
	}

	for _, g := range wl.Objects {
		for _, impID := range a.Object(g).Imports {
			a.UnlinkImport(impID)
		}
		a.RemoveFromSet(g)
		debug.Verbosef("unlinked %s", a.ObjectName(g))
	}

	checkRemovalComplete(a, wl.Objects)
	return nil
}

// checkRemovalComplete verifies that every symbol exported by a
// removed object now has an imported-from chain free of removed
// objects. A violation means a back-edge survived the splice, which is
// a programming error.
func checkRemovalComplete(a *graph.Analyzer, removed []graph.ObjectID) {
	gone := make(map[graph.ObjectID]bool, len(removed))
	for _, g := range removed {
		gone[g] = true
	}
	for _, g := range removed {
		for _, exID := range a.Object(g).Exports {
			for _, impID := range a.ImportedFrom(a.Xref(exID).Sym) {
				if gone[a.Xref(impID).Obj] {
					panic("unlinker: invariant violation: removed object still present in an imported-from chain")
				}
			}
		}
	}
}

// PruneUndefined walks the undefined pod's exports (the symbols
// defined nowhere) and un-links every object that imports one, until
// each chain is empty or only rejected edges remain. A rejection means
// an Application-set object reaches the undefined symbol; those are
// tolerated on the assumption that startup files or linker scripts the
// analyzer cannot see will resolve them.
func PruneUndefined(a *graph.Analyzer) []error {
	var rejections []error

	pod := a.Object(a.UndefinedPod)
	for _, exID := range pod.Exports {
		sym := a.Xref(exID).Sym

		// skip counts the rejected edges at the head of the chain, so
		// a refused un-link advances instead of looping forever.
		skip := 0
		for {
			chain := a.ImportedFrom(sym)
			if skip >= len(chain) {
				break
			}
			importer := a.Xref(chain[skip]).Obj
			err := UnlinkObj(a, importer)
			if err == nil {
				// The importer's edges were spliced out; re-read the
				// chain at the same position.
				continue
			}
			debug.Warnf("undefined symbol %s: %v", a.SymbolName(sym), err)
			rejections = append(rejections, err)
			skip++
		}
	}
	return rejections
}
