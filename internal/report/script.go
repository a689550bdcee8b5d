package report

import (
	"fmt"
	"io"

	"github.com/symld/symld/internal/graph"
)

// EmitScript writes the linker script: for each emitted set, a banner
// comment, then per object in set membership order a comment naming
// the object and one EXTERN declaration per exported symbol. The
// Application section comes first unless suppressed.
func EmitScript(w io.Writer, a *graph.Analyzer, withApplication bool) error {
	if withApplication {
		if err := emitSet(w, a, graph.Application); err != nil {
			return err
		}
	}
	return emitSet(w, a, graph.Optional)
}

func emitSet(w io.Writer, a *graph.Analyzer, set graph.LinkSetID) error {
	if _, err := fmt.Fprintf(w, "/* ===== %s link set ===== */\n", set); err != nil {
		return err
	}
	for _, f := range a.SetMembers(set) {
		if _, err := fmt.Fprintf(w, "/* %s */\n", a.DisplayName(f)); err != nil {
			return err
		}
		for _, exID := range a.Object(f).Exports {
			sym := a.SymbolName(a.Xref(exID).Sym)
			if _, err := fmt.Fprintf(w, "EXTERN( %s )\n", sym); err != nil {
				return err
			}
		}
	}
	return nil
}
