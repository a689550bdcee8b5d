package report

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/symld/symld/internal/graph"
)

// ObjectDump is one object's row in the bulk dependency dump.
type ObjectDump struct {
	Name    string   `toml:"name"`
	Library string   `toml:"library,omitempty"`
	Set     string   `toml:"set"`
	Exports []string `toml:"exports,omitempty"`
	Imports []string `toml:"imports,omitempty"`
}

// SymbolDump is one symbol's row in the bulk symbol dump.
type SymbolDump struct {
	Name      string   `toml:"name"`
	Type      string   `toml:"type,omitempty"`
	DefinedBy []string `toml:"defined_by,omitempty"`
	UsedBy    []string `toml:"used_by,omitempty"`
}

// Dump is the one-shot snapshot of the database that the bulk dump
// flags emit. It is output only; the analyzer never reads one back.
type Dump struct {
	Objects []ObjectDump `toml:"objects,omitempty"`
	Symbols []SymbolDump `toml:"symbols,omitempty"`
}

// BuildObjectDump collects every real object in ingest order.
func BuildObjectDump(a *graph.Analyzer) []ObjectDump {
	var out []ObjectDump
	for _, id := range a.Objects() {
		if id == a.UndefinedPod {
			continue
		}
		obj := a.Object(id)
		row := ObjectDump{
			Name:    a.ObjectName(id),
			Library: libName(a, id),
			Set:     obj.Anchor.String(),
		}
		for _, exID := range obj.Exports {
			row.Exports = append(row.Exports, a.SymbolName(a.Xref(exID).Sym))
		}
		for _, impID := range obj.Imports {
			row.Imports = append(row.Imports, a.SymbolName(a.Xref(impID).Sym))
		}
		out = append(out, row)
	}
	return out
}

// BuildSymbolDump collects every symbol in creation order.
func BuildSymbolDump(a *graph.Analyzer) []SymbolDump {
	var out []SymbolDump
	for _, symID := range a.Symbols() {
		sym := a.Symbol(symID)
		row := SymbolDump{Name: a.SymbolName(symID)}
		if sym.Type != 0 {
			row.Type = string(rune(sym.Type))
		}
		for _, exID := range a.ExportedBy(symID) {
			row.DefinedBy = append(row.DefinedBy, a.DisplayName(a.Xref(exID).Obj))
		}
		for _, impID := range a.ImportedFrom(symID) {
			row.UsedBy = append(row.UsedBy, a.DisplayName(a.Xref(impID).Obj))
		}
		out = append(out, row)
	}
	return out
}

// WriteDump renders d in the requested format: "text" for the
// human-facing listing, "toml" for machine consumption.
func WriteDump(w io.Writer, d Dump, format string) error {
	switch format {
	case "", "text":
		writeTextDump(w, d)
		return nil
	case "toml":
		data, err := toml.Marshal(d)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown dump format %q", format)
	}
}

func writeTextDump(w io.Writer, d Dump) {
	for _, obj := range d.Objects {
		name := obj.Name
		if obj.Library != "" {
			name = obj.Library + "[" + obj.Name + "]"
		}
		fmt.Fprintf(w, "%s (%s)\n", name, obj.Set)
		for _, ex := range obj.Exports {
			fmt.Fprintf(w, "  exports %s\n", ex)
		}
		for _, imp := range obj.Imports {
			fmt.Fprintf(w, "  imports %s\n", imp)
		}
	}
	for _, sym := range d.Symbols {
		fmt.Fprintf(w, "%s (%s)\n", sym.Name, sym.Type)
		for _, def := range sym.DefinedBy {
			fmt.Fprintf(w, "  defined by %s\n", def)
		}
		for _, use := range sym.UsedBy {
			fmt.Fprintf(w, "  used by %s\n", use)
		}
	}
}
