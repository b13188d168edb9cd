package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mathias-mike/arrow/pkg/sqlarrow"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// ColumnView is the rendered form of one result column.
type ColumnView struct {
	Index        int               `json:"index" yaml:"index"`
	Name         string            `json:"name" yaml:"name"`
	DatabaseType string            `json:"database_type,omitempty" yaml:"database_type,omitempty"`
	SQLType      string            `json:"sql_type" yaml:"sql_type"`
	ArrowType    string            `json:"arrow_type" yaml:"arrow_type"`
	Nullable     bool              `json:"nullable" yaml:"nullable"`
	Metadata     map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// SchemaView is the rendered form of one described query.
type SchemaView struct {
	Query     string       `json:"query" yaml:"query"`
	BatchSize int          `json:"batch_size" yaml:"batch_size"`
	Columns   []ColumnView `json:"columns" yaml:"columns"`
}

func newSchemaView(query string, batchSize int, fields []sqlarrow.FieldInfo, schema *arrow.Schema) SchemaView {
	view := SchemaView{Query: formatQuery(query), BatchSize: batchSize, Columns: make([]ColumnView, len(fields))}
	for i, f := range fields {
		af := schema.Field(i)
		col := ColumnView{
			Index:        f.Index,
			Name:         f.Name,
			DatabaseType: f.TypeName,
			SQLType:      f.Type.String(),
			ArrowType:    af.Type.String(),
			Nullable:     af.Nullable,
		}
		if af.Metadata.Len() > 0 {
			col.Metadata = make(map[string]string, af.Metadata.Len())
			for j, k := range af.Metadata.Keys() {
				col.Metadata[k] = af.Metadata.Values()[j]
			}
		}
		view.Columns[i] = col
	}
	return view
}

// resolveFormat turns "auto" into table on a terminal and json otherwise.
func resolveFormat(format string, w io.Writer) string {
	if format != "auto" {
		return format
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "table"
	}
	return "json"
}

func renderSchemas(w io.Writer, views []SchemaView, format string) error {
	switch format {
	case "json":
		return renderJSON(w, views)
	case "yaml":
		return renderYAML(w, views)
	case "table":
		return renderTable(w, views)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderJSON(w io.Writer, views []SchemaView) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(views)
}

func renderYAML(w io.Writer, views []SchemaView) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(views); err != nil {
		return err
	}
	return enc.Close()
}

func renderTable(w io.Writer, views []SchemaView) error {
	for i, view := range views {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintf(w, "%s\n", view.Query)

		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"#", "Column", "Database type", "SQL type", "Arrow type", "Nullable"})
		for _, col := range view.Columns {
			t.AppendRow(table.Row{col.Index, col.Name, col.DatabaseType, col.SQLType, col.ArrowType, col.Nullable})
		}
		t.Render()
		_, _ = fmt.Fprintf(w, "(%d columns, batch size %d)\n", len(view.Columns), view.BatchSize)
	}
	return nil
}

func formatQuery(q string) string {
	return strings.Join(strings.Fields(q), " ")
}
