package jdbc

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/p-knytl/jira2sql/internal/frame"
)

// indexColumn is the persisted row-number column. It carries the original
// ticket order into the destination table.
const indexColumn = "snapshot_index"

// columnType infers the Postgres column type from the cells of one column.
// Columns with no scalar evidence (all Null, or only unexpanded nested
// cells) load as text.
func columnType(col *frame.Column) string {
	sawBool := false
	sawInt := false
	sawFloat := false
	sawText := false

	for _, v := range col.Values {
		switch v.Kind {
		case frame.KindNull:
			continue
		case frame.KindScalar:
			switch s := v.Scalar.(type) {
			case bool:
				sawBool = true
			case float64:
				if s == float64(int64(s)) {
					sawInt = true
				} else {
					sawFloat = true
				}
			default:
				sawText = true
			}
		default:
			// Object/Array cells marshal to JSON text.
			sawText = true
		}
	}

	switch {
	case sawText:
		return "text"
	case sawFloat:
		return "double precision"
	case sawInt && !sawBool:
		return "bigint"
	case sawBool && !sawInt:
		return "boolean"
	case sawBool || sawInt:
		// Mixed numeric/boolean evidence: fall back to text.
		return "text"
	default:
		return "text"
	}
}

// createTableSQL builds the destination DDL: the index column followed by
// the frame's columns in order, named by their dotted boundary form.
func createTableSQL(table string, f *frame.Frame) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (%s bigint", pq.QuoteIdentifier(table), pq.QuoteIdentifier(indexColumn))
	for _, col := range f.Columns() {
		fmt.Fprintf(&b, ", %s %s", pq.QuoteIdentifier(col.Path.String()), columnType(col))
	}
	b.WriteString(")")
	return b.String()
}

// dropTableSQL removes any prior snapshot of the same name.
func dropTableSQL(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", pq.QuoteIdentifier(table))
}

// insertSQL builds one multi-row INSERT with $N placeholders for rowCount
// rows. Argument order is row-major, index column first.
func insertSQL(table string, f *frame.Frame, rowCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s", pq.QuoteIdentifier(table), pq.QuoteIdentifier(indexColumn))
	for _, col := range f.Columns() {
		fmt.Fprintf(&b, ", %s", pq.QuoteIdentifier(col.Path.String()))
	}
	b.WriteString(") VALUES ")

	width := f.NumColumns() + 1
	arg := 1
	for row := 0; row < rowCount; row++ {
		if row > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for i := 0; i < width; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", arg)
			arg++
		}
		b.WriteString(")")
	}
	return b.String()
}

// insertArgs collects the row-major argument slice for rows [start, end).
func insertArgs(f *frame.Frame, start, end int) []any {
	args := make([]any, 0, (end-start)*(f.NumColumns()+1))
	for row := start; row < end; row++ {
		args = append(args, int64(row))
		for _, col := range f.Columns() {
			args = append(args, col.Values[row].Interface())
		}
	}
	return args
}
