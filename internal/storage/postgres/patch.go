package postgres

import (
	"fmt"
	"strings"
)

// patchQuery accumulates the SET clause of a partial UPDATE. Only fields that
// were actually supplied end up in the statement; updated_at is always
// touched.
type patchQuery struct {
	table string
	cols  []string
	args  []any
}

func newPatchQuery(table string, id int64) *patchQuery {
	return &patchQuery{table: table, args: []any{id}}
}

// Set adds col to the SET clause when the pointer is non-nil.
func (q *patchQuery) Set(col string, v any) {
	switch p := v.(type) {
	case *string:
		if p != nil {
			q.add(col, *p)
		}
	case *int64:
		if p != nil {
			q.add(col, *p)
		}
	case *int:
		if p != nil {
			q.add(col, *p)
		}
	case *bool:
		if p != nil {
			q.add(col, *p)
		}
	default:
		panic(fmt.Sprintf("patchQuery: unsupported field type %T for %s", v, col))
	}
}

func (q *patchQuery) add(col string, v any) {
	q.args = append(q.args, v)
	q.cols = append(q.cols, fmt.Sprintf("%s = $%d", col, len(q.args)))
}

// SQL renders the UPDATE statement. $1 is always the row id.
func (q *patchQuery) SQL() string {
	sets := append(q.cols, "updated_at = now()")
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = $1", q.table, strings.Join(sets, ", "))
}

// Args returns the positional arguments matching SQL().
func (q *patchQuery) Args() []any {
	return q.args
}
