package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatchQuery_Empty(t *testing.T) {
	q := newPatchQuery("categories", 7)

	assert.Equal(t, "UPDATE categories SET updated_at = now() WHERE id = $1", q.SQL())
	assert.Equal(t, []any{int64(7)}, q.Args())
}

func TestPatchQuery_SkipsNilFields(t *testing.T) {
	name := "Mouse"
	q := newPatchQuery("products", 3)
	q.Set("name", &name)
	q.Set("description", (*string)(nil))
	q.Set("price", (*int64)(nil))

	assert.Equal(t, "UPDATE products SET name = $2, updated_at = now() WHERE id = $1", q.SQL())
	assert.Equal(t, []any{int64(3), "Mouse"}, q.Args())
}

func TestPatchQuery_MultipleFields(t *testing.T) {
	var (
		name   = "Teclado"
		price  = int64(34990)
		active = false
	)

	q := newPatchQuery("products", 3)
	q.Set("name", &name)
	q.Set("price", &price)
	q.Set("active", &active)

	assert.Equal(t,
		"UPDATE products SET name = $2, price = $3, active = $4, updated_at = now() WHERE id = $1",
		q.SQL())
	assert.Equal(t, []any{int64(3), "Teclado", int64(34990), false}, q.Args())
}

func TestPatchQuery_UnsupportedTypePanics(t *testing.T) {
	q := newPatchQuery("products", 3)
	assert.Panics(t, func() {
		q.Set("price", 42)
	})
}
