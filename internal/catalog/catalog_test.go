package catalog

import (
	"testing"

	"github.com/jacksmith/menu/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, name string, cat model.Category) model.Product {
	return model.Product{
		ID:          id,
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString("1.00"),
		Category:    cat,
		Image:       "data:image/png;base64,AA==",
	}
}

func ids(products []model.Product) []string {
	var out []string
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestUpsert(t *testing.T) {
	c := New(nil)

	t.Run("unseen id appends at the end", func(t *testing.T) {
		assert.False(t, c.Upsert(product("A", "Burger", model.CategoryBurgers)))
		assert.False(t, c.Upsert(product("B", "Fries", model.CategorySides)))
		assert.Equal(t, 2, c.Len())
		assert.Equal(t, []string{"A", "B"}, ids(c.Products()))
	})

	t.Run("existing id replaces in place", func(t *testing.T) {
		updated := product("A", "Double Burger", model.CategoryBurgers)
		assert.True(t, c.Upsert(updated))
		assert.Equal(t, 2, c.Len())
		assert.Equal(t, []string{"A", "B"}, ids(c.Products()))

		got, ok := c.Find("A")
		require.True(t, ok)
		assert.Equal(t, "Double Burger", got.Name)
	})
}

func TestRemove(t *testing.T) {
	c := New([]model.Product{
		product("A", "Burger", model.CategoryBurgers),
		product("B", "Fries", model.CategorySides),
		product("C", "Cola", model.CategoryDrinks),
	})

	assert.True(t, c.Remove("B"))
	assert.Equal(t, []string{"A", "C"}, ids(c.Products()))

	// Absent id is a no-op.
	assert.False(t, c.Remove("B"))
	assert.False(t, c.Remove("nope"))
	assert.Equal(t, []string{"A", "C"}, ids(c.Products()))
}

func TestProductsReturnsCopy(t *testing.T) {
	c := New([]model.Product{product("A", "Burger", model.CategoryBurgers)})

	snapshot := c.Products()
	snapshot[0].Name = "changed"
	c.Remove("A")

	assert.Equal(t, "changed", snapshot[0].Name)
	assert.Equal(t, 0, c.Len())
}

func TestFilter(t *testing.T) {
	c := New([]model.Product{
		product("A", "Classic Burger", model.CategoryBurgers),
		product("B", "Cheese Fries", model.CategorySides),
		product("C", "Cola", model.CategoryDrinks),
	})

	assert.Equal(t, []string{"A", "B", "C"}, ids(c.Filter("", "")))
	assert.Equal(t, []string{"B"}, ids(c.Filter("FRIES", "")))
	assert.Equal(t, []string{"A", "B", "C"}, ids(c.Filter("description", "")))
	assert.Equal(t, []string{"C"}, ids(c.Filter("", model.CategoryDrinks)))
	assert.Empty(t, c.Filter("burger", model.CategoryDrinks))
}

func TestGroupByCategory(t *testing.T) {
	sections := GroupByCategory([]model.Product{
		product("A", "Cola", model.CategoryDrinks),
		product("B", "Classic Burger", model.CategoryBurgers),
		product("C", "Lemonade", model.CategoryDrinks),
	})

	require.Len(t, sections, 2)
	assert.Equal(t, model.CategoryBurgers, sections[0].Category)
	assert.Equal(t, model.CategoryDrinks, sections[1].Category)
	assert.Equal(t, []string{"A", "C"}, ids(sections[1].Products))
}

func TestResolve(t *testing.T) {
	c := New([]model.Product{
		product("01HZY3S6C4M8Y4W9B0T8J2K7QF", "Burger", model.CategoryBurgers),
		product("01HZY3S6C4M8Y4W9B0T8J2K7QG", "Fries", model.CategorySides),
		product("01J000000000000000000000AA", "Cola", model.CategoryDrinks),
	})

	id, err := c.Resolve("01hzy3s6c4m8y4w9b0t8j2k7qf")
	require.NoError(t, err)
	assert.Equal(t, "01HZY3S6C4M8Y4W9B0T8J2K7QF", id)

	id, err = c.Resolve("01J")
	require.NoError(t, err)
	assert.Equal(t, "01J000000000000000000000AA", id)

	_, err = c.Resolve("01HZY")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	_, err = c.Resolve("ZZZ")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "ZZZ", nf.ID)
}
