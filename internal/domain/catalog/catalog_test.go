package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultCatalogIsValid(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Len(t, c.All(), 4)

	product, err := c.ByID("trufas")
	require.NoError(t, err)
	assert.Equal(t, "Trufas", product.Name)
	assert.Len(t, product.Options, 5)
}

func TestNew_DuplicateProductID(t *testing.T) {
	products := []Product{
		{ID: "a", Name: "A", Options: []Option{{Name: "x", UnitPrice: decimal.NewFromInt(1)}}},
		{ID: "a", Name: "B", Options: []Option{{Name: "y", UnitPrice: decimal.NewFromInt(1)}}},
	}

	_, err := New(products)
	assert.ErrorContains(t, err, "duplicate product ID")
}

func TestNew_MissingID(t *testing.T) {
	products := []Product{
		{Name: "A", Options: []Option{{Name: "x", UnitPrice: decimal.NewFromInt(1)}}},
	}

	_, err := New(products)
	assert.ErrorContains(t, err, "no ID")
}

func TestNew_EmptyOptions(t *testing.T) {
	products := []Product{{ID: "a", Name: "A"}}

	_, err := New(products)
	assert.ErrorContains(t, err, "no options")
}

func TestNew_NegativePrice(t *testing.T) {
	products := []Product{
		{ID: "a", Name: "A", Options: []Option{{Name: "x", UnitPrice: decimal.NewFromInt(-1)}}},
	}

	_, err := New(products)
	assert.ErrorContains(t, err, "negative price")
}

func TestNew_DuplicateOption(t *testing.T) {
	products := []Product{
		{ID: "a", Name: "A", Options: []Option{
			{Name: "x", UnitPrice: decimal.NewFromInt(1)},
			{Name: "x", UnitPrice: decimal.NewFromInt(2)},
		}},
	}

	_, err := New(products)
	assert.ErrorContains(t, err, "duplicate option")
}

func TestByID_UnknownProductFailsFast(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	_, err = c.ByID("bolo")
	assert.ErrorContains(t, err, "not found")
}

func TestFindOption(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	product, option, err := c.FindOption("trufas", "Brigadeiro")
	require.NoError(t, err)
	assert.Equal(t, "Trufas", product.Name)
	assert.True(t, option.UnitPrice.Equal(decimal.RequireFromString("4.50")))

	_, _, err = c.FindOption("trufas", "Pistache")
	assert.ErrorContains(t, err, "no option")

	_, _, err = c.FindOption("bolo", "Brigadeiro")
	assert.ErrorContains(t, err, "not found")
}

func TestLemonTrufflePromoPrice(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	_, option, err := c.FindOption("trufas", "Limão")
	require.NoError(t, err)
	assert.True(t, option.UnitPrice.Equal(decimal.RequireFromString("1.00")))
}
