package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewProduct_Validation(t *testing.T) {
	_, err := NewProduct("  ", "", decimal.Zero, 0, "", "")
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewProduct("Widget", "", decimal.RequireFromString("-1"), 0, "", "")
	require.ErrorIs(t, err, ErrNegativePrice)

	_, err = NewProduct("Widget", "", decimal.Zero, -1, "", "")
	require.ErrorIs(t, err, ErrNegativeStock)

	product, err := NewProduct(" Widget ", "desc", decimal.RequireFromString("9.99"), 3, " Tools ", "")
	require.NoError(t, err)
	require.Equal(t, "Widget", product.Name)
	require.Equal(t, "Tools", product.Category)
}

func TestProduct_HasStock(t *testing.T) {
	product := &Product{Name: "Widget", Stock: 5}

	require.True(t, product.HasStock(1))
	require.True(t, product.HasStock(5))
	require.False(t, product.HasStock(6))
	require.False(t, product.HasStock(0))
	require.False(t, product.HasStock(-1))
}
