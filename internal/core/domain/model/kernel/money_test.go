package kernel_test

import (
	"testing"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromCents(t *testing.T) {
	t.Run("should create valid amounts", func(t *testing.T) {
		m, err := kernel.NewMoneyFromCents(800)

		require.NoError(t, err)
		assert.Equal(t, int64(800), m.Cents())
	})

	t.Run("should accept zero", func(t *testing.T) {
		m, err := kernel.NewMoneyFromCents(0)

		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoneyFromCents(-1)

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("should add amounts", func(t *testing.T) {
		a, _ := kernel.NewMoneyFromCents(1600)
		b, _ := kernel.NewMoneyFromCents(160)

		assert.Equal(t, int64(1760), a.Add(b).Cents())
	})

	t.Run("should multiply by quantity", func(t *testing.T) {
		price, _ := kernel.NewMoneyFromCents(800)

		assert.Equal(t, int64(1600), price.MultiplyQty(2).Cents())
		assert.Equal(t, int64(0), price.MultiplyQty(0).Cents())
		assert.Equal(t, int64(0), price.MultiplyQty(-3).Cents())
	})

	t.Run("should compute percentages with half-up rounding", func(t *testing.T) {
		subtotal, _ := kernel.NewMoneyFromCents(1600)
		assert.Equal(t, int64(160), subtotal.Percent(10).Cents())

		odd, _ := kernel.NewMoneyFromCents(1605)
		// 10% of $16.05 is 160.5 cents, rounds up to 161.
		assert.Equal(t, int64(161), odd.Percent(10).Cents())

		assert.Equal(t, int64(0), subtotal.Percent(0).Cents())
	})
}

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		cents    int64
		expected string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{800, "$8.00"},
		{1760, "$17.60"},
		{2060, "$20.60"},
	}

	for _, tc := range testCases {
		m, err := kernel.NewMoneyFromCents(tc.cents)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, m.String())
	}
}

func TestMoney_IsEqual(t *testing.T) {
	a, _ := kernel.NewMoneyFromCents(800)
	b, _ := kernel.NewMoneyFromCents(800)
	c, _ := kernel.NewMoneyFromCents(900)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}
