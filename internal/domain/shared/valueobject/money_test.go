package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), EUR)
		require.NoError(t, err)
		assert.Equal(t, EUR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", USD)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", USD)
		assert.Error(t, err)
	})
}

func TestZero(t *testing.T) {
	m := Zero(USD)
	assert.True(t, m.IsZero())
	assert.Equal(t, USD, m.Currency())
}

func TestCurrencyIsValid(t *testing.T) {
	assert.True(t, USD.IsValid())
	assert.True(t, JPY.IsValid())
	assert.False(t, Currency("XXX").IsValid())
	assert.False(t, Currency("").IsValid())
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		a := MustMoney(decimal.NewFromFloat(100.25), USD)
		b := MustMoney(decimal.NewFromFloat(50.75), USD)

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromFloat(151.00)))
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		a := MustMoney(decimal.NewFromFloat(100), USD)
		b := MustMoney(decimal.NewFromFloat(100), EUR)

		_, err := a.Add(b)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "different currencies")
	})
}

func TestMoneySubtract(t *testing.T) {
	a := MustMoney(decimal.NewFromFloat(100), GBP)
	b := MustMoney(decimal.NewFromFloat(150), GBP)

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.IsNegative())
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(-50)))

	_, err = a.Subtract(MustMoney(decimal.NewFromInt(1), CHF))
	assert.Error(t, err)
}

func TestMoneyMultiply(t *testing.T) {
	m := MustMoney(decimal.NewFromFloat(200), USD)
	scaled := m.Multiply(decimal.NewFromFloat(1.1))
	assert.True(t, scaled.Amount().Equal(decimal.NewFromFloat(220)))
	assert.Equal(t, USD, scaled.Currency())
}

func TestMoneyConvert(t *testing.T) {
	t.Run("converts with positive rate", func(t *testing.T) {
		m := MustMoney(decimal.NewFromInt(100), EUR)
		converted, err := m.Convert(USD, decimal.NewFromFloat(1.08))
		require.NoError(t, err)
		assert.Equal(t, USD, converted.Currency())
		assert.True(t, converted.Amount().Equal(decimal.NewFromInt(108)))
	})

	t.Run("same currency is identity", func(t *testing.T) {
		m := MustMoney(decimal.NewFromInt(100), EUR)
		converted, err := m.Convert(EUR, decimal.NewFromFloat(1.08))
		require.NoError(t, err)
		assert.True(t, converted.Equals(m))
	})

	t.Run("rejects non-positive rate", func(t *testing.T) {
		m := MustMoney(decimal.NewFromInt(100), EUR)
		_, err := m.Convert(USD, decimal.Zero)
		assert.Error(t, err)
	})
}

func TestMoneyNegateAbs(t *testing.T) {
	m := MustMoney(decimal.NewFromFloat(42.50), USD)
	neg := m.Negate()
	assert.True(t, neg.IsNegative())
	assert.True(t, neg.Abs().Equals(m))
}

func TestMoneyComparisons(t *testing.T) {
	small := MustMoney(decimal.NewFromInt(10), USD)
	large := MustMoney(decimal.NewFromInt(20), USD)

	less, err := small.LessThan(large)
	require.NoError(t, err)
	assert.True(t, less)

	greater, err := large.GreaterThan(small)
	require.NoError(t, err)
	assert.True(t, greater)

	_, err = small.LessThan(MustMoney(decimal.NewFromInt(10), EUR))
	assert.Error(t, err)
}

func TestMoneyString(t *testing.T) {
	m := MustMoney(decimal.NewFromFloat(1234.5), USD)
	assert.Equal(t, "1234.50 USD", m.String())
	assert.Equal(t, "1234.5000", m.StringFixed(4))
}

func TestMoneyJSON(t *testing.T) {
	m := MustMoney(decimal.NewFromFloat(99.99), EUR)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount": "99.99", "currency": "EUR"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equals(m))
}

func TestMoneyScan(t *testing.T) {
	t.Run("scans string value", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("55.25"))
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(55.25)))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("scans nil as zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan(42))
	})
}
