// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package fraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromInt(t *testing.T) {
	f := FromInt(5)
	assert.True(t, f.Equal(New(5, 1)))
	assert.Equal(t, "5", f.String())
}

func TestIntegerAndFractionalPartAfterDivision(t *testing.T) {
	f := New(11, 5)
	other := New(1, 2)
	div := f.Div(other)
	assert.Equal(t, uint64(4), div.IntegerPart())
	assert.True(t, div.FractionalPart().Equal(New(2, 5)))
}

func TestAdd(t *testing.T) {
	f := New(1, 3).Add(New(2, 4))
	assert.True(t, f.Equal(New(10, 12)))
	assert.Equal(t, "10/12", f.String())
}

func TestSub(t *testing.T) {
	f := New(2, 5).Sub(New(1, 4))
	assert.True(t, f.Equal(New(3, 20)))
}

func TestMul(t *testing.T) {
	f := New(1, 5).Mul(New(2, 9))
	assert.True(t, f.Equal(New(2, 45)))
}

func TestDiv(t *testing.T) {
	f := New(11, 5).Div(New(1, 2))
	assert.True(t, f.Equal(New(22, 5)))
	assert.Equal(t, "4 2/5", f.String())
}

func TestEqual(t *testing.T) {
	assert.True(t, New(1, 4).Equal(New(2, 8)))
	assert.False(t, New(1, 4).Equal(New(2, 4)))
}

func TestOrdering(t *testing.T) {
	assert.True(t, New(1, 2).GreaterThan(New(1, 3)))
	assert.True(t, New(1, 3).LessThan(New(1, 2)))
	assert.Equal(t, 0, New(1, 2).Cmp(New(2, 4)))
}

func TestDivByZeroPanics(t *testing.T) {
	assert.Panics(t, func() {
		New(1, 2).Div(Zero)
	})
}

func TestNewZeroDenominatorPanics(t *testing.T) {
	assert.Panics(t, func() {
		New(1, 0)
	})
}

func TestJSONRoundTrip(t *testing.T) {
	cases := []Fraction{
		New(11, 5),
		New(2, 5),
		FromInt(7),
		Zero,
		New(1000000000, 3),
	}
	for _, f := range cases {
		data, err := f.MarshalJSON()
		require.NoError(t, err)
		var got Fraction
		require.NoError(t, got.UnmarshalJSON(data))
		assert.True(t, f.Equal(got), "round trip %s -> %s", f, got)
	}
}

func TestDisplayFractionSplitsIntegerPart(t *testing.T) {
	data, err := New(11, 5).MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"integer":2,"numerator":1,"denominator":5}`, string(data))
}
