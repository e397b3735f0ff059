package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCents(t *testing.T) {
	tests := []struct {
		in   string
		want Cents
	}{
		{"87.04", 8704},
		{"1200", 120000},
		{"0.5", 50},
		{".25", 25},
		{"5.", 500},
		{" 12.96 ", 1296},
		{"", 0},
		{"-3.10", -310},
	}

	for _, tt := range tests {
		got, err := ParseCents(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"1.234", "abc", "1e3", ".", "-", "1,200", "99999999999999999999"} {
		_, err := ParseCents(bad)
		assert.ErrorIs(t, err, ErrInvalidAmount, bad)
	}
}

func TestCentsString(t *testing.T) {
	assert.Equal(t, "87.04", Cents(8704).String())
	assert.Equal(t, "0.00", Cents(0).String())
	assert.Equal(t, "-0.05", Cents(-5).String())
	assert.Equal(t, "1200.00", WholeDollars(1200).String())
}

func TestCentsUnmarshalParam(t *testing.T) {
	var c Cents
	require.NoError(t, c.UnmarshalParam("12.96"))
	assert.Equal(t, Cents(1296), c)
	assert.Error(t, c.UnmarshalParam("12.961"))
	assert.Equal(t, Cents(1296), c)
}
