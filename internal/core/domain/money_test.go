package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want Money
	}{
		{"float64", 3000.50, 3000.50},
		{"int", 3000, 3000},
		{"int64", int64(3000), 3000},
		{"numeric string", "3000.50", 3000.50},
		{"padded string", " 3000 ", 3000},
		{"decimal column bytes", []byte("1500.25"), 1500.25},
		{"json number", json.Number("2500"), 2500},
		{"nil", nil, 0},
		{"garbage string", "not-a-number", 0},
		{"empty string", "", 0},
		{"bool", true, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseAmount(tc.in))
		})
	}
}

func TestMoneyUnmarshalJSON(t *testing.T) {
	var payload struct {
		Amount Money `json:"amount"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"amount": 3000}`), &payload))
	assert.Equal(t, Money(3000), payload.Amount)

	// legacy clients send amounts as strings
	require.NoError(t, json.Unmarshal([]byte(`{"amount": "2500.75"}`), &payload))
	assert.Equal(t, Money(2500.75), payload.Amount)

	require.NoError(t, json.Unmarshal([]byte(`{"amount": null}`), &payload))
	assert.Equal(t, Money(0), payload.Amount)

	require.NoError(t, json.Unmarshal([]byte(`{"amount": "junk"}`), &payload))
	assert.Equal(t, Money(0), payload.Amount)
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan([]byte("123.45")))
	assert.Equal(t, Money(123.45), m)

	require.NoError(t, m.Scan(nil))
	assert.Equal(t, Money(0), m)
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "3000.00", Money(3000).String())
	assert.Equal(t, "-150.50", Money(-150.5).String())
}
