package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Variant
		wantErr bool
	}{
		{"Empty defaults to normal", "", VariantNormal, false},
		{"Normal", "normal", VariantNormal, false},
		{"Foil", "foil", VariantFoil, false},
		{"Unknown", "holo", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVariant(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuantityMap(t *testing.T) {
	entries := []StockEntry{
		{OwnerID: "adrien", CardID: "c1", Variant: VariantNormal, Quantity: 2},
		{OwnerID: "adrien", CardID: "c1", Variant: VariantFoil, Quantity: 1},
		{OwnerID: "adrien", CardID: "c2", Variant: VariantNormal, Quantity: 4},
	}

	m := QuantityMap(entries)
	assert.Equal(t, 3, m["c1"])
	assert.Equal(t, 4, m["c2"])
	assert.Zero(t, m["c3"])
}

func TestVariantQuantityMap(t *testing.T) {
	entries := []StockEntry{
		{OwnerID: "adrien", CardID: "c1", Variant: VariantNormal, Quantity: 2},
		{OwnerID: "adrien", CardID: "c1", Variant: VariantFoil, Quantity: 1},
	}

	m := VariantQuantityMap(entries)
	assert.Equal(t, 2, m["c1"][VariantNormal])
	assert.Equal(t, 1, m["c1"][VariantFoil])
	assert.Nil(t, m["c2"])
}
