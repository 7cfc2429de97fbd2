package server_test

import (
	"testing"

	"collection-manager/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_HasValidOwners(t *testing.T) {
	tests := []struct {
		name   string
		ownerA string
		ownerB string
		want   bool
	}{
		{"Defaults", "adrien", "angele", true},
		{"Same owner", "adrien", "adrien", false},
		{"Missing A", "", "angele", false},
		{"Missing B", "adrien", "", false},
		{"Both missing", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{OwnerA: tt.ownerA, OwnerB: tt.ownerB}
			assert.Equal(t, tt.want, c.HasValidOwners())
		})
	}
}
