package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPgx5URL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/storefront":   "pgx5://u:p@db:5432/storefront",
		"postgresql://u:p@db:5432/storefront": "pgx5://u:p@db:5432/storefront",
		"pgx5://u:p@db/storefront":            "pgx5://u:p@db/storefront",
		"u:p@db:5432/storefront":              "pgx5://u:p@db:5432/storefront",
	}
	for in, want := range tests {
		assert.Equal(t, want, toPgx5URL(in), in)
	}
}
