package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want OrderStatus
	}{
		{"paid", StatusPaid},
		{"PAID", StatusPaid},
		{"Success", StatusPaid},
		{"settled", StatusPaid},
		{"expired", StatusExpired},
		{"FAILED", StatusExpired},
		{"pending", StatusPending},
		{"completed", StatusPending},
		{"", StatusPending},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, NormalizeStatus(tc.raw), "input %q", tc.raw)
	}
}

func TestNormalizeStatusIdempotent(t *testing.T) {
	for _, raw := range []string{"PAID", "failed", "whatever"} {
		once := NormalizeStatus(raw)
		assert.Equal(t, once, NormalizeStatus(string(once)))
	}
}
