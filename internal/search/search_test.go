// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupe(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"keeps order", []string{"b", "a"}, []string{"b", "a"}},
		{"case and punctuation", []string{"Coffee: A Guide", "coffee a guide!", "Tea"}, []string{"Coffee: A Guide", "Tea"}},
		{"persian spacing", []string{" راهنمای  خرید قهوه ", "راهنمای خرید قهوه"}, []string{"راهنمای  خرید قهوه"}},
		{"drops empty", []string{"", "  ", "—", "x"}, []string{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dedupe(tt.in))
		})
	}
}
