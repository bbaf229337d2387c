package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListQuery_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListQuery
		want ListQuery
	}{
		{"in range", ListQuery{Skip: 5, Limit: 20}, ListQuery{Skip: 5, Limit: 20}},
		{"negative skip", ListQuery{Skip: -3, Limit: 20}, ListQuery{Skip: 0, Limit: 20}},
		{"zero limit", ListQuery{Limit: 0}, ListQuery{Limit: 1}},
		{"negative limit", ListQuery{Limit: -7}, ListQuery{Limit: 1}},
		{"limit above max", ListQuery{Limit: 500}, ListQuery{Limit: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}
