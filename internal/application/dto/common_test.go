package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_DefaultPage(t *testing.T) {
	cases := []struct {
		in   PageRequest
		want PageResponse
	}{
		{PageRequest{}, PageResponse{Limit: 20}},
		{PageRequest{Limit: 500, Offset: 40}, PageResponse{Limit: 100, Offset: 40}},
		{PageRequest{Limit: 5, Offset: -3}, PageResponse{Limit: 5}},
	}
	for _, tc := range cases {
		p := tc.in
		p.DefaultPage()
		assert.Equal(t, tc.want, p.Response())
	}
}
