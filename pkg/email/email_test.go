package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	cases := []struct {
		address string
		want    string
	}{
		{"ann@example.com", "Ann"},
		{"ann.smith@example.com", "Ann"},
		{"ann_smith@example.com", "Ann"},
		{"ann-smith@example.com", "Ann"},
		{"ann+tag@example.com", "Ann"},
		{"ANN@example.com", "ANN"},
		{"ann", "Ann"},
		{"@example.com", "Friend"},
		{"", "Friend"},
		{"...@example.com", "Friend"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DisplayName(tc.address), "address %q", tc.address)
	}
}
