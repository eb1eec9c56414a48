package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	cases := []struct {
		name string
		size int64
		want string
	}{
		{"zero", 0, "0.0B"},
		{"below threshold", 1023, "1023.0B"},
		{"exact kilobyte", 1024, "1.0KB"},
		{"fractional kilobyte", 1536, "1.5KB"},
		{"exact megabyte", 1048576, "1.0MB"},
		{"fractional megabyte", 1572864, "1.5MB"},
		{"exact gigabyte", 1073741824, "1.0GB"},
		{"beyond largest unit stays in gigabytes", 2199023255552, "2048.0GB"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatSize(tc.size))
		})
	}
}
