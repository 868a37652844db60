package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-d", "postgres://x", "-z", "other"},
			allowedFlags: []string{"-d", "-a"},
			want:         []string{"-d", "postgres://x"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--addr=:8080", "-z", "other"},
			allowedFlags: []string{"--addr"},
			want:         []string{"--addr=:8080"},
		},
		{
			name:         "order preserved across mixed forms",
			args:         []string{"--addr=:8080", "-d", "dsn", "-z", "1"},
			allowedFlags: []string{"-d", "--addr"},
			want:         []string{"--addr=:8080", "-d", "dsn"},
		},
		{
			name:         "flag without value at end of args",
			args:         []string{"-d"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d"},
		},
		{
			name:         "nothing allowed",
			args:         []string{"-z", "1", "--other=2"},
			allowedFlags: []string{"-d"},
			want:         []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FilterArgs(tc.args, tc.allowedFlags))
		})
	}
}
