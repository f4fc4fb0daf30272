package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueNames(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  []string
	}{
		{name: "nil", names: nil, want: nil},
		{name: "distinct", names: []string{"Tester", "Developer"}, want: []string{"Tester", "Developer"}},
		{name: "repeated keeps first position", names: []string{"Tester", "Admin", "Tester", "Admin"}, want: []string{"Tester", "Admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uniqueNames(tt.names))
		})
	}
}

func TestUniqueNames_LeavesInputIntact(t *testing.T) {
	names := []string{"Developer", "Developer"}

	_ = uniqueNames(names)

	assert.Equal(t, []string{"Developer", "Developer"}, names)
}
