package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListSort(t *testing.T) {
	tests := []struct {
		name string
		in   List
		want []string
	}{
		{
			name: "newest first",
			in:   List{{Version: "1.2.0"}, {Version: "2.0.0"}, {Version: "1.10.0"}},
			want: []string{"2.0.0", "1.10.0", "1.2.0"},
		},
		{
			name: "numeric not lexicographic",
			in:   List{{Version: "0.9.0"}, {Version: "0.10.0"}},
			want: []string{"0.10.0", "0.9.0"},
		},
		{
			name: "unparseable sort last",
			in:   List{{Version: "nightly"}, {Version: "1.0.0"}, {Version: "2.0.0"}},
			want: []string{"2.0.0", "1.0.0", "nightly"},
		},
		{
			name: "empty",
			in:   List{},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Sort()
			assert.Equal(t, tt.want, tt.in.Versions())
		})
	}
}

func TestListFind(t *testing.T) {
	list := List{{Version: "1.0.0", URL: "https://example.com/1"}, {Version: "2.0.0", URL: "https://example.com/2"}}

	rel, ok := list.Find("2.0.0")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/2", rel.URL)

	_, ok = list.Find("3.0.0")
	assert.False(t, ok)
}

func TestListLatest(t *testing.T) {
	t.Run("returns newest without mutating", func(t *testing.T) {
		list := List{{Version: "1.0.0"}, {Version: "3.0.0"}, {Version: "2.0.0"}}

		rel, ok := list.Latest()
		assert.True(t, ok)
		assert.Equal(t, "3.0.0", rel.Version)
		assert.Equal(t, []string{"1.0.0", "3.0.0", "2.0.0"}, list.Versions())
	})

	t.Run("empty list", func(t *testing.T) {
		_, ok := List{}.Latest()
		assert.False(t, ok)
	})
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "2.0.0", -1},
		{"2.0.0", "1.0.0", 1},
		{"1.2.3", "1.2.3", 0},
		{"1.10.0", "1.9.0", 1},
		{"nightly", "nightly", 0},
		{"abc", "abd", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
		})
	}
}
