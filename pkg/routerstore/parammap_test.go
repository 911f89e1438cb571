package routerstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamMap(t *testing.T) {
	m := NewParamMap(Params{
		"id":    "42",
		"tags":  []string{"go", "router"},
		"ids":   []any{1, "two"},
		"page":  3,
		"draft": true,
	})

	tests := []struct {
		name    string
		key     string
		wantHas bool
		wantGet string
		wantAll []string
	}{
		{name: "string", key: "id", wantHas: true, wantGet: "42", wantAll: []string{"42"}},
		{name: "string slice", key: "tags", wantHas: true, wantGet: "go", wantAll: []string{"go", "router"}},
		{name: "any slice", key: "ids", wantHas: true, wantGet: "1", wantAll: []string{"1", "two"}},
		{name: "int", key: "page", wantHas: true, wantGet: "3", wantAll: []string{"3"}},
		{name: "bool", key: "draft", wantHas: true, wantGet: "true", wantAll: []string{"true"}},
		{name: "missing", key: "nope", wantHas: false, wantGet: "", wantAll: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantHas, m.Has(tt.key))
			got, ok := m.Get(tt.key)
			assert.Equal(t, tt.wantHas, ok)
			assert.Equal(t, tt.wantGet, got)
			assert.Equal(t, tt.wantAll, m.GetAll(tt.key))
		})
	}

	assert.Equal(t, []string{"draft", "id", "ids", "page", "tags"}, m.Keys())
}

func TestParamMapEmptySlice(t *testing.T) {
	m := NewParamMap(Params{"tags": []string{}})

	assert.True(t, m.Has("tags"))
	_, ok := m.Get("tags")
	assert.False(t, ok)
}
