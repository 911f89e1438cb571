package routerstore

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// ParamMap is a read-only lookup over route or query parameters.
type ParamMap interface {
	// Has reports whether name is present.
	Has(name string) bool

	// Get returns the first value for name, or "" and false.
	Get(name string) (string, bool)

	// GetAll returns every value for name.
	GetAll(name string) []string

	// Keys returns the parameter names in sorted order.
	Keys() []string
}

// NewParamMap builds a ParamMap over params. String slices are treated as
// multi-valued parameters; other values are formatted with fmt.
func NewParamMap(params Params) ParamMap {
	return paramMap{params: params}
}

type paramMap struct {
	params Params
}

func (m paramMap) Has(name string) bool {
	_, ok := m.params[name]
	return ok
}

func (m paramMap) Get(name string) (string, bool) {
	values := m.GetAll(name)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (m paramMap) GetAll(name string) []string {
	v, ok := m.params[name]
	if !ok {
		return nil
	}
	switch v := v.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		return lo.Map(v, func(item any, _ int) string {
			return fmt.Sprint(item)
		})
	default:
		return []string{fmt.Sprint(v)}
	}
}

func (m paramMap) Keys() []string {
	keys := lo.Keys(m.params)
	sort.Strings(keys)
	return keys
}
