package routerstore

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/vango-dev/routerstore/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeRouterState decodes a router state snapshot from its JSON wire form.
//
// The wire form nests routes through "children" only. After decoding, the
// tree is validated and its back-references are rebuilt with Link.
func DecodeRouterState(data []byte) (*RouterStateSnapshot, error) {
	var state RouterStateSnapshot
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, errors.New("R020").
			WithDetail("Failed to parse router state: " + err.Error()).
			Wrap(err)
	}
	if err := Validate(&state); err != nil {
		return nil, err
	}
	Link(state.Root)
	return &state, nil
}

// Encode returns the JSON encoding of a serialized state. With indent set the
// output is indented by two spaces.
func Encode(v any, indent bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, errors.New("R021").Wrap(err)
	}
	return data, nil
}
