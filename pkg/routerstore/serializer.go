package routerstore

import (
	"strings"

	"github.com/samber/lo"

	"github.com/vango-dev/routerstore/internal/errors"
)

// Serializer projects a router state snapshot onto a plain value of type T.
type Serializer[T any] interface {
	Serialize(state *RouterStateSnapshot) T
}

// Kind names a serializer variant.
type Kind string

const (
	// KindFull selects DefaultSerializer.
	KindFull Kind = "full"

	// KindMinimal selects MinimalSerializer.
	KindMinimal Kind = "minimal"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// ParseKind parses a serializer name. "default" is accepted as an alias of
// "full"; the empty string selects the minimal serializer.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "default":
		return KindFull, nil
	case "minimal", "":
		return KindMinimal, nil
	}
	return "", errors.New("R010").
		WithDetail("Unknown serializer " + `"` + s + `"`)
}

// ForKind returns the serializer for kind with its output type erased.
func ForKind(kind Kind) (Serializer[any], error) {
	switch kind {
	case KindFull:
		return Erase[*SerializedRouterState](DefaultSerializer{}), nil
	case KindMinimal:
		return Erase[*MinimalRouterState](MinimalSerializer{}), nil
	}
	return nil, errors.New("R010").
		WithDetail("Unknown serializer " + `"` + string(kind) + `"`)
}

// Erase adapts a typed serializer to Serializer[any].
func Erase[T any](s Serializer[T]) Serializer[any] {
	return erased[T]{s}
}

type erased[T any] struct {
	inner Serializer[T]
}

func (e erased[T]) Serialize(state *RouterStateSnapshot) any {
	return e.inner.Serialize(state)
}

// DefaultSerializer keeps every route field except the back-references
// (Root, Parent, PathFromRoot) and the lookup maps (ParamMap, QueryParamMap).
type DefaultSerializer struct{}

// Serialize implements Serializer.
func (DefaultSerializer) Serialize(state *RouterStateSnapshot) *SerializedRouterState {
	return &SerializedRouterState{
		URL:  state.URL,
		Root: serializeRoute(state.Root),
	}
}

func serializeRoute(route *RouteSnapshot) *SerializedRoute {
	children := lo.Map(route.Children, func(child *RouteSnapshot, _ int) *SerializedRoute {
		return serializeRoute(child)
	})

	out := &SerializedRoute{
		URL:         route.URL,
		Params:      route.Params,
		QueryParams: route.QueryParams,
		Fragment:    route.Fragment,
		Data:        route.Data,
		Outlet:      route.Outlet,
		RouteConfig: route.RouteConfig,
		Children:    children,
	}
	if route.RouteConfig != nil {
		out.Component = route.RouteConfig.Component
	}
	if len(children) > 0 {
		out.FirstChild = children[0]
	}
	return out
}

// MinimalSerializer keeps the state URL, the root's data and query parameters,
// and the params of the route reached by following FirstChild from the root.
type MinimalSerializer struct{}

// Serialize implements Serializer.
func (MinimalSerializer) Serialize(state *RouterStateSnapshot) *MinimalRouterState {
	route := state.Root
	for route.FirstChild != nil {
		route = route.FirstChild
	}

	return &MinimalRouterState{
		URL:         state.URL,
		Data:        state.Root.Data,
		QueryParams: state.Root.QueryParams,
		Params:      route.Params,
	}
}
