package routerstore

import (
	"fmt"

	"github.com/vango-dev/routerstore/internal/errors"
)

// Validate checks that state is a well-formed tree: a root is present, no child
// is nil and no route appears twice. Routers always produce valid snapshots;
// Validate exists for snapshots decoded from external input.
func Validate(state *RouterStateSnapshot) error {
	if state == nil {
		return errors.New("R001")
	}
	if state.Root == nil {
		return errors.New("R002").
			WithDetail(fmt.Sprintf("Router state for %q has no root route", state.URL))
	}
	seen := make(map[*RouteSnapshot]struct{})
	return validateRoute(state.Root, "root", seen)
}

func validateRoute(route *RouteSnapshot, path string, seen map[*RouteSnapshot]struct{}) error {
	if _, ok := seen[route]; ok {
		return errors.New("R003").
			WithDetail("Route " + path + " is reachable more than once")
	}
	seen[route] = struct{}{}

	for i, child := range route.Children {
		childPath := fmt.Sprintf("%s.children[%d]", path, i)
		if child == nil {
			return errors.New("R004").
				WithDetail("Route " + childPath + " is nil")
		}
		if err := validateRoute(child, childPath, seen); err != nil {
			return err
		}
	}
	return nil
}
