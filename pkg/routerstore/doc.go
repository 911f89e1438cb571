// Package routerstore converts a router's navigation-state tree into plain values
// that a predictable-state container can hold, compare and persist.
//
// A router produces a RouterStateSnapshot on every completed navigation. Its
// RouteSnapshot nodes point back at their root, parent and ancestors, so the
// graph is cyclic and cannot be stored or encoded as-is. The serializers in this
// package project the graph onto acyclic values:
//
//   - DefaultSerializer keeps nearly every route field and maps children
//     recursively, dropping the back-references and lookup maps.
//   - MinimalSerializer keeps only the state URL, the root's data and query
//     parameters, and the params of the deepest active route.
//
// # Usage
//
//	root := routerstore.NewRoute("", nil)
//	root.AppendChild(routerstore.NewRoute("projects/:id", routerstore.Params{"id": "42"}))
//	state := routerstore.NewRouterState("/projects/42", root)
//
//	full := routerstore.DefaultSerializer{}.Serialize(state)
//	min := routerstore.MinimalSerializer{}.Serialize(state)
//	// min.Params["id"] == "42"
//
// Both serializers are pure: they never mutate the snapshot and keep no state
// between calls, so they are safe for concurrent use.
package routerstore
