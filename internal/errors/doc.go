// Package errors provides coded, actionable errors for routerstore.
//
// Each error carries a code (e.g., "R002") registered with a category, a short
// message and a longer explanation. Callers add detail and a suggestion:
//
//	err := errors.New("R002").
//	    WithDetail(`Router state for "/projects" has no root route`).
//	    WithSuggestion("Send the snapshot produced by the router, not a subtree")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR R002: Router state has no root route
//	//
//	//   Router state for "/projects" has no root route
//	//
//	//   Hint: Send the snapshot produced by the router, not a subtree
//
// # Categories
//
//   - snapshot: malformed router state snapshots
//   - serializer: serializer selection
//   - codec: JSON decoding and encoding
//   - archive: persistence of serialized states
//   - config: routerstore.json and environment
//
// Errors wrap their cause, so errors.Is and errors.As from the standard
// library work through them.
package errors
