package routerstore

// Params holds route or query parameters.
type Params map[string]any

// Data holds static and resolved route data.
type Data map[string]any

// URLSegment is one segment of a route's URL, with its matrix parameters.
type URLSegment struct {
	Path       string            `json:"path"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// String returns the segment path.
func (s URLSegment) String() string {
	return s.Path
}

// RouteConfig is the static configuration a route was matched against.
type RouteConfig struct {
	// Component is the view the route renders. Routers store a component
	// reference here; decoded snapshots carry the component name.
	Component any `json:"component,omitempty"`

	// Path is the URL pattern (e.g., "projects/:id").
	Path string `json:"path,omitempty"`

	// PathMatch is the match strategy ("prefix" or "full").
	PathMatch string `json:"pathMatch,omitempty"`

	// RedirectTo is the redirect target, if any.
	RedirectTo string `json:"redirectTo,omitempty"`

	// Outlet is the named outlet the route renders into.
	Outlet string `json:"outlet,omitempty"`
}

// RouteSnapshot describes one matched route at the time a navigation completed.
//
// Root, Parent, PathFromRoot and FirstChild refer to other nodes of the same
// tree and are not owned by the node. Children is the owning edge.
type RouteSnapshot struct {
	Params        Params       `json:"params,omitempty"`
	ParamMap      ParamMap     `json:"-"`
	Data          Data         `json:"data,omitempty"`
	URL           []URLSegment `json:"url,omitempty"`
	Outlet        string       `json:"outlet,omitempty"`
	RouteConfig   *RouteConfig `json:"routeConfig,omitempty"`
	QueryParams   Params       `json:"queryParams,omitempty"`
	QueryParamMap ParamMap     `json:"-"`
	Fragment      *string      `json:"fragment,omitempty"`

	Root         *RouteSnapshot   `json:"-"`
	Parent       *RouteSnapshot   `json:"-"`
	PathFromRoot []*RouteSnapshot `json:"-"`
	FirstChild   *RouteSnapshot   `json:"-"`

	Children []*RouteSnapshot `json:"children,omitempty"`
}

// RouterStateSnapshot is the full navigation tree for one completed navigation.
type RouterStateSnapshot struct {
	URL  string         `json:"url"`
	Root *RouteSnapshot `json:"root"`
}

// SerializedRoute is the plain projection of a RouteSnapshot produced by
// DefaultSerializer.
//
// A nil Component or FirstChild is undefined and omitted when encoded; a nil
// RouteConfig is encoded as null.
type SerializedRoute struct {
	URL         []URLSegment       `json:"url"`
	Params      Params             `json:"params"`
	QueryParams Params             `json:"queryParams"`
	Fragment    *string            `json:"fragment"`
	Data        Data               `json:"data"`
	Outlet      string             `json:"outlet"`
	RouteConfig *RouteConfig       `json:"routeConfig"`
	Component   any                `json:"component,omitempty"`
	Children    []*SerializedRoute `json:"children"`
	FirstChild  *SerializedRoute   `json:"firstChild,omitempty"`
}

// SerializedRouterState is the output of DefaultSerializer.
type SerializedRouterState struct {
	URL  string           `json:"url"`
	Root *SerializedRoute `json:"root"`
}

// MinimalRouterState is the output of MinimalSerializer.
type MinimalRouterState struct {
	URL         string `json:"url"`
	Data        Data   `json:"data"`
	QueryParams Params `json:"queryParams"`
	Params      Params `json:"params"`
}
