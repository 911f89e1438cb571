package routerstore

// NewRoute creates a route snapshot matched against path with the given params.
// The route config's component is left unset.
func NewRoute(path string, params Params) *RouteSnapshot {
	if params == nil {
		params = Params{}
	}
	route := &RouteSnapshot{
		Params:      params,
		Data:        Data{},
		QueryParams: Params{},
		Outlet:      PrimaryOutlet,
		RouteConfig: &RouteConfig{Path: path},
	}
	route.ParamMap = NewParamMap(route.Params)
	route.QueryParamMap = NewParamMap(route.QueryParams)
	route.Root = route
	route.PathFromRoot = []*RouteSnapshot{route}
	return route
}

// PrimaryOutlet is the name of the unnamed outlet.
const PrimaryOutlet = "primary"

// NewRouterState creates a router state snapshot rooted at root.
// The tree's back-references are rebuilt from the Children lists.
func NewRouterState(url string, root *RouteSnapshot) *RouterStateSnapshot {
	Link(root)
	return &RouterStateSnapshot{URL: url, Root: root}
}

// AppendChild attaches child below r and links the child's subtree.
func (r *RouteSnapshot) AppendChild(child *RouteSnapshot) *RouteSnapshot {
	r.Children = append(r.Children, child)
	if r.FirstChild == nil {
		r.FirstChild = child
	}
	linkRoute(child, r)
	return child
}

// Link sets Root, Parent, PathFromRoot, FirstChild, ParamMap and QueryParamMap
// for every node below root from the Children lists. Query params are shared
// by the whole tree, so the root's map is propagated to every node.
func Link(root *RouteSnapshot) {
	if root == nil {
		return
	}
	linkRoute(root, nil)
}

func linkRoute(route, parent *RouteSnapshot) {
	route.Parent = parent
	if parent == nil {
		route.Root = route
		route.PathFromRoot = []*RouteSnapshot{route}
	} else {
		route.Root = parent.Root
		route.PathFromRoot = append(append([]*RouteSnapshot{}, parent.PathFromRoot...), route)
		route.QueryParams = parent.QueryParams
		route.Fragment = parent.Fragment
	}
	if route.Params == nil {
		route.Params = Params{}
	}
	if route.QueryParams == nil {
		route.QueryParams = Params{}
	}
	if route.Data == nil {
		route.Data = Data{}
	}
	route.ParamMap = NewParamMap(route.Params)
	route.QueryParamMap = NewParamMap(route.QueryParams)

	route.FirstChild = nil
	if len(route.Children) > 0 {
		route.FirstChild = route.Children[0]
	}
	for _, child := range route.Children {
		linkRoute(child, route)
	}
}

// CountNodes returns the number of routes in the tree rooted at root.
func CountNodes(root *RouteSnapshot) int {
	if root == nil {
		return 0
	}
	n := 1
	for _, child := range root.Children {
		n += CountNodes(child)
	}
	return n
}

// Depth returns the number of levels in the tree rooted at root.
func Depth(root *RouteSnapshot) int {
	if root == nil {
		return 0
	}
	deepest := 0
	for _, child := range root.Children {
		if d := Depth(child); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
