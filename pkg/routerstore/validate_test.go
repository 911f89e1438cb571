package routerstore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vango-dev/routerstore/internal/errors"
)

func TestValidate(t *testing.T) {
	cyclic := &RouteSnapshot{}
	child := &RouteSnapshot{Children: []*RouteSnapshot{cyclic}}
	cyclic.Children = []*RouteSnapshot{child}

	shared := &RouteSnapshot{}

	tests := []struct {
		name     string
		state    *RouterStateSnapshot
		wantCode string
	}{
		{
			name:  "valid tree",
			state: NewRouterState("/a", NewRoute("", nil)),
		},
		{
			name:     "nil state",
			state:    nil,
			wantCode: "R001",
		},
		{
			name:     "missing root",
			state:    &RouterStateSnapshot{URL: "/a"},
			wantCode: "R002",
		},
		{
			name:     "cycle",
			state:    &RouterStateSnapshot{URL: "/a", Root: cyclic},
			wantCode: "R003",
		},
		{
			name: "shared child",
			state: &RouterStateSnapshot{URL: "/a", Root: &RouteSnapshot{
				Children: []*RouteSnapshot{shared, shared},
			}},
			wantCode: "R003",
		},
		{
			name: "nil child",
			state: &RouterStateSnapshot{URL: "/a", Root: &RouteSnapshot{
				Children: []*RouteSnapshot{nil},
			}},
			wantCode: "R004",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.state)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantCode, errors.Code(err))
		})
	}
}
