// Package rbac maps the two account roles onto the surfaces they may reach:
// admin accounts onto the admin component set, user accounts onto the
// self-service set.
package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	SurfaceAdmin = "admin"
	SurfaceUser  = "my"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// NewEnforcer builds the static policy set; there is no runtime policy
// administration.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		{"admin", SurfaceAdmin, "access"},
		{"user", SurfaceUser, "access"},
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// HomeFor is the surface an authenticated role belongs on, used to redirect
// a valid session presented to the wrong surface.
func HomeFor(role string) string {
	if role == "admin" {
		return "/api/v1/admin/dashboard"
	}
	return "/api/v1/my/leaves"
}
