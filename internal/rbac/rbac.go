// Package rbac holds the casbin role model for the API. Roles come from the
// JWT (admin, hr, employee); policies are seeded at startup since the role
// set is fixed.
package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

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
		{RoleHR, "employee", "read"},
		{RoleHR, "employee", "write"},
		{RoleHR, "timeoff", "read"},
		{RoleHR, "timeoff", "write"},
		{RoleHR, "timeoff", "approve"},
		{RoleHR, "payroll", "read"},
		{RoleHR, "payroll", "write"},
		{RoleHR, "timeclock", "read"},
		{RoleHR, "timeclock", "write"},
		{RoleHR, "recruitment", "read"},
		{RoleHR, "recruitment", "write"},

		{RoleEmployee, "employee", "read"},
		{RoleEmployee, "timeoff", "read"},
		{RoleEmployee, "timeoff", "write"},
		{RoleEmployee, "timeclock", "read"},
		{RoleEmployee, "timeclock", "write"},
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, err
	}

	// Admin inherits everything HR can do, plus the destructive operations.
	if _, err := e.AddGroupingPolicy(RoleAdmin, RoleHR); err != nil {
		return nil, err
	}
	adminOnly := [][]string{
		{RoleAdmin, "employee", "delete"},
		{RoleAdmin, "payroll", "close"},
	}
	if _, err := e.AddPolicies(adminOnly); err != nil {
		return nil, err
	}

	return e, nil
}
