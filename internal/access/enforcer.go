package access

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"hr-admin/internal/config"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && (r.obj == p.obj || p.obj == "*") && (r.act == p.act || p.act == "*")
`

// Enforcer is the casbin-backed Decider. The policy set is seeded once
// from the static application config and never mutated afterwards.
type Enforcer struct {
	enforcer *casbin.Enforcer
}

func NewEnforcer(cfg config.AppConfig) (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, role := range cfg.OwnerRoles {
		if _, err := e.AddPolicy(role, "*", "*"); err != nil {
			return nil, err
		}
	}

	for _, role := range cfg.TenantRoles {
		switch role {
		case "Admin", "HR Manager":
			for _, entity := range []string{"employee", "vacation_request"} {
				if _, err := e.AddPolicy(role, entity, "*"); err != nil {
					return nil, err
				}
			}
			if _, err := e.AddPolicy(role, "user", string(OperationRead)); err != nil {
				return nil, err
			}
		case "Employee":
			grants := []struct {
				entity string
				op     Operation
			}{
				{"employee", OperationRead},
				{"vacation_request", OperationRead},
				{"vacation_request", OperationCreate},
				{"vacation_request", OperationUpdate},
			}
			for _, g := range grants {
				if _, err := e.AddPolicy(role, g.entity, string(g.op)); err != nil {
					return nil, err
				}
			}
		}
	}

	// customer roles (Guest) hold no grants

	return &Enforcer{enforcer: e}, nil
}

func (e *Enforcer) CanAccess(subject Subject, entity string, op Operation) (bool, error) {
	for _, role := range subject.Roles {
		allowed, err := e.enforcer.Enforce(role, entity, string(op))
		if err != nil {
			return false, err
		}
		if allowed {
			return true, nil
		}
	}
	return false, nil
}
