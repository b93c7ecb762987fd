package rbac

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy is the data-driven role table: role label -> resource -> actions.
type Policy struct {
	Roles map[string]RolePolicy `yaml:"roles"`
}

type RolePolicy struct {
	Inherits    []string            `yaml:"inherits"`
	Permissions map[string][]string `yaml:"permissions"`
}

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock

type Repository interface {
	LoadPolicy() (Policy, error)
}

type fileRepository struct {
	path string
}

func NewFileRepository(path string) Repository {
	return &fileRepository{path: path}
}

func (r *fileRepository) LoadPolicy() (Policy, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return Policy{}, fmt.Errorf("read rbac policy %s: %w", r.path, err)
	}

	var policy Policy
	if err := yaml.Unmarshal(raw, &policy); err != nil {
		return Policy{}, fmt.Errorf("decode rbac policy %s: %w", r.path, err)
	}
	if err := policy.Validate(); err != nil {
		return Policy{}, fmt.Errorf("rbac policy %s: %w", r.path, err)
	}
	return policy, nil
}

func (p Policy) Validate() error {
	if len(p.Roles) == 0 {
		return fmt.Errorf("no roles defined")
	}
	for role, rp := range p.Roles {
		for _, parent := range rp.Inherits {
			if _, ok := p.Roles[parent]; !ok {
				return fmt.Errorf("role %q inherits unknown role %q", role, parent)
			}
		}
		for resource, actions := range rp.Permissions {
			for _, action := range actions {
				switch action {
				case ActionRead, ActionCreate, ActionUpdate, ActionDelete, ActionManage:
				default:
					return fmt.Errorf("role %q has unknown action %q on %q", role, action, resource)
				}
			}
		}
	}
	return nil
}
