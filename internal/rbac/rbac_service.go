package rbac

import (
	"sort"
	"strings"
	"sync"

	"go-cabinet/internal/shared/apperror"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock

type Service interface {
	LoadPolicy() error
	Enforce(req EnforceRequest) (bool, error)
	Check(role, resource, action string) error
	Permissions(role string) ([]PermissionResponse, error)
	HasRole(role string) bool
}

// EnforcerFactory returns an empty enforcer carrying the access model.
type EnforcerFactory func() (*casbin.Enforcer, error)

type service struct {
	repo        Repository
	newEnforcer EnforcerFactory
	mu          sync.RWMutex
	enforcer    *casbin.Enforcer
	roles       map[string]struct{}
	logger      *zap.Logger
}

func NewService(repo Repository, newEnforcer EnforcerFactory, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:        repo,
		newEnforcer: newEnforcer,
		logger:      l,
	}
}

// LoadPolicy replaces the in-memory policy with the repository's current
// table. The next policy is built on a fresh enforcer and swapped in only
// once complete; on error the previous grants stay in force.
func (s *service) LoadPolicy() error {
	policy, err := s.repo.LoadPolicy()
	if err != nil {
		s.logger.Error("rbac policy read failed", zap.Error(err))
		return err
	}

	next, err := s.newEnforcer()
	if err != nil {
		return err
	}

	var grants int
	roles := make(map[string]struct{}, len(policy.Roles))
	for role, rp := range policy.Roles {
		roles[role] = struct{}{}
		for _, parent := range rp.Inherits {
			if _, err := next.AddGroupingPolicy(role, parent); err != nil {
				return err
			}
		}
		for resource, actions := range rp.Permissions {
			for _, action := range actions {
				if _, err := next.AddPolicy(role, resource, action); err != nil {
					return err
				}
				grants++
			}
		}
	}
	if err := next.BuildRoleLinks(); err != nil {
		return err
	}

	s.mu.Lock()
	s.enforcer = next
	s.roles = roles
	s.mu.Unlock()

	s.logger.Info("rbac policy loaded",
		zap.Int("roles", len(policy.Roles)),
		zap.Int("grants", grants),
	)
	return nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	role := strings.TrimSpace(req.Role)
	if role == "" {
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.enforcer == nil {
		return false, nil
	}

	allowed, err := s.enforcer.Enforce(role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// Check is the gate consulted before any operation: nil when the role holds
// the permission, apperror.ErrForbidden otherwise.
func (s *service) Check(role, resource, action string) error {
	allowed, err := s.Enforce(EnforceRequest{Role: role, Resource: resource, Action: action})
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, apperror.ErrInternal.Message, apperror.ErrInternal.HTTPStatus)
	}
	if !allowed {
		return apperror.ErrForbidden
	}
	return nil
}

func (s *service) Permissions(role string) ([]PermissionResponse, error) {
	s.mu.RLock()
	enforcer := s.enforcer
	s.mu.RUnlock()
	if enforcer == nil {
		return []PermissionResponse{}, nil
	}

	perms, err := enforcer.GetImplicitPermissionsForUser(role)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(perms))
	resp := make([]PermissionResponse, 0, len(perms))
	for _, p := range perms {
		if len(p) < 3 {
			continue
		}
		key := p[1] + ":" + p[2]
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		resp = append(resp, PermissionResponse{Role: p[0], Resource: p[1], Action: p[2]})
	}

	sort.Slice(resp, func(i, j int) bool {
		if resp[i].Resource != resp[j].Resource {
			return resp[i].Resource < resp[j].Resource
		}
		return resp[i].Action < resp[j].Action
	})
	return resp, nil
}

// HasRole reports whether the loaded policy defines the role label.
func (s *service) HasRole(role string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.roles[role]
	return ok
}
