package user

import "fmt"

type Repository interface {
	GetByID(userID int64) (*User, error)
}

// CapabilityResolver expands a role name into permission names. The admin role
// resolves to the wildcard capability without touching the grant table.
type CapabilityResolver interface {
	Capabilities(roleName string) ([]string, error)
}

type Service struct {
	repo         Repository
	capabilities CapabilityResolver
}

func NewService(repo Repository, capabilities CapabilityResolver) *Service {
	return &Service{
		repo:         repo,
		capabilities: capabilities,
	}
}

func (s *Service) GetByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	if u == nil {
		return nil, ErrNotFound
	}

	perms, err := s.capabilities.Capabilities(u.RoleName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role capabilities: %w", err)
	}
	u.Permissions = perms

	return u, nil
}
