package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/plant-nursery-api/internal/domains/users/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/users/ports"
	"github.com/Apurer/plant-nursery-api/internal/platform/storage"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo     ports.Repository
	tx       storage.TransactionManager
	sessions ports.SessionStore
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	newID    func() string
	now      func() time.Time
}

func NewService(repo ports.Repository, tx storage.TransactionManager, sessions ports.SessionStore, hasher ports.PasswordHasher, tokens ports.TokenIssuer) *Service {
	if sessions == nil {
		sessions = ports.NoopSessionStore
	}
	return &Service{
		repo:     repo,
		tx:       tx,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if err := domain.ValidateRegistration(input.Name, input.Email, input.Password); err != nil {
		return nil, mapError(err)
	}
	return s.create(ctx, input.Name, input.Email, input.Password, false)
}

func (s *Service) create(ctx context.Context, name, email, password string, isAdmin bool) (*domain.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user := domain.NewUser(s.newID(), name, email, hash, isAdmin, s.now().UTC())
	var saved *domain.User
	err = s.tx.Execute(ctx, func(ctx context.Context, repos storage.Repositories) error {
		if _, err := repos.Users().GetByEmail(ctx, user.Email); err == nil {
			return ports.ErrAlreadyExists
		} else if !errors.Is(err, ports.ErrNotFound) {
			return err
		}
		saved, err = repos.Users().Save(ctx, user)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Login checks credentials and opens a session. Unknown emails and wrong
// passwords fail the same way.
func (s *Service) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Check(password, user.PasswordHash) {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	token, expiresAt, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, user.ID, token, expiresAt); err != nil {
		return nil, err
	}
	return &ports.LoginResult{Token: token, User: user}, nil
}

func (s *Service) Logout(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return nil
	}
	return s.sessions.Delete(ctx, userID)
}

// Authenticate verifies a bearer token and that its session is still open.
func (s *Service) Authenticate(ctx context.Context, token string) (*ports.Claims, error) {
	claims, err := s.tokens.Verify(strings.TrimSpace(token))
	if err != nil {
		return nil, mapError(err)
	}
	active, err := s.sessions.Active(ctx, token)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, mapError(ports.ErrInvalidToken)
	}
	return claims, nil
}

// EnsureAdmin creates the administrator account, or promotes the existing
// account with that email.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		if existing.IsAdmin {
			return existing, nil
		}
		var promoted *domain.User
		err = s.tx.Execute(ctx, func(ctx context.Context, repos storage.Repositories) error {
			existing.IsAdmin = true
			var err error
			promoted, err = repos.Users().Save(ctx, existing)
			return err
		})
		return promoted, err
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	if err := domain.ValidateRegistration("Admin", email, password); err != nil {
		return nil, mapError(err)
	}
	return s.create(ctx, "Admin", email, password, true)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
