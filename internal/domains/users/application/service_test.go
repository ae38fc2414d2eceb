package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/plant-nursery-api/internal/domains/users/adapters/memory"
	"github.com/Apurer/plant-nursery-api/internal/domains/users/domain"
	"github.com/Apurer/plant-nursery-api/internal/domains/users/ports"
	storagememory "github.com/Apurer/plant-nursery-api/internal/platform/storage/memory"
)

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Check(password, hash string) bool     { return hash == "hashed:"+password }

type fakeTokens struct {
	issued int
}

func (f *fakeTokens) Issue(userID string, isAdmin bool) (string, time.Time, error) {
	f.issued++
	return fmt.Sprintf("%s|%t|%d", userID, isAdmin, f.issued), time.Now().Add(time.Hour), nil
}

func (f *fakeTokens) Verify(token string) (*ports.Claims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 3 {
		return nil, ports.ErrInvalidToken
	}
	return &ports.Claims{UserID: parts[0], IsAdmin: parts[1] == "true"}, nil
}

func newUsers() (*Service, *storagememory.Backend) {
	backend := storagememory.New(storagememory.Snapshot{})
	svc := NewService(backend.Users(), backend, memory.NewSessionStore(), fakeHasher{}, &fakeTokens{})
	seq := 0
	svc.newID = func() string { seq++; return fmt.Sprintf("u-%d", seq) }
	return svc, backend
}

func TestRegister_HashesAndRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUsers()

	user, err := svc.Register(ctx, ports.RegisterInput{Name: "Leela", Email: "Leela@Example.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, "u-1", user.ID)
	require.Equal(t, "leela@example.com", user.Email)
	require.Equal(t, "hashed:secret1", user.PasswordHash)
	require.False(t, user.IsAdmin)

	_, err = svc.Register(ctx, ports.RegisterInput{Name: "Other", Email: "leela@example.com", Password: "secret2"})
	require.ErrorIs(t, err, ports.ErrAlreadyExists)

	_, err = svc.Register(ctx, ports.RegisterInput{Name: "Short", Email: "short@example.com", Password: "12345"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestLoginAuthenticateLogout(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUsers()
	_, err := svc.Register(ctx, ports.RegisterInput{Name: "Leela", Email: "leela@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "leela@example.com", "wrong")
	require.ErrorIs(t, err, ErrAuthentication)
	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)

	result, err := svc.Login(ctx, "LEELA@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "u-1", result.User.ID)

	claims, err := svc.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	require.Equal(t, "u-1", claims.UserID)

	require.NoError(t, svc.Logout(ctx, "u-1"))
	_, err = svc.Authenticate(ctx, result.Token)
	require.ErrorIs(t, err, ports.ErrInvalidToken)
	require.ErrorIs(t, err, ErrAuthentication)

	_, err = svc.Authenticate(ctx, "garbage")
	require.True(t, errors.Is(err, ErrAuthentication))
}

func TestEnsureAdmin_CreatesOnceAndPromotes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUsers()

	admin, err := svc.EnsureAdmin(ctx, "admin@natureparknursery.com", "admin123")
	require.NoError(t, err)
	require.True(t, admin.IsAdmin)

	again, err := svc.EnsureAdmin(ctx, "admin@natureparknursery.com", "admin123")
	require.NoError(t, err)
	require.Equal(t, admin.ID, again.ID)

	_, err = svc.Register(ctx, ports.RegisterInput{Name: "Ops", Email: "ops@example.com", Password: "secret1"})
	require.NoError(t, err)
	promoted, err := svc.EnsureAdmin(ctx, "ops@example.com", "ignored")
	require.NoError(t, err)
	require.True(t, promoted.IsAdmin)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
}
