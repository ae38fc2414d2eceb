package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateRegistration(t *testing.T) {
	require.NoError(t, ValidateRegistration("Asha", "asha@example.com", "secret1"))
	require.ErrorIs(t, ValidateRegistration(" ", "asha@example.com", "secret1"), ErrEmptyName)
	require.ErrorIs(t, ValidateRegistration("Asha", "asha", "secret1"), ErrInvalidEmail)
	require.ErrorIs(t, ValidateRegistration("Asha", "asha@example.com", ""), ErrEmptyPassword)
	require.ErrorIs(t, ValidateRegistration("Asha", "asha@example.com", "abc"), ErrWeakPassword)
}

func TestNewUser_NormalizesEmailAndTracksOrders(t *testing.T) {
	user := NewUser("u-1", " Asha ", " Asha@Example.COM ", "hash", false, time.Now())
	require.Equal(t, "Asha", user.Name)
	require.Equal(t, "asha@example.com", user.Email)
	require.Empty(t, user.OrderIDs)

	user.AddOrder("o-1")
	user.AddOrder("o-1")
	user.AddOrder("o-2")
	require.Equal(t, []string{"o-1", "o-2"}, user.OrderIDs)

	clone := user.Clone()
	clone.AddOrder("o-3")
	require.Len(t, user.OrderIDs, 2)
}
