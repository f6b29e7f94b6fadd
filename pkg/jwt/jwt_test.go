package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentwheels/vehicle-rental-backend/internal/models"
)

func TestGenerateAndValidateToken(t *testing.T) {
	service := NewService("test-secret", time.Hour)
	accountID := uuid.New()

	t.Run("Round Trip", func(t *testing.T) {
		token, err := service.GenerateToken(accountID, models.RoleCustomer)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, accountID, claims.AccountID)
		assert.Equal(t, models.RoleCustomer, claims.Role)
		assert.Equal(t, accountID.String(), claims.Subject)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		token, err := service.GenerateToken(accountID, models.RoleOwner)
		require.NoError(t, err)

		other := NewService("different-secret", time.Hour)
		claims, err := other.ValidateToken(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Expired Token", func(t *testing.T) {
		short := NewService("test-secret", -time.Minute)
		token, err := short.GenerateToken(accountID, models.RoleDriver)
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		claims, err := service.ValidateToken("not-a-token")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Unknown Role Rejected", func(t *testing.T) {
		token, err := service.GenerateToken(accountID, models.Role("superuser"))
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}

func TestGetTokenExpiry(t *testing.T) {
	service := NewService("test-secret", time.Hour)

	token, err := service.GenerateToken(uuid.New(), models.RoleAdmin)
	require.NoError(t, err)

	expiry, err := service.GetTokenExpiry(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, time.Minute)
}
