package jwt

import (
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")
	employeeID := "0190a5b2-7c3d-7e4f-8a1b-2c3d4e5f6a7b"

	token, expiresAt, err := svc.GenerateAccessToken("u1", "m@example.com", &employeeID, user.RoleManager)
	require.NoError(t, err)
	assert.NotZero(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	role, ok := decoded.Get("role")
	require.True(t, ok)
	assert.Equal(t, "manager", role)

	emp, ok := decoded.Get("employee_id")
	require.True(t, ok)
	assert.Equal(t, employeeID, emp)
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "soon")
	_, _, err := svc.GenerateAccessToken("u1", "m@example.com", nil, user.RoleOwner)
	assert.Error(t, err)
}
