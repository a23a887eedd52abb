package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "test-secret-key-for-jwt")
	t.Setenv("STORAGE_TYPE", "local")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cmdRoot()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestToken(t *testing.T) {
	setTestEnv(t)

	out, err := execute(t, "token", "--role", "manager", "--email", "maria@example.com")
	require.NoError(t, err)

	var body struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))

	svc := jwt.NewJWTService("test-secret-key-for-jwt", "1h")
	token, err := svc.JWTAuth().Decode(body.AccessToken)
	require.NoError(t, err)
	role, _ := token.Get("role")
	assert.Equal(t, "manager", role)
}

func TestToken_UnknownRole(t *testing.T) {
	setTestEnv(t)
	_, err := execute(t, "token", "--role", "admin")
	assert.EqualError(t, err, `unknown role "admin"`)
}

func TestReports_RequiresPeriodFlags(t *testing.T) {
	setTestEnv(t)
	_, err := execute(t, "reports", "send-csv", "--manager", "0190a5b2-0000-7000-8000-000000000001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s)")
}

func TestSetManager_RequiresExactlyOneTarget(t *testing.T) {
	setTestEnv(t)
	_, err := execute(t, "employees", "set-manager", "0190a5b2-0000-7000-8000-00000000000a")
	assert.EqualError(t, err, "exactly one of --manager or --root is required")

	_, err = execute(t, "employees", "set-manager", "0190a5b2-0000-7000-8000-00000000000a", "--root", "--manager", "x")
	assert.EqualError(t, err, "exactly one of --manager or --root is required")
}

func TestReports_IncludeBonusesDefaultsOn(t *testing.T) {
	for _, cmd := range []*cobra.Command{cmdSummary(), cmdGenerateCSV()} {
		flag := cmd.Flags().Lookup("include-bonuses")
		require.NotNil(t, flag, cmd.Name())
		assert.Equal(t, "true", flag.DefValue, cmd.Name())
	}
}
