package authtoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymstack/gymhub/pkg/types"
)

func TestGenerateValidateRoundTrip(t *testing.T) {
	iss, err := NewIssuer(types.TokenNamespaceStaff, "secret", time.Hour)
	require.NoError(t, err)

	token, err := iss.Generate(42)
	require.NoError(t, err)

	claims, err := iss.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.PrincipalID)
	assert.Equal(t, types.TokenNamespaceStaff, claims.Namespace)
}

func TestValidateRejectsOtherNamespace(t *testing.T) {
	// Same secret on purpose: the namespace claim alone must separate the
	// credential spaces.
	staff, err := NewIssuer(types.TokenNamespaceStaff, "shared", time.Hour)
	require.NoError(t, err)
	member, err := NewIssuer(types.TokenNamespaceMember, "shared", time.Hour)
	require.NoError(t, err)

	token, err := member.Generate(7)
	require.NoError(t, err)

	_, err = staff.Validate(token)
	assert.ErrorIs(t, err, ErrWrongNamespace)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	a, err := NewIssuer(types.TokenNamespaceStaff, "secret-a", time.Hour)
	require.NoError(t, err)
	b, err := NewIssuer(types.TokenNamespaceStaff, "secret-b", time.Hour)
	require.NoError(t, err)

	token, err := a.Generate(1)
	require.NoError(t, err)

	_, err = b.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	iss, err := NewIssuer(types.TokenNamespaceStaff, "secret", time.Nanosecond)
	require.NoError(t, err)

	token, err := iss.Generate(1)
	require.NoError(t, err)

	_, err = iss.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateRejectsGarbage(t *testing.T) {
	iss, err := NewIssuer(types.TokenNamespaceStaff, "secret", time.Hour)
	require.NoError(t, err)

	_, err = iss.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewIssuerRequiresSecret(t *testing.T) {
	_, err := NewIssuer(types.TokenNamespaceStaff, "", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}
