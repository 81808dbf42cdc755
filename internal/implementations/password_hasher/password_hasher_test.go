package passwordhasher

import (
	"fmt"
	"testing"

	"useradmin/internal/core/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordValid(t *testing.T) {
	cases := []struct {
		id       string
		secret   string
		password user.RawPassword
	}{
		{"1", "", "password"},
		{"2", "secret", "password"},
		{"3", "secret", "p"},
		{"4", "s", "test-password-test-password-test-password"},
		{"5", "secret", "пароль"},
	}
	for n, testcase := range cases {
		t.Run(fmt.Sprintf("%d", n), func(t *testing.T) {
			hasher := NewBcrypt(testcase.secret, 4)

			hash, err := hasher.HashPassword(testcase.password)

			require.NoError(t, err)
			assert.True(t, hasher.ValidatePassword(testcase.password, hash))
		})
	}
}

func TestPasswordInvalid(t *testing.T) {
	cases := []struct {
		id       string
		secret   string
		password user.RawPassword
		another  user.RawPassword
	}{
		{"1", "", "password", "passwordd"},
		{"2", "secret", "password", "Password"},
		{"3", "secret", "p", ""},
		{"4", "s", "test-password", "test-password "},
	}
	for n, testcase := range cases {
		t.Run(fmt.Sprintf("%d", n), func(t *testing.T) {
			hasher := NewBcrypt(testcase.secret, 4)

			hash, err := hasher.HashPassword(testcase.password)

			require.NoError(t, err)
			assert.False(t, hasher.ValidatePassword(testcase.another, hash))
		})
	}
}

func TestDifferentSecretsDoNotMatch(t *testing.T) {
	hasherOne := NewBcrypt("secret-one", 4)
	hasherTwo := NewBcrypt("secret-two", 4)

	hash, err := hasherOne.HashPassword("password")

	require.NoError(t, err)
	assert.False(t, hasherTwo.ValidatePassword("password", hash))
}
