// internal/models/user_test.go
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndCheckPassword(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("s3cret-pass"))

	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	assert.NoError(t, user.CheckPassword("s3cret-pass"))
	assert.Error(t, user.CheckPassword("wrong-pass"))
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	user := &User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, user.SetPassword("s3cret-pass"))

	data, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "passwordHash")
	assert.NotContains(t, string(data), user.PasswordHash)
	assert.Contains(t, string(data), "alice@example.com")
}
