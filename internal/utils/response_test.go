// internal/utils/response_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetUserIDFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set("user_id", "68b1c0ffee0000000000abcd")

	id, ok := GetUserIDFromContext(c)
	assert.True(t, ok)
	assert.Equal(t, "68b1c0ffee0000000000abcd", id)
}

func TestGetUserIDFromContextUnset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	id, ok := GetUserIDFromContext(c)
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestGetUserIDFromContextWrongType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set("user_id", 42)

	id, ok := GetUserIDFromContext(c)
	assert.False(t, ok)
	assert.Empty(t, id)
}
