package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	ConfigureJWT("test-secret")
	id := uuid.New()

	token, err := CreateToken(id, "admin")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	ConfigureJWT("secret-a")
	token, err := CreateToken(uuid.New(), "user")
	require.NoError(t, err)

	ConfigureJWT("secret-b")
	_, err = ValidateToken(token)
	require.Error(t, err)
}

func TestErrorCodesSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("vote: %w", ErrAlreadyVoted)
	assert.Equal(t, "ALREADY_VOTED", ErrorCode(wrapped))
	assert.Equal(t, ClassPolicy, ClassOf(wrapped))
	assert.Equal(t, ClassNotFound, ClassOf(ErrTourNotFound))
	assert.Equal(t, ClassResourceExhausted, ClassOf(ErrBalanceOverflow))
	assert.Equal(t, "INTERNAL", ErrorCode(fmt.Errorf("boom")))
}

func TestHandleServiceErrorWritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Set("trace_id", "trace-1")

	HandleServiceError(c, ErrLocationMismatch)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "LOCATION_MISMATCH", body.ErrorCode)
	assert.Equal(t, "trace-1", body.TraceID)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NoError(t, ComparePasswords(hash, "hunter22"))
	require.Error(t, ComparePasswords(hash, "hunter23"))
}

func TestGenerateSecureToken(t *testing.T) {
	token, err := GenerateSecureToken(16)
	require.NoError(t, err)
	assert.Len(t, token, 32)

	_, err = GenerateSecureToken(0)
	require.Error(t, err)
}
