//nolint:unused
package httpserver_test

import (
	"cinefav/httpserver"
	"cinefav/pkg/config"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = testJWTSecret
	return cfg
}

func signTestToken(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(1 * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(testJWTSecret))
}

func decodeAPIResponse(t *testing.T, rec *httptest.ResponseRecorder) httpserver.APIResponse {
	t.Helper()
	var resp httpserver.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// decodeAPIResult re-marshals the generic result field into a typed struct.
func decodeAPIResult(t *testing.T, result interface{}, dst interface{}) {
	t.Helper()
	raw, err := json.Marshal(result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dst))
}
