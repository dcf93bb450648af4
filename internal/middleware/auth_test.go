package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskapi/internal/config"
	"taskapi/pkg/logger"
	"taskapi/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The rejection paths below fail before the user lookup, so no database
// is needed. The user-load path is covered by the handlers suite.
func newGateApp(t *testing.T) *fiber.App {
	t.Helper()
	logger.InitLoggers()
	config.Tokens = token.NewService("access-secret", "refresh-secret", time.Hour, time.Hour)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/protected", RequireAuth, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRequireAuthNoToken(t *testing.T) {
	app := newGateApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeEnvelope(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(http.StatusUnauthorized), body["statusCode"])
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	app := newGateApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthTamperedToken(t *testing.T) {
	app := newGateApp(t)

	tok, err := config.Tokens.IssueAccessToken(1)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok[:len(tok)-2]+"xx")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	app := newGateApp(t)

	expired := token.NewService("access-secret", "refresh-secret", -time.Minute, time.Hour)
	tok, err := expired.IssueAccessToken(1)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeEnvelope(t, resp)
	// The message must not say whether signature or expiry failed
	assert.Equal(t, "Invalid or expired access token", body["message"])
}

func TestRequireAuthCookieTakesPrecedence(t *testing.T) {
	app := newGateApp(t)

	tok, err := config.Tokens.IssueAccessToken(1)
	require.NoError(t, err)

	// A bad cookie must reject even when a valid bearer token rides along
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "garbage"})
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
