package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSONWithCookies(t *testing.T, app *fiber.App, method, path string, payload interface{}, cookies []*http.Cookie) (*http.Response, map[string]interface{}) {
	t.Helper()

	var raw []byte
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	resp.Body.Close()
	return resp, result
}

// Full session over cookies alone: register, log in, create a task, star
// it, and watch it show up in the important list.
func TestEndToEndCookieSession(t *testing.T) {
	app := newTestApp()

	username := fmt.Sprintf("e2e_%d", time.Now().UnixNano())
	email := username + "@x.com"

	resp, _ := doJSON(t, app, "POST", "/api/v1/users/register", map[string]string{
		"fullName": "a",
		"email":    email,
		"username": username,
		"password": "Passw0rd!",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	loginResp, _ := doJSONWithCookies(t, app, "POST", "/api/v1/users/login", map[string]string{
		"email":    email,
		"password": "Passw0rd!",
	}, nil)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	cookies := loginResp.Cookies()
	require.NotEmpty(t, cookies)

	resp, result := doJSONWithCookies(t, app, "POST", "/api/v1/tasks/createtask", map[string]string{
		"title": "buy milk",
		"desc":  "2%",
	}, cookies)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	taskID := int(result["data"].(map[string]interface{})["id"].(float64))

	resp, result = doJSONWithCookies(t, app, "GET", "/api/v1/tasks/get-imp-task/all", nil, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, result["data"])

	resp, _ = doJSONWithCookies(t, app, "PUT", fmt.Sprintf("/api/v1/tasks/update-imp-task/%d", taskID), nil, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, result = doJSONWithCookies(t, app, "GET", "/api/v1/tasks/get-imp-task/all", nil, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	impTasks := result["data"].([]interface{})
	require.Len(t, impTasks, 1)
	assert.Equal(t, "buy milk", impTasks[0].(map[string]interface{})["title"])
}
