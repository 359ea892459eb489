package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signup(t *testing.T, router *gin.Engine, name, email, password string) envelope {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/api/auth/signup", map[string]string{
		"name": name, "email": email, "password": password,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeEnvelope(t, w)
}

func TestSignup(t *testing.T) {
	router := setupTestAPI(t)

	t.Run("missing fields", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/auth/signup", map[string]string{
			"name": "Ann",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.False(t, env.Success)
		assert.Equal(t, "Name, email, and password are required", env.Error)
	})

	t.Run("malformed email", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/auth/signup", map[string]string{
			"name": "Ann", "email": "not-an-email", "password": "secret1",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success stores case-folded email and hides the password", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/auth/signup", map[string]string{
			"name": "Ann", "email": "Ann@X.com", "password": "secret1",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code)

		env := decodeEnvelope(t, w)
		assert.True(t, env.Success)

		var user map[string]interface{}
		require.NoError(t, json.Unmarshal(env.Data, &user))
		assert.Equal(t, "ann@x.com", user["email"])
		assert.Equal(t, "Ann", user["name"])
		assert.NotContains(t, user, "password")
		assert.NotEmpty(t, user["id"])
		assert.NotEmpty(t, user["createdAt"])
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/auth/signup", map[string]string{
			"name": "Other Ann", "email": "ANN@x.com", "password": "secret2",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestLogin(t *testing.T) {
	router := setupTestAPI(t)
	signup(t, router, "Ann", "Ann@X.com", "secret1")

	t.Run("missing fields", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/auth/login", map[string]string{
			"email": "ann@x.com",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("case-folded email logs in", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/auth/login", map[string]string{
			"email": "ANN@x.com", "password": "secret1",
		}, "")
		require.Equal(t, http.StatusOK, w.Code)

		env := decodeEnvelope(t, w)
		var data struct {
			Token string                 `json:"token"`
			User  map[string]interface{} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.NotEmpty(t, data.Token)
		assert.Equal(t, "ann@x.com", data.User["email"])
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		wrongPassword := doRequest(t, router, http.MethodPost, "/api/auth/login", map[string]string{
			"email": "ann@x.com", "password": "nope",
		}, "")
		unknownEmail := doRequest(t, router, http.MethodPost, "/api/auth/login", map[string]string{
			"email": "nobody@x.com", "password": "secret1",
		}, "")

		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
		assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	})
}

func TestUpdatePassword(t *testing.T) {
	router := setupTestAPI(t)
	signup(t, router, "Ann", "ann@x.com", "secret1")

	login := func(password string) (int, string) {
		w := doRequest(t, router, http.MethodPost, "/api/auth/login", map[string]string{
			"email": "ann@x.com", "password": password,
		}, "")
		if w.Code != http.StatusOK {
			return w.Code, ""
		}
		env := decodeEnvelope(t, w)
		var data struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		return w.Code, data.Token
	}

	code, token := login("secret1")
	require.Equal(t, http.StatusOK, code)

	t.Run("missing token", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/auth/update-password", map[string]string{
			"currentPassword": "secret1", "newPassword": "secret2",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/auth/update-password", map[string]string{
			"currentPassword": "secret1", "newPassword": "secret2",
		}, "garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/auth/update-password", map[string]string{
			"currentPassword": "secret1",
		}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("new password too short", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/auth/update-password", map[string]string{
			"currentPassword": "secret1", "newPassword": "12345",
		}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("current password incorrect", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/auth/update-password", map[string]string{
			"currentPassword": "wrong", "newPassword": "secret2",
		}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "Current password is incorrect", env.Error)
	})

	t.Run("success rotates the password", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/auth/update-password", map[string]string{
			"currentPassword": "secret1", "newPassword": "secret2",
		}, token)
		require.Equal(t, http.StatusOK, w.Code)

		code, _ := login("secret1")
		assert.Equal(t, http.StatusUnauthorized, code)

		code, _ = login("secret2")
		assert.Equal(t, http.StatusOK, code)
	})
}
