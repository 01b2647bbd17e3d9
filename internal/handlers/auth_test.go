package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/service"
)

func TestAuth_HostSignUpThenSignIn(t *testing.T) {
	auth := &mockAuth{signUpID: 42, genTokenToken: "host-token"}
	r := newTestRouter(&service.Service{Authorization: auth})
	creds := `{"username":"riley","password":"projector"}`

	w := do(r, http.MethodPost, "/auth/sign-up", creds, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 42, created.ID)
	assert.Equal(t, "riley", auth.lastSignUpUsername)
	assert.Equal(t, "projector", auth.lastSignUpPassword)

	w = do(r, http.MethodPost, "/auth/sign-in", creds, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var signed struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signed))
	assert.Equal(t, "host-token", signed.Token)
	assert.Equal(t, "riley", auth.lastGenUsername)
}

func TestAuth_BadBodies(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}})

	for _, path := range []string{"/auth/sign-up", "/auth/sign-in"} {
		w := do(r, http.MethodPost, path, `{"username":1}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)

		w = do(r, http.MethodPost, path, `{"username":"riley"}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path+" without password")
	}
}

func TestAuth_ErrorStatuses(t *testing.T) {
	creds := `{"username":"riley","password":"nope"}`
	cases := []struct {
		name string
		path string
		auth *mockAuth
		want int
	}{
		{"wrong password", "/auth/sign-in", &mockAuth{genTokenErr: service.ErrInvalidPassword}, http.StatusUnauthorized},
		{"unknown host", "/auth/sign-in", &mockAuth{genTokenErr: service.ErrHostNotFound}, http.StatusUnauthorized},
		{"no signing key", "/auth/sign-in", &mockAuth{genTokenErr: service.ErrNoSigningKey}, http.StatusServiceUnavailable},
		{"sign-in storage failure", "/auth/sign-in", &mockAuth{genTokenErr: errors.New("database is locked")}, http.StatusInternalServerError},
		{"taken username", "/auth/sign-up", &mockAuth{signUpErr: service.ErrHostTaken}, http.StatusConflict},
		{"blank username", "/auth/sign-up", &mockAuth{signUpErr: service.ErrInvalidHost}, http.StatusBadRequest},
		{"sign-up storage failure", "/auth/sign-up", &mockAuth{signUpErr: errors.New("disk full")}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(newTestRouter(&service.Service{Authorization: tc.auth}), http.MethodPost, tc.path, creds, nil)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}
}
