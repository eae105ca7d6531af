package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medesi/portal/internal/client/models"
	"github.com/medesi/portal/internal/client/transport"
)

type recorded struct {
	method string
	path   string
	auth   string
	body   map[string]any
}

func newTestClient(t *testing.T, status int, body string) (*HTTPClient, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method, rec.path = r.Method, r.URL.Path
		rec.auth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		if len(b) > 0 {
			_ = json.Unmarshal(b, &rec.body)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return NewHTTPClient(transport.New(srv.URL, nil, nil)), rec
}

func TestLogin_Success(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, `{"token":"abc123"}`)

	token, err := c.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/login", rec.path)
	assert.Empty(t, rec.auth)
	assert.Equal(t, map[string]any{"email": "a@b.com", "password": "x", "user_type": "student"}, rec.body)
}

func TestLogin_Failures(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		c, _ := newTestClient(t, http.StatusUnauthorized, `{"message":"Invalid credentials"}`)
		_, err := c.Login(context.Background(), "a@b.com", "bad")

		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusUnauthorized, se.Code)
		assert.Equal(t, "Invalid credentials", se.Message)
		assert.NotErrorIs(t, err, ErrAuthExpired)
	})

	t.Run("missing token", func(t *testing.T) {
		c, _ := newTestClient(t, http.StatusOK, `{"user":"x"}`)
		_, err := c.Login(context.Background(), "a@b.com", "x")
		require.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewHTTPClient(transport.New(url, nil, nil)).Login(context.Background(), "a@b.com", "x")
		require.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestForgotPassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c, rec := newTestClient(t, http.StatusOK, `{}`)
		require.NoError(t, c.ForgotPassword(context.Background(), "a@b.com"))
		assert.Equal(t, "/api/forgot-password", rec.path)
		assert.Equal(t, map[string]any{"email": "a@b.com", "user_type": "student"}, rec.body)
	})

	t.Run("server message", func(t *testing.T) {
		c, _ := newTestClient(t, http.StatusNotFound, `{"message":"No account found for this email"}`)
		err := c.ForgotPassword(context.Background(), "x@y.z")

		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "No account found for this email", se.Message)
	})
}

func TestGetMe(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, fullUser)

	u, err := c.GetMe(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "Amina", u.FirstName)
	assert.Equal(t, "Bearer tok", rec.auth)
	assert.Equal(t, "/api/patients/me", rec.path)
}

func TestGetMe_ExpiredSession(t *testing.T) {
	c, _ := newTestClient(t, http.StatusUnauthorized, `{"message":"token expired"}`)

	_, err := c.GetMe(context.Background(), "old")
	require.ErrorIs(t, err, ErrAuthExpired)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Code)
}

func TestGetMeAsync(t *testing.T) {
	c, _ := newTestClient(t, http.StatusOK, fullUser)

	type result struct {
		u   *models.User
		err error
	}
	ch := make(chan result, 1)
	c.GetMeAsync(context.Background(), "tok", func(u *models.User, err error) { ch <- result{u, err} })

	select {
	case r := <-ch:
		require.NoError(t, r.err)
		assert.Equal(t, 7, r.u.ID)
	case <-time.After(5 * time.Second):
		t.Fatal("callback not invoked")
	}
}

func TestUpdateMe(t *testing.T) {
	c, rec := newTestClient(t, http.StatusNoContent, ``)

	err := c.UpdateMe(context.Background(), "tok", models.ProfileUpdate{FirstName: "Amina", FamilyName: "Kaci", PhoneNumber: "0661"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, map[string]any{"firstName": "Amina", "familyName": "Kaci", "phoneNumber": "0661"}, rec.body)

	c, _ = newTestClient(t, http.StatusUnprocessableEntity, `{"message":"phoneNumber is required"}`)
	err = c.UpdateMe(context.Background(), "tok", models.ProfileUpdate{})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnprocessableEntity, se.Code)
}

func TestGetMedicalRecord(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, `{"weight_kg":null,"height_cm":"170"}`)

	m, err := c.GetMedicalRecord(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "none", m.Weight)
	assert.Equal(t, "170", m.Height)
	assert.Equal(t, "/api/patients/medical-record", rec.path)

	done := make(chan error, 1)
	c.GetMedicalRecordAsync(context.Background(), "tok", func(m *models.MedicalRecord, err error) { done <- err })
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("callback not invoked")
	}
}

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil))
	assert.ErrorIs(t, mapError(errors.New("dial tcp: refused")), ErrUnavailable)
	assert.ErrorIs(t, mapError(context.Canceled), context.Canceled)
	assert.NotErrorIs(t, mapError(context.Canceled), ErrUnavailable)
}

func TestStatusError_Error(t *testing.T) {
	assert.Equal(t, "status 500", (&StatusError{Code: 500}).Error())
	assert.Equal(t, "status 404: gone", (&StatusError{Code: 404, Message: "gone"}).Error())
}
