package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SendsJSONBodyAndHeaders(t *testing.T) {
	var (
		gotMethod, gotPath, gotAuth, gotCT, gotReqID string
		gotBody                                      map[string]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")
		gotReqID = r.Header.Get("X-Request-ID")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL+"/", nil, nil)
	resp, err := c.Do(context.Background(), Request{
		Method: http.MethodPut,
		Path:   "/api/patients/me",
		Token:  "abc123",
		Body:   map[string]string{"firstName": "Amina"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.True(t, resp.Successful())
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/patients/me", gotPath)
	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.Equal(t, "application/json; charset=utf-8", gotCT)
	assert.Equal(t, map[string]string{"firstName": "Amina"}, gotBody)
	_, err = uuid.Parse(gotReqID)
	assert.NoError(t, err)
	assert.Equal(t, gotReqID, resp.RequestID)
}

func TestDo_NoTokenNoBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	resp, err := New(srv.URL, nil, nil).Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.False(t, resp.Successful())
}

func TestDo_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, nil, nil).Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	require.Error(t, err)
}

func TestDo_UnencodableBody(t *testing.T) {
	_, err := New("http://127.0.0.1:1", nil, nil).Do(context.Background(), Request{
		Method: http.MethodPost, Path: "/", Body: map[string]any{"ch": make(chan int)},
	})
	require.ErrorContains(t, err, "encode request body")
}

func TestGo_CallsOnResponseOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	responses := make(chan *Response, 2)
	failures := make(chan error, 2)

	New(srv.URL, nil, nil).Go(context.Background(), Request{Method: http.MethodGet, Path: "/"}, Callbacks{
		OnFailure:  func(err error) { failures <- err },
		OnResponse: func(r *Response) { responses <- r },
	})

	select {
	case r := <-responses:
		assert.Equal(t, http.StatusInternalServerError, r.Status)
	case <-time.After(5 * time.Second):
		t.Fatal("no callback")
	}
	assert.Empty(t, failures)
	assert.Empty(t, responses)
}

func TestGo_CallsOnFailureOnce(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	responses := make(chan *Response, 2)
	failures := make(chan error, 2)

	New(url, nil, nil).Go(context.Background(), Request{Method: http.MethodGet, Path: "/"}, Callbacks{
		OnFailure:  func(err error) { failures <- err },
		OnResponse: func(r *Response) { responses <- r },
	})

	select {
	case err := <-failures:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("no callback")
	}
	assert.Empty(t, responses)
}
