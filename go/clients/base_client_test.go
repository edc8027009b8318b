package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRequestNormalizesErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "session not found: S1", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewBaseClient(server.URL)
	_, err := client.Get(context.Background(), "/api/session/S1/questions")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "session not found: S1", apiErr.Message)
	assert.True(t, apiErr.NotFound())
}

func TestMakeRequestGenericMessageWhenBodyEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewBaseClient(server.URL)
	_, err := client.Get(context.Background(), "/anything")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "request failed with status 502", apiErr.Message)
	assert.False(t, apiErr.NotFound())
}

func TestMakeRequestNoContentYieldsNilPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewBaseClient(server.URL)
	body, err := client.Delete(context.Background(), "/api/session/S1")

	require.NoError(t, err)
	assert.Nil(t, body)
}

func TestClientCarriesCookiesAcrossRequests(t *testing.T) {
	var echoed string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/set":
			http.SetCookie(w, &http.Cookie{Name: "userSessionId", Value: "A1", Path: "/"})
			w.WriteHeader(http.StatusNoContent)
		case "/echo":
			if cookie, err := r.Cookie("userSessionId"); err == nil {
				echoed = cookie.Value
			}
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	client := NewBaseClient(server.URL)
	_, err := client.Post(context.Background(), "/set", nil)
	require.NoError(t, err)
	_, err = client.Get(context.Background(), "/echo")
	require.NoError(t, err)

	assert.Equal(t, "A1", echoed)
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "api error with not found text",
			err:  &APIError{StatusCode: 404, Message: "session not found: S1"},
			want: true,
		},
		{
			name: "wrapped api error",
			err:  fmt.Errorf("failed to get questions: %w", &APIError{StatusCode: 404, Message: "Question not found"}),
			want: true,
		},
		{
			name: "api error without marker",
			err:  &APIError{StatusCode: 500, Message: "boom"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("session not found: S1"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFound(tt.err))
		})
	}
}
