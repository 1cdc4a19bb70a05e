package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func TestAuthorizationHeader(t *testing.T) {
	tests := []struct {
		name       string
		tokens     TokenSource
		wantHeader string
	}{
		{name: "with token", tokens: staticToken("abc123"), wantHeader: "Token abc123"},
		{name: "empty token", tokens: staticToken(""), wantHeader: ""},
		{name: "nil source", tokens: nil, wantHeader: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("Authorization")
				fmt.Fprint(w, `[]`)
			}))
			defer server.Close()

			client := New(server.URL, tt.tokens)
			_, err := client.ListCategories(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantHeader, got)
		})
	}
}

func TestTokenReadAtCallTime(t *testing.T) {
	var got []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	token := &rotatingToken{}
	client := New(server.URL, token)

	token.value = "first"
	_, err := client.ListCategories(context.Background())
	require.NoError(t, err)

	token.value = "second"
	_, err = client.ListCategories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Token first", "Token second"}, got)
}

type rotatingToken struct {
	value string
}

func (t *rotatingToken) Token() string { return t.value }

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "401 becomes AuthError",
			status: http.StatusUnauthorized,
			body:   `{"detail": "Invalid token."}`,
			check: func(t *testing.T, err error) {
				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, "Invalid token.", authErr.Message)
			},
		},
		{
			name:   "400 becomes ValidationError with fields",
			status: http.StatusBadRequest,
			body:   `{"amount": ["This field is required."], "category": ["Invalid pk."]}`,
			check: func(t *testing.T, err error) {
				var valErr *ValidationError
				require.ErrorAs(t, err, &valErr)
				assert.Equal(t, []string{"This field is required."}, valErr.Fields["amount"])
				assert.Contains(t, valErr.Error(), "amount: This field is required.")
			},
		},
		{
			name:   "500 becomes APIError with body",
			status: http.StatusInternalServerError,
			body:   `{"error": "boom"}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
				assert.Equal(t, "boom", apiErr.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client := New(server.URL, nil)
			_, err := client.ListCategories(context.Background())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestTransportError(t *testing.T) {
	// Point at a closed server so the connection is refused.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := New(server.URL, nil)
	_, err := client.ListCategories(context.Background())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestServerMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "auth error", err: &AuthError{Message: "bad token"}, want: "bad token"},
		{name: "validation message", err: &ValidationError{Message: "no"}, want: "no"},
		{
			name: "validation fields",
			err:  &ValidationError{Fields: map[string][]string{"text": {"required"}}},
			want: "text: required",
		},
		{name: "api error", err: &APIError{StatusCode: 500, Message: "boom"}, want: "boom"},
		{name: "plain error", err: fmt.Errorf("something"), want: ""},
		{name: "wrapped auth error", err: fmt.Errorf("outer: %w", &AuthError{Message: "inner"}), want: "inner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ServerMessage(tt.err))
		})
	}
}

func TestBaseURLTrailingSlash(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client := New(server.URL+"/", nil)
	_, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/categories/", gotPath)
	assert.False(t, strings.Contains(gotPath, "//"))
}
