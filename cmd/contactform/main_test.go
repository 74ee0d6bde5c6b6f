package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contact-service/internal/auth"
	"contact-service/internal/form"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSubmitCommand(t *testing.T) {
	var got form.Payload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		if got.Message == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false,"message":"Name, email, and message are required"}`))
			return
		}
		w.Write([]byte(`{"success":true,"message":"Message sent successfully","submissionId":"abc-123"}`))
	}))
	defer server.Close()

	t.Run("Success", func(t *testing.T) {
		out, err := execute(t, "submit", "--endpoint", server.URL,
			"--name", "Ana", "--email", "ana@x.io", "--subject", "Hi", "--message", "Hello")
		require.NoError(t, err)

		assert.Equal(t, form.Payload{Name: "Ana", Email: "ana@x.io", Subject: "Hi", Message: "Hello"}, got)
		assert.Equal(t, "Message sent successfully\nSubmission ID: abc-123\n", out)
	})

	t.Run("RejectedExitsNonZero", func(t *testing.T) {
		out, err := execute(t, "submit", "--endpoint", server.URL, "--name", "Ana", "--email", "ana@x.io")
		assert.ErrorIs(t, err, errSubmitFailed)
		assert.Equal(t, "Error: Name, email, and message are required\n", out)
	})

	t.Run("HTML", func(t *testing.T) {
		out, err := execute(t, "submit", "--endpoint", server.URL,
			"--name", "Ana", "--email", "ana@x.io", "--message", "Hello", "--html")
		require.NoError(t, err)
		assert.Equal(t, form.RenderSuccess("Message sent successfully")+"\n", out)
	})

	t.Run("EndpointFromEnv", func(t *testing.T) {
		t.Setenv("CONTACTFORM_ENDPOINT", server.URL)

		_, err := execute(t, "submit", "--name", "Env", "--email", "e@x.io", "--message", "m")
		require.NoError(t, err)
		assert.Equal(t, "Env", got.Name)
	})

	t.Run("NetworkError", func(t *testing.T) {
		dead := httptest.NewServer(http.NotFoundHandler())
		dead.Close()

		out, err := execute(t, "submit", "--endpoint", dead.URL, "--name", "a", "--email", "b", "--message", "c")
		assert.ErrorIs(t, err, errSubmitFailed)
		assert.Equal(t, form.NetworkErrorMessage+"\n", out)
	})
}

func TestAdminTokenCommand(t *testing.T) {
	t.Run("FromFlag", func(t *testing.T) {
		out, err := execute(t, "admin-token", "--secret", "s3cret", "--subject", "owner")
		require.NoError(t, err)

		claims, err := auth.ValidateAdminToken("s3cret", strings.TrimSpace(out))
		require.NoError(t, err)
		assert.Equal(t, "owner", claims.Subject)
	})

	t.Run("FromEnv", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "env-secret")

		out, err := execute(t, "admin-token")
		require.NoError(t, err)

		claims, err := auth.ValidateAdminToken("env-secret", strings.TrimSpace(out))
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Subject)
	})

	t.Run("MissingSecret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := execute(t, "admin-token")
		assert.ErrorIs(t, err, auth.ErrMissingSecret)
	})
}
