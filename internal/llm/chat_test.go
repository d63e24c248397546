package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smart-kitchen/backend/config"
)

func errorAs(err error, target **APIError) bool {
	return errors.As(err, target)
}

func TestChatClient_Generate(t *testing.T) {
	var gotAuth string
	var gotBody ChatRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"<p>Bon appétit</p>"}}]}`)
	}))
	defer ts.Close()

	client := NewChatClient("secret", ts.URL, "deepseek-chat", ts.Client())
	text, err := client.Generate(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, "<p>Bon appétit</p>", text)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "deepseek-chat", gotBody.Model)
	assert.False(t, gotBody.Stream)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, Message{Role: "user", Content: "hello"}, gotBody.Messages[0])
}

func TestChatClient_Errors(t *testing.T) {
	t.Run("error payload", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":{"message":"Authentication Fails (no such user)"}}`)
		}))
		defer ts.Close()

		_, err := NewChatClient("bad", ts.URL, "m", ts.Client()).Generate(context.Background(), "p")

		var apiErr *APIError
		require.True(t, errorAs(err, &apiErr))
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "Authentication Fails (no such user)", err.Error())
	})

	t.Run("empty choices", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"choices":[]}`)
		}))
		defer ts.Close()

		_, err := NewChatClient("k", ts.URL, "m", ts.Client()).Generate(context.Background(), "p")
		assert.EqualError(t, err, "no response from API")
	})
}

func TestNewProvider(t *testing.T) {
	gemini, err := NewProvider(&config.Config{Provider: config.ProviderGemini})
	require.NoError(t, err)
	assert.Equal(t, "gemini", gemini.Name())

	deepseek, err := NewProvider(&config.Config{Provider: config.ProviderDeepSeek})
	require.NoError(t, err)
	assert.Equal(t, "deepseek", deepseek.Name())

	_, err = NewProvider(&config.Config{Provider: "other"})
	assert.Error(t, err)
}
