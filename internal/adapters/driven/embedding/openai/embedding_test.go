package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbeddingService(t *testing.T) {
	t.Run("requires API key", func(t *testing.T) {
		_, err := NewEmbeddingService(Config{})
		assert.ErrorContains(t, err, "API key")
	})

	t.Run("defaults", func(t *testing.T) {
		svc, err := NewEmbeddingService(Config{APIKey: "sk-test"})
		require.NoError(t, err)
		assert.Equal(t, DefaultModel, svc.ModelName())
		assert.Equal(t, 1536, svc.Dimensions())
	})

	t.Run("known model dimensions", func(t *testing.T) {
		svc, err := NewEmbeddingService(Config{APIKey: "sk-test", Model: "text-embedding-3-large"})
		require.NoError(t, err)
		assert.Equal(t, 3072, svc.Dimensions())
	})
}

func TestEmbeddingService_EmbedBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("places embeddings by index", func(t *testing.T) {
		var gotReq embedRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/embeddings", r.URL.Path)
			assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

			// Out of order on purpose.
			json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{
					{"embedding": []float64{2}, "index": 1},
					{"embedding": []float64{1}, "index": 0},
				},
			})
		}))
		defer server.Close()

		svc, err := NewEmbeddingService(Config{APIKey: "sk-test", BaseURL: server.URL})
		require.NoError(t, err)

		embeddings, err := svc.EmbedBatch(ctx, []string{"first", "second"})

		require.NoError(t, err)
		require.Len(t, embeddings, 2)
		assert.Equal(t, []float32{1}, embeddings[0])
		assert.Equal(t, []float32{2}, embeddings[1])
		assert.Equal(t, []string{"first", "second"}, gotReq.Input)
		assert.Equal(t, 1536, gotReq.Dimensions)
	})

	t.Run("API error message surfaces", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "Incorrect API key provided"},
			})
		}))
		defer server.Close()

		svc, err := NewEmbeddingService(Config{APIKey: "sk-bad", BaseURL: server.URL})
		require.NoError(t, err)

		_, err = svc.EmbedBatch(ctx, []string{"text"})
		assert.ErrorContains(t, err, "Incorrect API key")
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		svc, err := NewEmbeddingService(Config{APIKey: "sk-test", BaseURL: "http://127.0.0.1:1"})
		require.NoError(t, err)

		embeddings, err := svc.EmbedBatch(ctx, nil)
		require.NoError(t, err)
		assert.Nil(t, embeddings)
	})
}

func TestEmbeddingService_Embed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float64{0.5, 0.5}, "index": 0}},
		})
	}))
	defer server.Close()

	svc, err := NewEmbeddingService(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	embedding, err := svc.Embed(context.Background(), "text")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.5}, embedding)
}

func TestEmbeddingService_Ping(t *testing.T) {
	t.Run("valid key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/models", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		svc, err := NewEmbeddingService(Config{APIKey: "sk-test", BaseURL: server.URL})
		require.NoError(t, err)
		assert.NoError(t, svc.Ping(context.Background()))
	})

	t.Run("rejected key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		}))
		defer server.Close()

		svc, err := NewEmbeddingService(Config{APIKey: "sk-bad", BaseURL: server.URL})
		require.NoError(t, err)
		assert.Error(t, svc.Ping(context.Background()))
	})
}
