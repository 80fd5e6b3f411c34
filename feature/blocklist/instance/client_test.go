package instance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fediblock-sync/feature/blocklist/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	c := NewClient("eg.example", "secret-token")
	c.SetBaseURL(serverURL)
	return c
}

func TestFetchBlocks_SinglePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, apiPath, r.URL.Path)

		json.NewEncoder(w).Encode([]map[string]any{
			{
				"id": "42", "domain": "bad.example", "severity": "silence",
				"public_comment": "spam", "reject_media": true, "reject_reports": true, "obfuscate": false,
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	blocks, err := client.FetchBlocks(context.Background())
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	e := blocks["bad.example"]
	assert.Equal(t, "42", e.RemoteID)
	assert.Equal(t, models.SeveritySilence, e.Severity)
	assert.Equal(t, "spam", e.PublicComment)
	assert.True(t, *e.RejectMedia)
	assert.True(t, *e.RejectReports)
	assert.False(t, *e.Obfuscate)
}

func TestFetchBlocks_FollowsPagination(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("max_id") == "" {
			next := server.URL + apiPath + "?max_id=1"
			prev := server.URL + apiPath + "?min_id=1"
			w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="next", <%s>; rel="prev"`, next, prev))
			json.NewEncoder(w).Encode([]map[string]any{
				{"id": "1", "domain": "one.example", "severity": "suspend"},
			})
			return
		}
		// Second page: no further Link header, pagination ends.
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "2", "domain": "two.example", "severity": "noop"},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	blocks, err := client.FetchBlocks(context.Background())
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "1", blocks["one.example"].RemoteID)
	assert.Equal(t, "2", blocks["two.example"].RemoteID)
}

func TestFetchBlocks_MalformedLinkEndsPagination(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Link", "something unexpected entirely")
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "1", "domain": "one.example", "severity": "silence"},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	blocks, err := client.FetchBlocks(context.Background())
	require.NoError(t, err)
	assert.Len(t, blocks, 1)
	assert.Equal(t, 1, calls)
}

func TestFetchBlocks_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("This action is not allowed"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchBlocks(context.Background())

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusForbidden, fetchErr.StatusCode)
	assert.Equal(t, "This action is not allowed", fetchErr.Body)
	assert.Equal(t, "eg.example", fetchErr.Host)
}

func TestFetchBlocks_UnknownSeverityIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "1", "domain": "one.example", "severity": "obliterate"},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchBlocks(context.Background())

	var unknown *models.UnknownSeverityError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "obliterate", unknown.Value)
}

func TestCreateBlock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, apiPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "bad.example", body["domain"])
		assert.Equal(t, "suspend", body["severity"])
		assert.Equal(t, true, body["reject_media"])
		assert.NotContains(t, body, "id")

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.CreateBlock(context.Background(), models.BlockEntry{
		Domain:      "bad.example",
		Severity:    models.SeveritySuspend,
		RejectMedia: models.Bool(true),
	})
	assert.NoError(t, err)
}

func TestUpdateBlock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, apiPath+"/42", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// The id addresses the record via the URL, never the payload.
		assert.NotContains(t, body, "id")

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.UpdateBlock(context.Background(), models.BlockEntry{
		Domain:   "bad.example",
		Severity: models.SeveritySuspend,
		RemoteID: "42",
	})
	assert.NoError(t, err)
}

func TestUpdateBlock_RequiresRemoteID(t *testing.T) {
	client := NewClient("eg.example", "tok")
	err := client.UpdateBlock(context.Background(), models.BlockEntry{Domain: "bad.example"})
	assert.Error(t, err)
}

func TestWriteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte("Validation failed"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.CreateBlock(context.Background(), models.BlockEntry{Domain: "bad.example"})

	var writeErr *WriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, http.StatusUnprocessableEntity, writeErr.StatusCode)
	assert.Equal(t, "Validation failed", writeErr.Body)
}

func TestDeleteBlock(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, apiPath+"/42", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		deleted, err := client.DeleteBlock(context.Background(), "42")
		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("already absent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		deleted, err := client.DeleteBlock(context.Background(), "42")
		assert.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.DeleteBlock(context.Background(), "42")
		var writeErr *WriteError
		assert.True(t, errors.As(err, &writeErr))
	})
}
