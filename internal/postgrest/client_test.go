package postgrest_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atelierhq/atelier/internal/postgrest"
	"github.com/atelierhq/atelier/internal/rowstore"
)

type capturedRequest struct {
	method string
	path   string
	query  map[string]string
	header http.Header
	body   []byte
}

func newTestClient(t *testing.T, status int, responseBody string) (*postgrest.Client, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.query = map[string]string{}
		for k, v := range r.URL.Query() {
			captured.query[k] = v[0]
		}
		captured.header = r.Header.Clone()
		captured.body, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
		w.Write([]byte(responseBody))
	}))
	t.Cleanup(server.Close)
	return postgrest.New(server.URL, "secret-key"), captured
}

func TestSelectBuildsQueryAndAuth(t *testing.T) {
	ctx := context.Background()
	c, captured := newTestClient(t, http.StatusOK, `[{"id":"c1","name":"Asep"}]`)

	rows, err := c.Select(ctx, "clients", rowstore.SelectOptions{
		Filter:     map[string]any{"status": "Aktif"},
		OrderBy:    "created_at",
		Descending: true,
		Limit:      5,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Asep", rows[0]["name"])

	require.Equal(t, http.MethodGet, captured.method)
	require.Equal(t, "/clients", captured.path)
	require.Equal(t, "*", captured.query["select"])
	require.Equal(t, "eq.Aktif", captured.query["status"])
	require.Equal(t, "created_at.desc", captured.query["order"])
	require.Equal(t, "5", captured.query["limit"])
	require.Equal(t, "secret-key", captured.header.Get("apikey"))
	require.Equal(t, "Bearer secret-key", captured.header.Get("Authorization"))
}

func TestSelectWithEmbedRetypesChildren(t *testing.T) {
	ctx := context.Background()
	c, captured := newTestClient(t, http.StatusOK,
		`[{"id":"p1","project_name":"Wedding A","revisions":[{"id":"r1","project_id":"p1"}]}]`)

	rows, err := c.Select(ctx, "projects", rowstore.SelectOptions{
		Embeds: []rowstore.Embed{{Table: "revisions", ForeignKey: "project_id"}},
	})
	require.NoError(t, err)
	require.Equal(t, "*,revisions(*)", captured.query["select"])

	children, ok := rows[0]["revisions"].([]rowstore.Row)
	require.True(t, ok)
	require.Len(t, children, 1)
	require.Equal(t, "r1", children[0]["id"])
}

func TestInsertWantsRepresentation(t *testing.T) {
	ctx := context.Background()
	c, captured := newTestClient(t, http.StatusCreated, `[{"id":"c9","name":"Bina"}]`)

	row, err := c.Insert(ctx, "clients", rowstore.Row{"name": "Bina"})
	require.NoError(t, err)
	require.Equal(t, "c9", row["id"])

	require.Equal(t, http.MethodPost, captured.method)
	require.Equal(t, "return=representation", captured.header.Get("Prefer"))
	require.Equal(t, "application/json", captured.header.Get("Content-Type"))

	var sent map[string]any
	require.NoError(t, json.Unmarshal(captured.body, &sent))
	require.Equal(t, "Bina", sent["name"])
}

func TestUpdateTargetsIDAndDetectsMissing(t *testing.T) {
	ctx := context.Background()
	c, captured := newTestClient(t, http.StatusOK, `[]`)

	_, err := c.Update(ctx, "clients", "c1", rowstore.Row{"name": "X"})
	require.ErrorIs(t, err, rowstore.ErrNotFound)

	require.Equal(t, http.MethodPatch, captured.method)
	require.Equal(t, "eq.c1", captured.query["id"])
}

func TestUpdateEchoesRow(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t, http.StatusOK, `[{"id":"c1","name":"Asep Surasep"}]`)

	row, err := c.Update(ctx, "clients", "c1", rowstore.Row{"name": "Asep Surasep"})
	require.NoError(t, err)
	require.Equal(t, "Asep Surasep", row["name"])
}

func TestUpsertMergesDuplicates(t *testing.T) {
	ctx := context.Background()
	c, captured := newTestClient(t, http.StatusOK, `[{"id":"pr1","company_name":"Atelier"}]`)

	row, err := c.Upsert(ctx, "profile", rowstore.Row{"company_name": "Atelier"})
	require.NoError(t, err)
	require.Equal(t, "pr1", row["id"])

	require.Equal(t, http.MethodPost, captured.method)
	require.Equal(t, "resolution=merge-duplicates,return=representation", captured.header.Get("Prefer"))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	c, captured := newTestClient(t, http.StatusNoContent, ``)

	require.NoError(t, c.Delete(ctx, "clients", "c1"))
	require.Equal(t, http.MethodDelete, captured.method)
	require.Equal(t, "eq.c1", captured.query["id"])
}

func TestErrorStatusSurfacesBody(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t, http.StatusBadRequest, `{"message":"bad filter"}`)

	_, err := c.Select(ctx, "clients", rowstore.SelectOptions{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "400")
	require.Contains(t, err.Error(), "bad filter")
}
