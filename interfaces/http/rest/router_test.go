package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"riboflavin-backend/application/services"
	"riboflavin-backend/domain/config"
	infraconfig "riboflavin-backend/infrastructure/config"
	"riboflavin-backend/infrastructure/persistence/filestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	base := t.TempDir()
	store, err := filestore.New(filepath.Join(base, "raw"), filepath.Join(base, "parsed"))
	require.NoError(t, err)

	cfg := &infraconfig.Config{
		ServerAddress: ":0",
		Environment:   "development",
		RawDataDir:    filepath.Join(base, "raw"),
		ParsedDataDir: filepath.Join(base, "parsed"),
		ViewportWidth: 1600,
		EnableCORS:    false,
	}

	service := services.NewGraphService(config.DefaultLayoutConfig(), zap.NewNop())
	server := httptest.NewServer(NewRouter(service, store, cfg, zap.NewNop()).Setup())
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealthAndBanner(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	var health map[string]string
	decodeBody(t, resp, &health)
	assert.Equal(t, "healthy", health["status"])

	resp, err = http.Get(server.URL + "/")
	require.NoError(t, err)
	var banner map[string]string
	decodeBody(t, resp, &banner)
	assert.Equal(t, "Riboflavin Backend API", banner["message"])
}

func TestSaveTextFlow(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/save-text", map[string]interface{}{
		"content": "MICHAEL BARBARO: Hello and welcome.\nBARBARO: Glad you are here.",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Message    string `json:"message"`
		RawFile    string `json:"raw_file"`
		ParsedFile string `json:"parsed_file"`
		ParsedData struct {
			Columns []struct {
				Title string `json:"title"`
				Notes []struct {
					ID string `json:"id"`
				} `json:"notes"`
			} `json:"columns"`
		} `json:"parsed_data"`
	}
	decodeBody(t, resp, &out)

	assert.Equal(t, filestore.LatestParsedName, out.ParsedFile)
	assert.True(t, strings.HasPrefix(out.RawFile, "raw_text_"))
	require.Len(t, out.ParsedData.Columns, 1)
	assert.Equal(t, "MICHAEL BARBARO", out.ParsedData.Columns[0].Title)
	assert.Len(t, out.ParsedData.Columns[0].Notes, 2)

	t.Run("latest parse is served back", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/parsed-data")
		require.NoError(t, err)
		var doc struct {
			Columns []json.RawMessage `json:"columns"`
		}
		decodeBody(t, resp, &doc)
		assert.Len(t, doc.Columns, 1)
	})

	t.Run("graph view reflects the ingest", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/graph")
		require.NoError(t, err)
		var view struct {
			Notes []json.RawMessage `json:"notes"`
			Edges []json.RawMessage `json:"edges"`
		}
		decodeBody(t, resp, &view)
		assert.Len(t, view.Notes, 2)
		assert.Len(t, view.Edges, 1)
	})
}

func TestSaveTextRejectsEmptyAndUnparseable(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/save-text", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, server.URL+"/api/save-text", map[string]interface{}{"content": "hi"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestParsedDataEmptyBeforeAnyParse(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/parsed-data")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc struct {
		Columns []json.RawMessage `json:"columns"`
		Edges   []json.RawMessage `json:"edges"`
	}
	decodeBody(t, resp, &doc)
	assert.Empty(t, doc.Columns)
	assert.Empty(t, doc.Edges)
}

func TestUploadRawFlow(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.PostForm(server.URL+"/upload-raw", url.Values{
		"text": {"MICHAEL BARBARO: Hello out there."},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]string
	decodeBody(t, resp, &out)
	require.True(t, strings.HasSuffix(out["parsed_filename"], ".json"))

	t.Run("parsed entries are retrievable", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/parsed/" + out["parsed_filename"])
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var entries []struct {
			Speaker string `json:"speaker"`
			Text    string `json:"text"`
		}
		decodeBody(t, resp, &entries)
		require.Len(t, entries, 1)
		assert.Equal(t, "MICHAEL BARBARO", entries[0].Speaker)
	})

	t.Run("missing file yields 404", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/parsed/nope.json")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "File not found", body["error"])
	})
}

func TestGraphMutationEndpoints(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/save-text", map[string]interface{}{
		"content": "MICHAEL BARBARO: Hello and welcome back.",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var view struct {
		Columns []struct {
			ID string `json:"id"`
		} `json:"columns"`
	}
	getResp, err := http.Get(server.URL + "/api/graph")
	require.NoError(t, err)
	decodeBody(t, getResp, &view)
	require.NotEmpty(t, view.Columns)
	columnID := view.Columns[0].ID

	t.Run("create note", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/api/graph/notes", map[string]string{"columnId": columnID})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var out map[string]string
		decodeBody(t, resp, &out)
		assert.Equal(t, "note-2", out["id"])
	})

	t.Run("create note in unknown column is 404", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/api/graph/notes", map[string]string{"columnId": "column-99"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("update note", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"content": "edited"})
		req, err := http.NewRequest(http.MethodPut, server.URL+"/api/graph/notes/note-2", bytes.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("connect notes", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/api/graph/edges", map[string]string{
			"source": "note-1",
			"target": "note-2",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var out map[string]string
		decodeBody(t, resp, &out)
		assert.Equal(t, "edge-note-1-note-2", out["id"])
	})

	t.Run("annotate note", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/api/graph/annotations", map[string]string{
			"content":  "worth a second listen",
			"sourceId": "note-1",
			"edgeType": "yes",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var out map[string]string
		decodeBody(t, resp, &out)
		assert.NotEmpty(t, out["id"])
		assert.Equal(t, "yes", out["lastEdgeType"])
	})

	t.Run("annotation with bad edge type is rejected", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/api/graph/annotations", map[string]string{
			"content":  "x",
			"sourceId": "note-1",
			"edgeType": "zigzag",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("scroll bounds", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/api/graph/scroll-bounds", map[string]float64{"visibleHeight": 300})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var bounds struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		}
		decodeBody(t, resp, &bounds)
		assert.Less(t, bounds.Min, bounds.Max)
	})

	t.Run("delete note", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/graph/notes/note-2", nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestParseParagraphEndpoint(t *testing.T) {
	server := newTestServer(t)

	content := "michael barbaro\nWelcome to the show today.\n\njane doe\nThanks for having me."
	resp := postJSON(t, server.URL+"/api/parse-paragraph-transcript", map[string]interface{}{
		"content":    content,
		"randomized": true,
		"seed":       42,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Message string `json:"message"`
		Data    struct {
			Columns []struct {
				Title string `json:"title"`
			} `json:"columns"`
			Edges []struct {
				Type string `json:"type"`
			} `json:"edges"`
		} `json:"data"`
	}
	decodeBody(t, resp, &out)

	require.Len(t, out.Data.Columns, 3)
	assert.Equal(t, "Michael Barbaro", out.Data.Columns[0].Title)
	assert.Equal(t, "Jane Doe", out.Data.Columns[1].Title)
	assert.Empty(t, out.Data.Columns[2].Title)
	require.Len(t, out.Data.Edges, 1)
	assert.Contains(t, []string{"smoothstep", "ellipsis", "yes", "no"}, out.Data.Edges[0].Type)
}
