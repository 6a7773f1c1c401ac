package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/kotoba/internal/config"
	"github.com/hyperjump/kotoba/internal/embedding"
	"github.com/hyperjump/kotoba/internal/models"
	"github.com/hyperjump/kotoba/internal/service"
	"github.com/hyperjump/kotoba/internal/vizstore"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	table, err := embedding.NewTable(map[string][]float64{
		"king":  {0.8, 0.2, 0.1},
		"queen": {0.7, 0.3, 0.1},
		"man":   {0.9, 0.1, 0.0},
	})
	if err != nil {
		t.Fatal(err)
	}
	vizCfg := &config.VisualizationConfig{DefaultPerplexity: 30, DefaultDims: 2, TSNESeed: 42}
	svc := service.New(table, vizstore.New(), vizCfg, zap.NewNop())
	return NewServer(svc, &config.ServerConfig{Host: "localhost", Port: 8000}, zap.NewNop())
}

func postJSON(t *testing.T, handler http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func TestHandleEmbeddings(t *testing.T) {
	router := newTestServer(t).Router()
	w := postJSON(t, router, "/api/v1/embeddings", models.EmbeddingsRequest{
		Words: []string{"king", "unicorn"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp models.EmbeddingsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Embeddings) != 1 {
		t.Errorf("embeddings = %v", resp.Embeddings)
	}
	if _, ok := resp.Embeddings["unicorn"]; ok {
		t.Error("unknown word should be omitted")
	}
}

func TestHandleEmbeddings_EmptyWords(t *testing.T) {
	router := newTestServer(t).Router()
	w := postJSON(t, router, "/api/v1/embeddings", models.EmbeddingsRequest{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleEmbeddings_BadBody(t *testing.T) {
	router := newTestServer(t).Router()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/embeddings", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleTfidf(t *testing.T) {
	router := newTestServer(t).Router()
	w := postJSON(t, router, "/api/v1/tfidf", models.TfidfRequest{
		Documents: []string{"the cat sat", "the dog sat"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp models.TfidfResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.FeatureNames) != 4 || len(resp.TfidfVectors) != 2 {
		t.Errorf("features = %v, rows = %d", resp.FeatureNames, len(resp.TfidfVectors))
	}
}

func TestHandleVisualize_RoundTrip(t *testing.T) {
	router := newTestServer(t).Router()
	w := postJSON(t, router, "/api/v1/visualizations", models.VisualizationRequest{
		Words:  []string{"king", "queen", "man"},
		Method: "pca",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var created models.Visualization
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("id missing")
	}
	if len(created.Coordinates) != 3 {
		t.Errorf("coordinates = %d, want 3", len(created.Coordinates))
	}
	for word, p := range created.Coordinates {
		if p.Dims() != 2 {
			t.Errorf("%s dims = %d", word, p.Dims())
		}
	}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/visualizations/"+created.ID, nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, r)
	if w2.Code != http.StatusOK {
		t.Fatalf("get status = %d", w2.Code)
	}
	var fetched models.Visualization
	if err := json.NewDecoder(w2.Body).Decode(&fetched); err != nil {
		t.Fatal(err)
	}
	if fetched.ID != created.ID || len(fetched.Coordinates) != 3 {
		t.Errorf("fetched visualization differs: %+v", fetched)
	}
}

func TestHandleVisualize_SingleWord(t *testing.T) {
	router := newTestServer(t).Router()
	w := postJSON(t, router, "/api/v1/visualizations", models.VisualizationRequest{
		Words:  []string{"only"},
		Method: "tsne",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleGetVisualization_NotFound(t *testing.T) {
	router := newTestServer(t).Router()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/visualizations/does-not-exist", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestHandleListAndCleanup(t *testing.T) {
	router := newTestServer(t).Router()
	for i := 0; i < 3; i++ {
		w := postJSON(t, router, "/api/v1/visualizations", models.VisualizationRequest{
			Words:  []string{"king", "queen"},
			Method: "pca",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d", w.Code)
		}
	}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/visualizations", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	var listed struct {
		IDs []string `json:"visualization_ids"`
	}
	if err := json.NewDecoder(w.Body).Decode(&listed); err != nil {
		t.Fatal(err)
	}
	if len(listed.IDs) != 3 {
		t.Errorf("ids = %v", listed.IDs)
	}

	w = postJSON(t, router, "/api/v1/visualizations/cleanup", models.CleanupRequest{MaxItems: 1})
	if w.Code != http.StatusOK {
		t.Fatalf("cleanup status = %d", w.Code)
	}
	var resp models.CleanupResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.RemainingItems != 1 {
		t.Errorf("remaining = %d, want 1", resp.RemainingItems)
	}
}

func TestHandleStatusAndHealth(t *testing.T) {
	router := newTestServer(t).Router()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var status map[string]int
	if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	if status["vocabulary_size"] != 3 || status["embedding_dimensions"] != 3 {
		t.Errorf("unexpected status: %v", status)
	}

	r = httptest.NewRequest(http.MethodGet, "/health", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("health status = %d", w.Code)
	}
}
