package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/obriclabs/corpgraph/internal/graph"
	"github.com/obriclabs/corpgraph/internal/platform/logger"
	"github.com/obriclabs/corpgraph/internal/platform/neo4jdb"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func statusFor(t *testing.T, err error) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, testLogger(t), err)
	return w.Code
}

func TestRespondErrorMapping(t *testing.T) {
	if got := statusFor(t, &graph.InvalidArgumentError{Reason: "bad"}); got != http.StatusBadRequest {
		t.Fatalf("invalid argument status = %d", got)
	}
	if got := statusFor(t, &neo4jdb.ConnectionError{URI: "bolt://db:7687", Err: errors.New("refused")}); got != http.StatusServiceUnavailable {
		t.Fatalf("connection error status = %d", got)
	}
	if got := statusFor(t, errors.New("boom")); got != http.StatusInternalServerError {
		t.Fatalf("unknown error status = %d", got)
	}
}

type stubEmbedder struct{}

func (stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{0.1, 0.2}, nil
}

func newTestEntityHandler(t *testing.T) *EntityHandler {
	t.Helper()
	log := testLogger(t)
	client, err := neo4jdb.New(neo4jdb.Config{URI: "bolt://db:7687"}, log)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return NewEntityHandler(graph.NewEntityEngine(client, log), stubEmbedder{}, log)
}

func TestFindEntityRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestEntityHandler(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/tools/find_entity", strings.NewReader("{not json"))
	h.FindEntity(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestFindEntityRejectsEmptyHints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestEntityHandler(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/tools/find_entity", strings.NewReader("{}"))
	h.FindEntity(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestSearchEntitiesBySemanticsRejectsBlankQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestEntityHandler(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/tools/search_entities_semantic", strings.NewReader(`{"query":"   "}`))
	h.SearchEntitiesBySemantics(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("whitespace-only query must fail before embedding, status = %d", w.Code)
	}
}

func TestFindEntityUnconnectedStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestEntityHandler(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/tools/find_entity", strings.NewReader(`{"ticker":"LMT"}`))
	h.FindEntity(c)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", w.Code)
	}
}
