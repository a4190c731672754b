package graph

import (
	"math"
	"strings"
	"testing"
)

func TestBuildFindEntityByID(t *testing.T) {
	cypher, params, err := buildFindEntity(EntityRef{ID: "abc"}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(cypher, "LIMIT 1") {
		t.Fatalf("id lookup must be capped at one row: %q", cypher)
	}
	if _, ok := params["limit"]; ok {
		t.Fatalf("limit must not be bound on the id branch")
	}
}

func TestBuildFindEntityDefaultLimit(t *testing.T) {
	_, params, err := buildFindEntity(EntityRef{Ticker: "LMT"}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params["limit"] != defaultLimit {
		t.Fatalf("limit = %v, want %d", params["limit"], defaultLimit)
	}
}

func TestBuildSearchEntitiesEmptyQuery(t *testing.T) {
	_, _, err := buildSearchEntities("   ", 10)
	if !IsInvalidArgument(err) {
		t.Fatalf("want InvalidArgumentError, got %v", err)
	}
}

func TestBuildSearchEntitiesFields(t *testing.T) {
	cypher, params, err := buildSearchEntities("lockheed", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, field := range []string{"n.ticker", "n.entity_type", "n.short_name", "n.legal_name"} {
		if !strings.Contains(cypher, field) {
			t.Fatalf("search must cover %s: %q", field, cypher)
		}
	}
	if params["query"] != "lockheed" || params["limit"] != 10 {
		t.Fatalf("params = %v", params)
	}
}

func TestRelationshipEntityCollect(t *testing.T) {
	if got := relationshipEntityCollect(DirectionOutbound); got != "WITH [src1, src2] AS entities" {
		t.Fatalf("outbound collect = %q", got)
	}
	if got := relationshipEntityCollect(DirectionInbound); got != "WITH [dst1, dst2] AS entities" {
		t.Fatalf("inbound collect = %q", got)
	}
	if got := relationshipEntityCollect(DirectionBoth); got != "WITH [src1, dst1, src2, dst2] AS entities" {
		t.Fatalf("both collect = %q", got)
	}
}

func TestBuildFindEntitiesByRelationshipText(t *testing.T) {
	cypher, params, err := buildFindEntitiesByRelationshipText("missile", DirectionOutbound, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(cypher, "toLower(rd.description) CONTAINS toLower($query)") {
		t.Fatalf("description filter missing: %q", cypher)
	}
	if !strings.Contains(cypher, "toLower(rd.relationship_type) CONTAINS toLower($query)") {
		t.Fatalf("relationship_type filter missing: %q", cypher)
	}
	if !strings.Contains(cypher, "WITH [src1, src2] AS entities") {
		t.Fatalf("outbound side selection missing: %q", cypher)
	}
	if params["limit"] != defaultLimit {
		t.Fatalf("limit = %v", params["limit"])
	}
}

func TestBuildFindEntitiesByRelationshipTextRejects(t *testing.T) {
	if _, _, err := buildFindEntitiesByRelationshipText("", DirectionBoth, 0); !IsInvalidArgument(err) {
		t.Fatalf("empty query: want InvalidArgumentError, got %v", err)
	}
	if _, _, err := buildFindEntitiesByRelationshipText("x", Direction("up"), 0); !IsInvalidArgument(err) {
		t.Fatalf("bad direction: want InvalidArgumentError, got %v", err)
	}
}

func TestBuildFindEntitiesByRelationshipEmbedding(t *testing.T) {
	cypher, params, err := buildFindEntitiesByRelationshipEmbedding([]float32{0.1, 0.2}, 0.7, DirectionBoth, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(cypher, "gds.similarity.cosine(rd.embedding, $embedding) AS similarity") {
		t.Fatalf("cosine similarity missing: %q", cypher)
	}
	if !strings.Contains(cypher, "similarity >= $threshold") {
		t.Fatalf("threshold must be inclusive: %q", cypher)
	}
	vector, ok := params["embedding"].([]float64)
	if !ok || len(vector) != 2 {
		t.Fatalf("embedding must be bound as []float64, got %T", params["embedding"])
	}
	if params["threshold"] != 0.7 {
		t.Fatalf("threshold = %v", params["threshold"])
	}
}

func TestBuildFindEntitiesByRelationshipEmbeddingRejects(t *testing.T) {
	if _, _, err := buildFindEntitiesByRelationshipEmbedding(nil, 0.7, DirectionBoth, 0); !IsInvalidArgument(err) {
		t.Fatalf("empty vector: want InvalidArgumentError, got %v", err)
	}
	nan := float32(math.NaN())
	if _, _, err := buildFindEntitiesByRelationshipEmbedding([]float32{0.1, nan}, 0.7, DirectionBoth, 0); !IsInvalidArgument(err) {
		t.Fatalf("NaN element: want InvalidArgumentError, got %v", err)
	}
	if _, _, err := buildFindEntitiesByRelationshipEmbedding([]float32{0.1}, math.Inf(1), DirectionBoth, 0); !IsInvalidArgument(err) {
		t.Fatalf("infinite threshold: want InvalidArgumentError, got %v", err)
	}
}

func TestClampLimit(t *testing.T) {
	if clampLimit(-1) != defaultLimit || clampLimit(0) != defaultLimit {
		t.Fatalf("non-positive limits must fall back to the default")
	}
	if clampLimit(7) != 7 {
		t.Fatalf("positive limits pass through")
	}
}
