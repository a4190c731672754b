package graph

import (
	"context"
	"math"

	"github.com/obriclabs/corpgraph/internal/platform/logger"
	"github.com/obriclabs/corpgraph/internal/platform/neo4jdb"
)

const defaultLimit = 250

// EntityEngine answers entity lookup, free-text search, and
// relationship-driven entity discovery.
type EntityEngine struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewEntityEngine(client *neo4jdb.Client, log *logger.Logger) *EntityEngine {
	return &EntityEngine{
		client: client,
		log:    log.With("engine", "Entity"),
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}

func buildFindEntity(ref EntityRef, limit int) (string, map[string]any, error) {
	match, err := ref.Match("n")
	if err != nil {
		return "", nil, err
	}
	// An id identifies at most one node; limit is ignored on that branch.
	if ref.ByID() {
		cypher := match.Clause + "\nRETURN n AS node\nLIMIT 1"
		return cypher, match.Params, nil
	}
	match.Params["limit"] = clampLimit(limit)
	cypher := match.Clause + "\nRETURN n AS node\nLIMIT $limit"
	return cypher, match.Params, nil
}

// FindEntity resolves the hints and returns matching entities as flat
// property maps. Order is store-default; nothing here sorts.
func (e *EntityEngine) FindEntity(ctx context.Context, ref EntityRef, limit int) ([]map[string]any, error) {
	cypher, params, err := buildFindEntity(ref, limit)
	if err != nil {
		return nil, err
	}
	records, err := runRows(ctx, e.client, cypher, params)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(records))
	for _, record := range records {
		props, err := recordNodeProps(record, "node")
		if err != nil {
			return nil, err
		}
		out = append(out, props)
	}
	e.log.Debug("find entity", "matched_by_id", ref.ByID(), "result_count", len(out))
	return out, nil
}

func buildSearchEntities(query string, limit int) (string, map[string]any, error) {
	query = norm(query)
	if query == "" {
		return "", nil, invalidArgf("query must be a non-empty string")
	}
	cypher := `
MATCH (n:Entity)
WHERE toLower(n.ticker) CONTAINS toLower($query)
   OR toLower(n.entity_type) CONTAINS toLower($query)
   OR toLower(n.short_name) CONTAINS toLower($query)
   OR toLower(n.legal_name) CONTAINS toLower($query)
RETURN n AS node
LIMIT $limit`
	return cypher, map[string]any{"query": query, "limit": clampLimit(limit)}, nil
}

// SearchEntities matches the query string against ticker, entity_type,
// short_name and legal_name, case-insensitively.
func (e *EntityEngine) SearchEntities(ctx context.Context, query string, limit int) ([]map[string]any, error) {
	cypher, params, err := buildSearchEntities(query, limit)
	if err != nil {
		return nil, err
	}
	records, err := runRows(ctx, e.client, cypher, params)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(records))
	for _, record := range records {
		props, err := recordNodeProps(record, "node")
		if err != nil {
			return nil, err
		}
		out = append(out, props)
	}
	return out, nil
}

// The underlying pattern is matched in both orientations because a
// RelationshipDetail's source side is only knowable from edge direction.
func relationshipEntityCollect(direction Direction) string {
	switch direction {
	case DirectionOutbound:
		return "WITH [src1, src2] AS entities"
	case DirectionInbound:
		return "WITH [dst1, dst2] AS entities"
	default:
		return "WITH [src1, dst1, src2, dst2] AS entities"
	}
}

func buildFindEntitiesByRelationshipText(query string, direction Direction, limit int) (string, map[string]any, error) {
	query = norm(query)
	if query == "" {
		return "", nil, invalidArgf("query must be a non-empty string")
	}
	if err := direction.validate(); err != nil {
		return "", nil, err
	}
	cypher := `
MATCH (rd:RelationshipDetail)
WHERE (rd.description IS NOT NULL AND toLower(rd.description) CONTAINS toLower($query))
   OR (rd.relationship_type IS NOT NULL AND toLower(rd.relationship_type) CONTAINS toLower($query))
OPTIONAL MATCH (src1:Entity)-[]->(rd)-[]->(dst1:Entity)
OPTIONAL MATCH (dst2:Entity)<-[]-(rd)<-[]-(src2:Entity)
` + relationshipEntityCollect(direction) + `
UNWIND entities AS entity
WITH entity WHERE entity IS NOT NULL
RETURN DISTINCT entity
LIMIT $limit`
	return cypher, map[string]any{"query": query, "limit": clampLimit(limit)}, nil
}

// FindEntitiesByRelationshipText finds entities attached to any
// RelationshipDetail whose description or type contains the query,
// optionally keeping only the source or destination side.
func (e *EntityEngine) FindEntitiesByRelationshipText(ctx context.Context, query string, direction Direction, limit int) ([]map[string]any, error) {
	cypher, params, err := buildFindEntitiesByRelationshipText(query, direction, limit)
	if err != nil {
		return nil, err
	}
	return e.collectEntities(ctx, cypher, params)
}

func buildFindEntitiesByRelationshipEmbedding(embedding []float32, threshold float64, direction Direction, limit int) (string, map[string]any, error) {
	if len(embedding) == 0 {
		return "", nil, invalidArgf("embedding must be a non-empty vector")
	}
	for i, v := range embedding {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return "", nil, invalidArgf("embedding contains a non-finite value at index %d", i)
		}
	}
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return "", nil, invalidArgf("threshold must be a finite number")
	}
	if err := direction.validate(); err != nil {
		return "", nil, err
	}

	vector := make([]float64, len(embedding))
	for i, v := range embedding {
		vector[i] = float64(v)
	}
	cypher := `
MATCH (rd:RelationshipDetail)
WHERE rd.embedding IS NOT NULL
WITH rd, gds.similarity.cosine(rd.embedding, $embedding) AS similarity
WHERE similarity >= $threshold
OPTIONAL MATCH (src1:Entity)-[]->(rd)-[]->(dst1:Entity)
OPTIONAL MATCH (dst2:Entity)<-[]-(rd)<-[]-(src2:Entity)
` + relationshipEntityCollect(direction) + `
UNWIND entities AS entity
WITH entity WHERE entity IS NOT NULL
RETURN DISTINCT entity
LIMIT $limit`
	params := map[string]any{
		"embedding": vector,
		"threshold": threshold,
		"limit":     clampLimit(limit),
	}
	return cypher, params, nil
}

// FindEntitiesByRelationshipEmbedding selects RelationshipDetails by
// cosine similarity against their stored embedding (inclusive threshold)
// and returns the attached entities.
func (e *EntityEngine) FindEntitiesByRelationshipEmbedding(ctx context.Context, embedding []float32, threshold float64, direction Direction, limit int) ([]map[string]any, error) {
	cypher, params, err := buildFindEntitiesByRelationshipEmbedding(embedding, threshold, direction, limit)
	if err != nil {
		return nil, err
	}
	return e.collectEntities(ctx, cypher, params)
}

func (e *EntityEngine) collectEntities(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	records, err := runRows(ctx, e.client, cypher, params)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(records))
	for _, record := range records {
		props, err := recordNodeProps(record, "entity")
		if err != nil {
			return nil, err
		}
		if props == nil {
			continue
		}
		out = append(out, props)
	}
	return out, nil
}
