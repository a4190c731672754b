package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/obriclabs/corpgraph/internal/platform/logger"
	"github.com/obriclabs/corpgraph/internal/platform/neo4jdb"
)

// PathSegment is one hop of an enumerated path. From is always the side
// closer to the first entity, regardless of the traversal direction.
type PathSegment struct {
	From               map[string]any `json:"from"`
	RelationshipDetail map[string]any `json:"relationship_detail"`
	To                 map[string]any `json:"to"`
}

// PathEngine computes directed and undirected path existence and full
// path enumeration between two resolved entities.
type PathEngine struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewPathEngine(client *neo4jdb.Client, log *logger.Logger) *PathEngine {
	return &PathEngine{
		client: client,
		log:    log.With("engine", "Path"),
	}
}

func pathRelPattern(direction Direction, maxTier int) string {
	hops := tierToRawHops(maxTier)
	switch direction {
	case DirectionOutbound:
		return fmt.Sprintf("-[*1..%d]->", hops)
	case DirectionInbound:
		return fmt.Sprintf("<-[*1..%d]-", hops)
	default:
		return fmt.Sprintf("-[*1..%d]-", hops)
	}
}

func buildPathExists(ref1, ref2 EntityRef, direction Direction, maxTier int) (string, map[string]any, error) {
	if err := direction.validateStrict(); err != nil {
		return "", nil, err
	}
	if maxTier < 1 {
		return "", nil, invalidArgf("max_tier must be >= 1, got %d", maxTier)
	}
	m1, m2, params, err := mergeTwoEntityMatch(ref1, ref2)
	if err != nil {
		return "", nil, err
	}
	cypher := fmt.Sprintf(`
%s
WITH DISTINCT e1
%s
WITH DISTINCT e1, e2
MATCH path = (e1)%s(e2)
WHERE %s
  AND %s
RETURN count(path) > 0 AS has_path`,
		m1.Clause, m2.Clause, pathRelPattern(direction, maxTier), simplePathPredicate, alternationPredicate)
	return cypher, params, nil
}

// PathExists reports whether at least one simple alternating path of at
// most maxTier entity hops connects the two entities in the given
// direction. Outbound existence A to B says nothing about B to A.
func (e *PathEngine) PathExists(ctx context.Context, ref1, ref2 EntityRef, direction Direction, maxTier int) (bool, error) {
	cypher, params, err := buildPathExists(ref1, ref2, direction, maxTier)
	if err != nil {
		return false, err
	}
	records, err := runRows(ctx, e.client, cypher, params)
	if err != nil {
		return false, err
	}
	if len(records) == 0 {
		return false, nil
	}
	value, ok := records[0].Get("has_path")
	if !ok {
		return false, nil
	}
	hasPath, _ := value.(bool)
	return hasPath, nil
}

func buildEnumeratePaths(ref1, ref2 EntityRef, direction Direction, maxTier int) (string, map[string]any, error) {
	if err := direction.validateStrict(); err != nil {
		return "", nil, err
	}
	if maxTier < 1 {
		return "", nil, invalidArgf("max_tier must be >= 1, got %d", maxTier)
	}
	m1, m2, params, err := mergeTwoEntityMatch(ref1, ref2)
	if err != nil {
		return "", nil, err
	}
	cypher := fmt.Sprintf(`
%s
WITH DISTINCT e1
%s
WITH DISTINCT e1, e2
MATCH path = (e1)%s(e2)
WHERE %s
  AND %s
WITH [n IN nodes(path) WHERE 'Entity' IN labels(n)] AS entity_path
RETURN entity_path AS path`,
		m1.Clause, m2.Clause, pathRelPattern(direction, maxTier), simplePathPredicate, alternationPredicate)
	return cypher, params, nil
}

// EnumeratePaths returns every distinct simple alternating path between
// the two entities, reduced to the ordered Entity nodes. nodes(path)
// follows pattern order, entity1 first, for both directions, so the
// first element is always entity1 and the last entity2.
func (e *PathEngine) EnumeratePaths(ctx context.Context, ref1, ref2 EntityRef, direction Direction, maxTier int) ([][]map[string]any, error) {
	cypher, params, err := buildEnumeratePaths(ref1, ref2, direction, maxTier)
	if err != nil {
		return nil, err
	}
	records, err := runRows(ctx, e.client, cypher, params)
	if err != nil {
		return nil, err
	}
	paths, err := decodeEntityPaths(records)
	if err != nil {
		return nil, err
	}
	e.log.Debug("enumerate paths", "direction", string(direction), "max_tier", maxTier, "path_count", len(paths))
	return paths, nil
}

func buildEnumeratePathsWithRelationships(ref1, ref2 EntityRef, direction Direction, maxTier int) (string, map[string]any, error) {
	if err := direction.validateStrict(); err != nil {
		return "", nil, err
	}
	if maxTier < 1 {
		return "", nil, invalidArgf("max_tier must be >= 1, got %d", maxTier)
	}
	m1, m2, params, err := mergeTwoEntityMatch(ref1, ref2)
	if err != nil {
		return "", nil, err
	}

	// nodes(path) is in pattern order for both directions, so ns[i] is
	// always the entity1 side of the hop: from/to never swap.
	cypher := fmt.Sprintf(`
%s
WITH DISTINCT e1
%s
WITH DISTINCT e1, e2
MATCH path = (e1)%s(e2)
WHERE %s
  AND %s
WITH nodes(path) AS ns
WITH [i IN range(0, size(ns) - 3, 2) |
      {
        from: ns[i],
        relationship_detail: {id: ns[i + 1].id, description: ns[i + 1].description, relationship_type: ns[i + 1].relationship_type, source_url: ns[i + 1].source_url, created_at: ns[i + 1].created_at},
        to: ns[i + 2]
      }] AS segments
RETURN segments AS path`,
		m1.Clause, m2.Clause, pathRelPattern(direction, maxTier), simplePathPredicate, alternationPredicate)
	return cypher, params, nil
}

// EnumeratePathsWithRelationships is EnumeratePaths with the hop payload
// kept: each path is an ordered list of {from, relationship_detail, to}
// segments. The embedding vector is never projected.
func (e *PathEngine) EnumeratePathsWithRelationships(ctx context.Context, ref1, ref2 EntityRef, direction Direction, maxTier int) ([][]PathSegment, error) {
	cypher, params, err := buildEnumeratePathsWithRelationships(ref1, ref2, direction, maxTier)
	if err != nil {
		return nil, err
	}
	records, err := runRows(ctx, e.client, cypher, params)
	if err != nil {
		return nil, err
	}
	paths := make([][]PathSegment, 0, len(records))
	for _, record := range records {
		value, ok := record.Get("path")
		if !ok {
			continue
		}
		segments, err := decodeSegments(value)
		if err != nil {
			return nil, err
		}
		paths = append(paths, segments)
	}
	return paths, nil
}

func buildFindPathsBetween(ref1, ref2 EntityRef, direction Direction, maxTier, maxPaths int) (string, map[string]any, error) {
	if err := direction.validate(); err != nil {
		return "", nil, err
	}
	if maxTier < 1 {
		return "", nil, invalidArgf("max_tier must be >= 1, got %d", maxTier)
	}
	if maxPaths < 1 {
		return "", nil, invalidArgf("max_paths must be >= 1, got %d", maxPaths)
	}
	m1, m2, params, err := mergeTwoEntityMatch(ref1, ref2)
	if err != nil {
		return "", nil, err
	}
	params["max_paths"] = maxPaths
	// The cap is applied at the store so an explosive neighbourhood
	// cannot be fully enumerated before limiting.
	cypher := fmt.Sprintf(`
%s
WITH DISTINCT e1
%s
WITH DISTINCT e1, e2
MATCH path = (e1)%s(e2)
WHERE %s
  AND %s
WITH [n IN nodes(path) WHERE 'Entity' IN labels(n)] AS entity_path
RETURN entity_path AS path
LIMIT $max_paths`,
		m1.Clause, m2.Clause, pathRelPattern(direction, maxTier), simplePathPredicate, alternationPredicate)
	return cypher, params, nil
}

// FindPathsBetween generalizes EnumeratePaths to an unordered search when
// direction is DirectionBoth, with a hard store-level cap on the number
// of returned paths.
func (e *PathEngine) FindPathsBetween(ctx context.Context, ref1, ref2 EntityRef, direction Direction, maxTier, maxPaths int) ([][]map[string]any, error) {
	cypher, params, err := buildFindPathsBetween(ref1, ref2, direction, maxTier, maxPaths)
	if err != nil {
		return nil, err
	}
	records, err := runRows(ctx, e.client, cypher, params)
	if err != nil {
		return nil, err
	}
	paths, err := decodeEntityPaths(records)
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func decodeEntityPaths(records []*neo4j.Record) ([][]map[string]any, error) {
	paths := make([][]map[string]any, 0, len(records))
	for _, record := range records {
		value, ok := record.Get("path")
		if !ok {
			continue
		}
		raw, ok := value.([]any)
		if !ok {
			return nil, fmt.Errorf("unexpected path value type %T", value)
		}
		path := make([]map[string]any, 0, len(raw))
		for _, item := range raw {
			props, err := nodeProps(item)
			if err != nil {
				return nil, err
			}
			path = append(path, props)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func decodeSegments(value any) ([]PathSegment, error) {
	raw, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected segments value type %T", value)
	}
	segments := make([]PathSegment, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unexpected segment type %T", item)
		}
		from, err := nodeProps(m["from"])
		if err != nil {
			return nil, err
		}
		to, err := nodeProps(m["to"])
		if err != nil {
			return nil, err
		}
		rd, err := nodeProps(m["relationship_detail"])
		if err != nil {
			return nil, err
		}
		segments = append(segments, PathSegment{From: from, RelationshipDetail: rd, To: to})
	}
	return segments, nil
}

