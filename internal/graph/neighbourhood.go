package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/obriclabs/corpgraph/internal/platform/logger"
	"github.com/obriclabs/corpgraph/internal/platform/neo4jdb"
)

// Predicates shared by every traversal in this package. A valid path
// never revisits a node and strictly alternates Entity and
// RelationshipDetail by position.
const (
	simplePathPredicate = "ALL(n IN nodes(path) WHERE SINGLE(x IN nodes(path) WHERE x = n))"

	alternationPredicate = `ALL(i IN range(0, size(nodes(path)) - 1) WHERE
    (i % 2 = 0 AND 'Entity' IN labels(nodes(path)[i])) OR
    (i % 2 = 1 AND 'RelationshipDetail' IN labels(nodes(path)[i])))`
)

// NeighbourhoodEngine computes entities reachable within a tier band.
type NeighbourhoodEngine struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewNeighbourhoodEngine(client *neo4jdb.Client, log *logger.Logger) *NeighbourhoodEngine {
	return &NeighbourhoodEngine{
		client: client,
		log:    log.With("engine", "Neighbourhood"),
	}
}

// One tier is one Entity hop, which is two raw edge hops because a
// RelationshipDetail node sits between every entity pair.
func tierToRawHops(tier int) int {
	return 2 * tier
}

func connectedPattern(direction Direction, maxTier int) string {
	hops := tierToRawHops(maxTier)
	switch direction {
	case DirectionOutbound:
		return fmt.Sprintf("(start)-[r*1..%d]->(e:Entity)", hops)
	case DirectionInbound:
		return fmt.Sprintf("(start)<-[r*1..%d]-(e:Entity)", hops)
	default:
		return fmt.Sprintf("(start)-[r*1..%d]-(e:Entity)", hops)
	}
}

func buildFindConnectedEntities(ref EntityRef, minTier, maxTier int, direction Direction, limit int) (string, map[string]any, error) {
	if minTier < 0 {
		return "", nil, invalidArgf("min_tier must be >= 0, got %d", minTier)
	}
	if maxTier < minTier {
		return "", nil, invalidArgf("max_tier must be >= min_tier (%d < %d)", maxTier, minTier)
	}
	if err := direction.validate(); err != nil {
		return "", nil, err
	}
	match, err := ref.Match("start")
	if err != nil {
		return "", nil, err
	}

	params := match.Params
	params["minTier"] = minTier
	params["maxTier"] = maxTier
	params["limit"] = clampLimit(limit)

	cypher := fmt.Sprintf(`
%s
WITH DISTINCT start
MATCH path = %s
WHERE %s
  AND %s
WITH e, min(size([n IN nodes(path) WHERE 'Entity' IN labels(n)]) - 1) AS tier
WHERE tier >= $minTier AND tier <= $maxTier
RETURN e AS entity, tier
ORDER BY tier
LIMIT $limit`,
		match.Clause, connectedPattern(direction, maxTier), simplePathPredicate, alternationPredicate)
	return cypher, params, nil
}

// FindConnectedEntities returns every entity whose minimum tier from the
// start entity falls inside [minTier, maxTier], sorted ascending by tier.
func (e *NeighbourhoodEngine) FindConnectedEntities(ctx context.Context, ref EntityRef, minTier, maxTier int, direction Direction, limit int) ([]map[string]any, error) {
	cypher, params, err := buildFindConnectedEntities(ref, minTier, maxTier, direction, limit)
	if err != nil {
		return nil, err
	}
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
		tier, _ := record.Get("tier")
		row := make(map[string]any, len(props)+1)
		for k, v := range props {
			row[k] = v
		}
		row["tier"] = tier
		out = append(out, row)
	}
	e.log.Debug("find connected entities", "min_tier", minTier, "max_tier", maxTier, "direction", string(direction), "result_count", len(out))
	return out, nil
}

func tierChainPattern(direction Direction, tier int) string {
	var b strings.Builder
	b.WriteString("(start)")
	for i := 0; i < tier; i++ {
		target := "(:Entity)"
		if i == tier-1 {
			target = "(n:Entity)"
		}
		if direction == DirectionOutbound {
			b.WriteString("-[]->(:RelationshipDetail)-[]->")
		} else {
			b.WriteString("<-[]-(:RelationshipDetail)<-[]-")
		}
		b.WriteString(target)
	}
	return b.String()
}

func buildFindTierEntities(ref EntityRef, tier int, direction Direction, limit int) (string, map[string]any, error) {
	if tier < 1 {
		return "", nil, invalidArgf("tier must be >= 1, got %d", tier)
	}
	if err := direction.validateStrict(); err != nil {
		return "", nil, err
	}
	match, err := ref.Match("start")
	if err != nil {
		return "", nil, err
	}
	params := match.Params
	params["limit"] = clampLimit(limit)

	cypher := fmt.Sprintf(`
%s
WITH DISTINCT start
MATCH path = %s
WHERE %s
WITH n, min(floor(length(path) / 2)) AS tier
RETURN n AS node, tier
LIMIT $limit`,
		match.Clause, tierChainPattern(direction, tier), simplePathPredicate)
	return cypher, params, nil
}

// FindTierEntities walks a fixed-direction chain of exactly `tier` entity
// hops and returns the entities found at that distance.
func (e *NeighbourhoodEngine) FindTierEntities(ctx context.Context, ref EntityRef, tier int, direction Direction, limit int) ([]map[string]any, error) {
	cypher, params, err := buildFindTierEntities(ref, tier, direction, limit)
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
		tierVal, _ := record.Get("tier")
		row := make(map[string]any, len(props)+1)
		for k, v := range props {
			row[k] = v
		}
		row["tier"] = tierVal
		out = append(out, row)
	}
	return out, nil
}
