package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/obriclabs/corpgraph/internal/platform/logger"
	"github.com/obriclabs/corpgraph/internal/platform/neo4jdb"
)

// affiliateRelationshipTypes is the closed allow-list of ownership and
// affiliation semantics used to build the one-hop affiliate closure for
// government-award attribution.
var affiliateRelationshipTypes = []string{
	"subsidiary", "parent_company", "equity_acquisition", "ownership", "division_of",
	"asset_acquisition", "acquisition_of_equity", "asset_purchase", "acquisition", "affiliate",
	"affiliate_of", "owner", "ownership_interest", "equity_holder", "parent", "sold_assets_to",
	"acquirer",
}

// RelationshipEngine answers questions about the RelationshipDetail
// nodes themselves: direct links between two entities, award
// attribution through affiliates, and insider activity.
type RelationshipEngine struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewRelationshipEngine(client *neo4jdb.Client, log *logger.Logger) *RelationshipEngine {
	return &RelationshipEngine{
		client: client,
		log:    log.With("engine", "Relationship"),
	}
}

func buildFindRelationshipDetails(ref1, ref2 EntityRef, limit int) (string, map[string]any, error) {
	m1, m2, params, err := mergeTwoEntityMatch(ref1, ref2)
	if err != nil {
		return "", nil, err
	}
	params["limit"] = clampLimit(limit)

	cypher := fmt.Sprintf(`
%s
WITH DISTINCT e1
%s
WITH DISTINCT e1, e2
OPTIONAL MATCH (e1)-[]->(rd_out:RelationshipDetail)-[]->(e2)
OPTIONAL MATCH (e1)<-[]-(rd_in:RelationshipDetail)<-[]-(e2)
WITH e1, e2,
     collect(DISTINCT {rd: rd_out, dir: e1.short_name + " -> " + e2.short_name}) AS outbound_rels,
     collect(DISTINCT {rd: rd_in, dir: e2.short_name + " -> " + e1.short_name}) AS inbound_rels
UNWIND (outbound_rels + inbound_rels) AS rel
UNWIND rel.rd AS rd
RETURN rd.id AS id, rd.description AS description, rd.relationship_type AS relationship_type,
       rd.source_url AS source_url, rd.created_at AS created_at, rel.dir AS relationship_direction
ORDER BY rd.created_at DESC
LIMIT $limit`,
		m1.Clause, m2.Clause)
	return cypher, params, nil
}

// FindRelationshipDetails returns every RelationshipDetail directly
// connecting the two entities in either orientation, annotated with a
// human-readable direction built from the entities' short names.
func (e *RelationshipEngine) FindRelationshipDetails(ctx context.Context, ref1, ref2 EntityRef, limit int) ([]map[string]any, error) {
	cypher, params, err := buildFindRelationshipDetails(ref1, ref2, limit)
	if err != nil {
		return nil, err
	}
	records, err := runRows(ctx, e.client, cypher, params)
	if err != nil {
		return nil, err
	}
	return recordsAsMaps(records), nil
}

func buildFindGovernmentAwards(ref EntityRef, limit int) (string, map[string]any, error) {
	match, err := ref.Match("start")
	if err != nil {
		return "", nil, err
	}
	params := match.Params
	params["limit"] = clampLimit(limit)
	params["relationship_types"] = affiliateRelationshipTypes

	// The affiliate closure is exactly one hop deep: affiliates of
	// affiliates do not inherit awards.
	cypher := fmt.Sprintf(`
%s
OPTIONAL MATCH (start)-[]-(affiliate_rd:RelationshipDetail)-[]-(affiliate:Entity)
WHERE affiliate_rd.relationship_type IN $relationship_types
  AND affiliate.entity_type = "company"
  AND start.entity_type = "company"
WITH start, collect(DISTINCT affiliate) AS affiliates
WITH [start] + [a IN affiliates WHERE a IS NOT NULL] AS all_entities
UNWIND all_entities AS entity
MATCH (government_agency:Entity)-[]->(rd:RelationshipDetail)-[]->(entity)
WHERE rd.relationship_type = "awarded_to"
WITH DISTINCT rd,
     COALESCE(government_agency.legal_name, government_agency.short_name, "") AS awarded_from,
     COALESCE(entity.legal_name, entity.short_name, "") AS affiliate
RETURN rd.id AS id, rd.source_url AS source_url,
       rd.description AS description, awarded_from, affiliate AS affiliate_entity
ORDER BY rd.created_at DESC
LIMIT $limit`,
		match.Clause)
	return cypher, params, nil
}

// FindGovernmentAwards finds every "awarded_to" RelationshipDetail whose
// destination is the entity or one of its direct affiliates, annotated
// with the awarding agency name and the awarded entity name.
func (e *RelationshipEngine) FindGovernmentAwards(ctx context.Context, ref EntityRef, limit int) ([]map[string]any, error) {
	cypher, params, err := buildFindGovernmentAwards(ref, limit)
	if err != nil {
		return nil, err
	}
	records, err := runRows(ctx, e.client, cypher, params)
	if err != nil {
		return nil, err
	}
	return recordsAsMaps(records), nil
}

func buildFindRecentInsiderActivities(ref EntityRef, startDate *string, limit int) (string, map[string]any, error) {
	match, err := ref.Match("e")
	if err != nil {
		return "", nil, err
	}
	params := match.Params
	params["limit"] = clampLimit(limit)

	dateFilter := ""
	if startDate != nil {
		normalized := norm(*startDate)
		if normalized == "" {
			return "", nil, invalidArgf("start_date must be a non-empty string when supplied")
		}
		params["start_date"] = normalized
		// Date-only comparison: any time component on either side is
		// dropped before comparing.
		dateFilter = "\nWHERE rd.event_date IS NOT NULL AND date(left(rd.event_date, 10)) > date(left($start_date, 10))"
	}

	cypher := fmt.Sprintf(`
%s
MATCH (e)-[]-(rd:RelationshipDetail:Insider)%s
RETURN rd.id AS id, rd.description AS description, rd.relationship_type AS relationship_type,
       rd.source_url AS source_url, rd.created_at AS created_at, rd.event_date AS event_date
ORDER BY rd.event_date DESC, rd.created_at DESC
LIMIT $limit`,
		match.Clause, dateFilter)
	return cypher, params, nil
}

// FindRecentInsiderActivities returns Insider-labelled
// RelationshipDetails connected to the entity, optionally keeping only
// those with an event date strictly after startDate.
func (e *RelationshipEngine) FindRecentInsiderActivities(ctx context.Context, ref EntityRef, startDate *string, limit int) ([]map[string]any, error) {
	cypher, params, err := buildFindRecentInsiderActivities(ref, startDate, limit)
	if err != nil {
		return nil, err
	}
	records, err := runRows(ctx, e.client, cypher, params)
	if err != nil {
		return nil, err
	}
	return recordsAsMaps(records), nil
}

func recordsAsMaps(records []*neo4j.Record) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, record := range records {
		out = append(out, record.AsMap())
	}
	return out
}
