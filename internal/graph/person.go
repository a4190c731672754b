package graph

import (
	"context"
	"fmt"

	"github.com/obriclabs/corpgraph/internal/platform/logger"
	"github.com/obriclabs/corpgraph/internal/platform/neo4jdb"
)

// PersonEngine answers person-level questions: direct person lookup,
// people attached to an entity, and the relationships connecting a
// person to an entity.
type PersonEngine struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewPersonEngine(client *neo4jdb.Client, log *logger.Logger) *PersonEngine {
	return &PersonEngine{
		client: client,
		log:    log.With("engine", "Person"),
	}
}

func buildQueryPerson(id, name string, limit int) (string, map[string]any, error) {
	id = norm(id)
	name = norm(name)
	if id == "" && name == "" {
		return "", nil, invalidArgf("at least one of id or name is required")
	}
	if id != "" {
		cypher := `
MATCH (p:Person)
WHERE p.id = $id
RETURN p AS node
LIMIT 1`
		return cypher, map[string]any{"id": id}, nil
	}
	cypher := `
MATCH (p:Person)
WHERE toLower(p.full_name) CONTAINS toLower($name)
RETURN p AS node
LIMIT $limit`
	return cypher, map[string]any{"name": name, "limit": clampLimit(limit)}, nil
}

// QueryPerson is a lightweight person lookup: exact id first, else
// case-insensitive substring on full_name.
func (e *PersonEngine) QueryPerson(ctx context.Context, id, name string, limit int) ([]map[string]any, error) {
	cypher, params, err := buildQueryPerson(id, name, limit)
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

func buildFindPeopleByEntity(ref EntityRef, limit int) (string, map[string]any, error) {
	match, err := ref.Match("e")
	if err != nil {
		return "", nil, err
	}
	params := match.Params
	params["limit"] = clampLimit(limit)
	cypher := fmt.Sprintf(`
%s
MATCH (e)-[]-(rd:RelationshipDetail)-[]-(p:Person)
RETURN DISTINCT p AS person
LIMIT $limit`,
		match.Clause)
	return cypher, params, nil
}

// FindPeopleByEntity returns the distinct people connected to the
// resolved entity through any RelationshipDetail.
func (e *PersonEngine) FindPeopleByEntity(ctx context.Context, ref EntityRef, limit int) ([]map[string]any, error) {
	cypher, params, err := buildFindPeopleByEntity(ref, limit)
	if err != nil {
		return nil, err
	}
	records, err := runRows(ctx, e.client, cypher, params)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(records))
	for _, record := range records {
		props, err := recordNodeProps(record, "person")
		if err != nil {
			return nil, err
		}
		out = append(out, props)
	}
	return out, nil
}

func buildFindPersonEntityRelationships(entityRef EntityRef, personRef PersonRef, startDate *string, limit int) (string, map[string]any, error) {
	if personRef.Empty() {
		return "", nil, invalidArgf("at least one person-identifying field is required")
	}
	entityMatch, err := entityRef.Match("e")
	if err != nil {
		return "", nil, err
	}
	personMatch, err := personRef.Match("p")
	if err != nil {
		return "", nil, err
	}
	entityMatch = entityMatch.Namespace("1_")
	personMatch = personMatch.Namespace("2_")

	params := make(map[string]any, len(entityMatch.Params)+len(personMatch.Params)+2)
	for k, v := range entityMatch.Params {
		params[k] = v
	}
	for k, v := range personMatch.Params {
		params[k] = v
	}
	params["limit"] = clampLimit(limit)

	dateFilter := ""
	if startDate != nil {
		normalized := norm(*startDate)
		if normalized == "" {
			return "", nil, invalidArgf("start_date must be a non-empty string when supplied")
		}
		params["start_date"] = normalized
		dateFilter = "\nWHERE rd.event_date IS NOT NULL AND date(left(rd.event_date, 10)) > date(left($start_date, 10))"
	}

	cypher := fmt.Sprintf(`
%s
WITH DISTINCT e
%s
WITH DISTINCT e, p
MATCH (e)-[]-(rd:RelationshipDetail)-[]-(p)%s
RETURN rd.id AS id, rd.description AS description, rd.relationship_type AS relationship_type,
       rd.source_url AS source_url, rd.created_at AS created_at, rd.event_date AS event_date
ORDER BY rd.event_date DESC, rd.created_at DESC
LIMIT $limit`,
		entityMatch.Clause, personMatch.Clause, dateFilter)
	return cypher, params, nil
}

// FindPersonEntityRelationships returns every RelationshipDetail
// connecting the resolved person and entity, regardless of type or
// orientation, with the same date filtering as insider lookups.
func (e *PersonEngine) FindPersonEntityRelationships(ctx context.Context, entityRef EntityRef, personRef PersonRef, startDate *string, limit int) ([]map[string]any, error) {
	cypher, params, err := buildFindPersonEntityRelationships(entityRef, personRef, startDate, limit)
	if err != nil {
		return nil, err
	}
	records, err := runRows(ctx, e.client, cypher, params)
	if err != nil {
		return nil, err
	}
	return recordsAsMaps(records), nil
}
