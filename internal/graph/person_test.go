package graph

import (
	"strings"
	"testing"
)

func TestBuildQueryPersonByID(t *testing.T) {
	cypher, params, err := buildQueryPerson("p1", "ignored", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(cypher, "p.id = $id") || !strings.Contains(cypher, "LIMIT 1") {
		t.Fatalf("id lookup = %q", cypher)
	}
	if _, ok := params["name"]; ok {
		t.Fatalf("name must not be bound on the id branch")
	}
}

func TestBuildQueryPersonByName(t *testing.T) {
	cypher, params, err := buildQueryPerson("", "Taiclet", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(cypher, "toLower(p.full_name) CONTAINS toLower($name)") {
		t.Fatalf("name lookup = %q", cypher)
	}
	if params["limit"] != defaultLimit {
		t.Fatalf("limit = %v", params["limit"])
	}
}

func TestBuildQueryPersonRequiresHint(t *testing.T) {
	if _, _, err := buildQueryPerson("  ", "", 0); !IsInvalidArgument(err) {
		t.Fatalf("want InvalidArgumentError, got %v", err)
	}
}

func TestBuildFindPeopleByEntity(t *testing.T) {
	cypher, _, err := buildFindPeopleByEntity(EntityRef{Ticker: "LMT"}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(cypher, "MATCH (e)-[]-(rd:RelationshipDetail)-[]-(p:Person)") {
		t.Fatalf("person traversal missing: %q", cypher)
	}
	if !strings.Contains(cypher, "RETURN DISTINCT p AS person") {
		t.Fatalf("distinct projection missing: %q", cypher)
	}
}

func TestBuildFindPersonEntityRelationships(t *testing.T) {
	cypher, params, err := buildFindPersonEntityRelationships(
		EntityRef{Ticker: "LMT"},
		PersonRef{Name: "Taiclet"},
		nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params["1_ticker"] != "LMT" || params["2_name"] != "Taiclet" {
		t.Fatalf("namespaced params = %v", params)
	}
	if !strings.Contains(cypher, "MATCH (e)-[]-(rd:RelationshipDetail)-[]-(p)") {
		t.Fatalf("link traversal missing: %q", cypher)
	}
	if !strings.Contains(cypher, "rd.event_date AS event_date") {
		t.Fatalf("event_date projection missing: %q", cypher)
	}
}

func TestBuildFindPersonEntityRelationshipsRequiresPerson(t *testing.T) {
	_, _, err := buildFindPersonEntityRelationships(EntityRef{Ticker: "LMT"}, PersonRef{}, nil, 0)
	if !IsInvalidArgument(err) {
		t.Fatalf("want InvalidArgumentError, got %v", err)
	}
}

func TestBuildFindPersonEntityRelationshipsStartDate(t *testing.T) {
	start := "2024-01-01"
	cypher, params, err := buildFindPersonEntityRelationships(
		EntityRef{Ticker: "LMT"},
		PersonRef{ID: "p1"},
		&start, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(cypher, "date(left(rd.event_date, 10)) > date(left($start_date, 10))") {
		t.Fatalf("date filter missing: %q", cypher)
	}
	if params["start_date"] != "2024-01-01" {
		t.Fatalf("start_date param = %v", params["start_date"])
	}

	empty := ""
	if _, _, err := buildFindPersonEntityRelationships(EntityRef{Ticker: "LMT"}, PersonRef{ID: "p1"}, &empty, 0); !IsInvalidArgument(err) {
		t.Fatalf("empty start date: want InvalidArgumentError, got %v", err)
	}
}
