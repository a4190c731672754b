package graph

import (
	"strings"
	"testing"
)

func TestBuildFindRelationshipDetails(t *testing.T) {
	cypher, params, err := buildFindRelationshipDetails(EntityRef{ID: "a"}, EntityRef{Ticker: "RTX"}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(cypher, "OPTIONAL MATCH (e1)-[]->(rd_out:RelationshipDetail)-[]->(e2)") {
		t.Fatalf("outbound arm missing: %q", cypher)
	}
	if !strings.Contains(cypher, "OPTIONAL MATCH (e1)<-[]-(rd_in:RelationshipDetail)<-[]-(e2)") {
		t.Fatalf("inbound arm missing: %q", cypher)
	}
	if !strings.Contains(cypher, `e1.short_name + " -> " + e2.short_name`) {
		t.Fatalf("direction annotation missing: %q", cypher)
	}
	if !strings.Contains(cypher, "ORDER BY rd.created_at DESC") {
		t.Fatalf("newest-first ordering missing: %q", cypher)
	}
	if params["1_id"] != "a" || params["2_ticker"] != "RTX" {
		t.Fatalf("namespaced params = %v", params)
	}
}

func TestAffiliateRelationshipTypes(t *testing.T) {
	if len(affiliateRelationshipTypes) != 17 {
		t.Fatalf("allow-list length = %d", len(affiliateRelationshipTypes))
	}
	seen := make(map[string]bool, len(affiliateRelationshipTypes))
	for _, typ := range affiliateRelationshipTypes {
		if seen[typ] {
			t.Fatalf("duplicate type %q", typ)
		}
		seen[typ] = true
	}
	for _, required := range []string{"subsidiary", "parent_company", "acquirer"} {
		if !seen[required] {
			t.Fatalf("allow-list missing %q", required)
		}
	}
}

func TestBuildFindGovernmentAwards(t *testing.T) {
	cypher, params, err := buildFindGovernmentAwards(EntityRef{Ticker: "LMT"}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(cypher, "affiliate_rd.relationship_type IN $relationship_types") {
		t.Fatalf("affiliate filter missing: %q", cypher)
	}
	if !strings.Contains(cypher, `rd.relationship_type = "awarded_to"`) {
		t.Fatalf("award filter missing: %q", cypher)
	}
	if !strings.Contains(cypher, `COALESCE(government_agency.legal_name, government_agency.short_name, "")`) {
		t.Fatalf("agency name fallback missing: %q", cypher)
	}
	if !strings.Contains(cypher, `affiliate.entity_type = "company"`) || !strings.Contains(cypher, `start.entity_type = "company"`) {
		t.Fatalf("company-only closure missing: %q", cypher)
	}
	types, ok := params["relationship_types"].([]string)
	if !ok || len(types) != len(affiliateRelationshipTypes) {
		t.Fatalf("relationship_types param = %v", params["relationship_types"])
	}
}

func TestBuildFindRecentInsiderActivitiesNoStartDate(t *testing.T) {
	cypher, params, err := buildFindRecentInsiderActivities(EntityRef{Ticker: "LMT"}, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(cypher, "start_date") {
		t.Fatalf("date filter must be absent without a start date: %q", cypher)
	}
	if _, ok := params["start_date"]; ok {
		t.Fatalf("start_date must not be bound")
	}
	if !strings.Contains(cypher, "(e)-[]-(rd:RelationshipDetail:Insider)") {
		t.Fatalf("insider label filter missing: %q", cypher)
	}
	if !strings.Contains(cypher, "ORDER BY rd.event_date DESC, rd.created_at DESC") {
		t.Fatalf("ordering missing: %q", cypher)
	}
}

func TestBuildFindRecentInsiderActivitiesWithStartDate(t *testing.T) {
	start := "2024-06-01"
	cypher, params, err := buildFindRecentInsiderActivities(EntityRef{Ticker: "LMT"}, &start, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(cypher, "date(left(rd.event_date, 10)) > date(left($start_date, 10))") {
		t.Fatalf("strict date comparison missing: %q", cypher)
	}
	if params["start_date"] != "2024-06-01" {
		t.Fatalf("start_date param = %v", params["start_date"])
	}
}

func TestBuildFindRecentInsiderActivitiesEmptyStartDate(t *testing.T) {
	empty := "  "
	_, _, err := buildFindRecentInsiderActivities(EntityRef{Ticker: "LMT"}, &empty, 0)
	if !IsInvalidArgument(err) {
		t.Fatalf("want InvalidArgumentError, got %v", err)
	}
}
