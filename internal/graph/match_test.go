package graph

import (
	"strings"
	"testing"
)

func TestEntityRefMatchPriority(t *testing.T) {
	ref := EntityRef{ID: "abc", Ticker: "LMT", ShortName: "Lockheed"}
	spec, err := ref.Match("n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Clause != "MATCH (n) WHERE n.id = $id" {
		t.Fatalf("id should win over every other hint, got %q", spec.Clause)
	}
	if spec.Params["id"] != "abc" {
		t.Fatalf("id param = %v", spec.Params["id"])
	}
	if _, ok := spec.Params["ticker"]; ok {
		t.Fatalf("ticker must not be bound when id matched")
	}
}

func TestEntityRefMatchTicker(t *testing.T) {
	spec, err := EntityRef{Ticker: " LMT ", ShortName: "Lockheed"}.Match("e1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Clause != "MATCH (e1:Entity) WHERE toLower(e1.ticker) = toLower($ticker)" {
		t.Fatalf("clause = %q", spec.Clause)
	}
	if spec.Params["ticker"] != "LMT" {
		t.Fatalf("ticker should be trimmed, got %v", spec.Params["ticker"])
	}
}

func TestEntityRefMatchNames(t *testing.T) {
	spec, err := EntityRef{ShortName: "Lockheed", LegalName: "Lockheed Martin Corp"}.Match("n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(spec.Clause, "toLower(n.short_name) CONTAINS toLower($short_name)") {
		t.Fatalf("short_name condition missing: %q", spec.Clause)
	}
	if !strings.Contains(spec.Clause, "toLower(n.legal_name) CONTAINS toLower($legal_name)") {
		t.Fatalf("legal_name condition missing: %q", spec.Clause)
	}
	if !strings.Contains(spec.Clause, " OR ") {
		t.Fatalf("name conditions must be OR'd: %q", spec.Clause)
	}
}

func TestEntityRefMatchEmpty(t *testing.T) {
	_, err := EntityRef{ID: "  "}.Match("n")
	if !IsInvalidArgument(err) {
		t.Fatalf("want InvalidArgumentError, got %v", err)
	}
}

func TestMatchSpecNamespace(t *testing.T) {
	spec := MatchSpec{
		Clause: "MATCH (e1) WHERE e1.id = $id",
		Params: map[string]any{"id": "abc"},
	}
	out := spec.Namespace("1_")
	if out.Clause != "MATCH (e1) WHERE e1.id = $1_id" {
		t.Fatalf("clause = %q", out.Clause)
	}
	if out.Params["1_id"] != "abc" {
		t.Fatalf("params = %v", out.Params)
	}
	if _, ok := out.Params["id"]; ok {
		t.Fatalf("original key must be replaced")
	}
	if spec.Params["id"] != "abc" || spec.Clause != "MATCH (e1) WHERE e1.id = $id" {
		t.Fatalf("input spec must not be mutated")
	}
}

func TestMergeTwoEntityMatch(t *testing.T) {
	_, _, params, err := mergeTwoEntityMatch(
		EntityRef{ID: "a"},
		EntityRef{Ticker: "RTX"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params["1_id"] != "a" {
		t.Fatalf("first ref params = %v", params)
	}
	if params["2_ticker"] != "RTX" {
		t.Fatalf("second ref params = %v", params)
	}
}

func TestMergeTwoEntityMatchPropagatesInvalid(t *testing.T) {
	_, _, _, err := mergeTwoEntityMatch(EntityRef{ID: "a"}, EntityRef{})
	if !IsInvalidArgument(err) {
		t.Fatalf("want InvalidArgumentError, got %v", err)
	}
}

func TestPersonRefMatchByID(t *testing.T) {
	spec, err := PersonRef{ID: "p1", SecCIK: "0001234"}.Match("p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(spec.Clause, "MATCH (p:Person) WHERE ") {
		t.Fatalf("person match must be Person-labeled: %q", spec.Clause)
	}
	if !strings.Contains(spec.Clause, "p.id = $id") {
		t.Fatalf("id condition missing: %q", spec.Clause)
	}
	if !strings.Contains(spec.Clause, "toLower(p.sec_cik) = toLower($sec_cik)") {
		t.Fatalf("sec_cik condition missing: %q", spec.Clause)
	}
}

func TestPersonRefMatchByName(t *testing.T) {
	spec, err := PersonRef{Name: "James Taiclet", Address: "Bethesda"}.Match("p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(spec.Clause, "toLower(p.full_name) CONTAINS toLower($name)") {
		t.Fatalf("name condition missing: %q", spec.Clause)
	}
	if !strings.Contains(spec.Clause, "toLower(p.address) CONTAINS toLower($address)") {
		t.Fatalf("address condition missing: %q", spec.Clause)
	}
}

func TestPersonRefMatchExtrasAloneRejected(t *testing.T) {
	_, err := PersonRef{Address: "Bethesda"}.Match("p")
	if !IsInvalidArgument(err) {
		t.Fatalf("want InvalidArgumentError, got %v", err)
	}
}

func TestPersonRefEmpty(t *testing.T) {
	if !(PersonRef{Address: "  "}).Empty() {
		t.Fatalf("whitespace-only hints should count as empty")
	}
	if (PersonRef{SecCIK: "1"}).Empty() {
		t.Fatalf("sec_cik alone is still an identifying hint")
	}
}

func TestDirectionValidate(t *testing.T) {
	for _, d := range []Direction{DirectionBoth, DirectionInbound, DirectionOutbound} {
		if err := d.validate(); err != nil {
			t.Fatalf("direction %q should be valid: %v", d, err)
		}
	}
	if err := Direction("sideways").validate(); !IsInvalidArgument(err) {
		t.Fatalf("want InvalidArgumentError, got %v", err)
	}
	if err := DirectionBoth.validateStrict(); !IsInvalidArgument(err) {
		t.Fatalf("strict validation must reject the empty direction, got %v", err)
	}
}
