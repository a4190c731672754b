package graph

import (
	"fmt"
	"strings"
)

// Direction of a traversal relative to the first (or only) entity.
// DirectionBoth relaxes edge orientation but keeps the alternation rule.
type Direction string

const (
	DirectionBoth     Direction = ""
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

func (d Direction) validate() error {
	switch d {
	case DirectionBoth, DirectionInbound, DirectionOutbound:
		return nil
	default:
		return invalidArgf(`direction must be "", "inbound", or "outbound", got %q`, string(d))
	}
}

// validateStrict is for operations that need a definite orientation.
func (d Direction) validateStrict() error {
	switch d {
	case DirectionInbound, DirectionOutbound:
		return nil
	default:
		return invalidArgf(`direction must be either "inbound" or "outbound", got %q`, string(d))
	}
}

// MatchSpec is one resolved identity: a Cypher MATCH/WHERE fragment plus
// the parameters it binds. The fragment is always built from a fixed
// template per strategy; caller-supplied text only ever travels in Params.
type MatchSpec struct {
	Clause string
	Params map[string]any
}

// Namespace rewrites every bound parameter with a prefix so two specs can
// be merged into one query without collisions.
func (m MatchSpec) Namespace(prefix string) MatchSpec {
	out := MatchSpec{
		Clause: m.Clause,
		Params: make(map[string]any, len(m.Params)),
	}
	for key, value := range m.Params {
		out.Params[prefix+key] = value
		out.Clause = strings.ReplaceAll(out.Clause, "$"+key, "$"+prefix+key)
	}
	return out
}

func norm(s string) string {
	return strings.TrimSpace(s)
}

// EntityRef is a bag of optional, possibly-noisy entity hints.
type EntityRef struct {
	ID        string
	Ticker    string
	ShortName string
	LegalName string
}

func (r EntityRef) normalized() EntityRef {
	return EntityRef{
		ID:        norm(r.ID),
		Ticker:    norm(r.Ticker),
		ShortName: norm(r.ShortName),
		LegalName: norm(r.LegalName),
	}
}

// ByID reports whether resolution would short-circuit on the internal id.
func (r EntityRef) ByID() bool {
	return norm(r.ID) != ""
}

// Match builds the MATCH/WHERE fragment identifying this entity as
// entityVar. Priority, first match wins, never OR'd across tiers:
//  1. internal id, exact (no label filter; ids are store-assigned)
//  2. ticker, case-insensitive exact, Entity-labeled
//  3. short_name/legal_name, case-insensitive CONTAINS over both fields
func (r EntityRef) Match(entityVar string) (MatchSpec, error) {
	r = r.normalized()
	params := map[string]any{}

	if r.ID != "" {
		return MatchSpec{
			Clause: fmt.Sprintf("MATCH (%s) WHERE %s.id = $id", entityVar, entityVar),
			Params: map[string]any{"id": r.ID},
		}, nil
	}

	if r.Ticker != "" {
		return MatchSpec{
			Clause: fmt.Sprintf("MATCH (%s:Entity) WHERE toLower(%s.ticker) = toLower($ticker)", entityVar, entityVar),
			Params: map[string]any{"ticker": r.Ticker},
		}, nil
	}

	if r.ShortName == "" && r.LegalName == "" {
		return MatchSpec{}, invalidArgf("at least one of id, ticker, short_name or legal_name is required")
	}

	var conds []string
	if r.ShortName != "" {
		params["short_name"] = r.ShortName
		conds = append(conds, fmt.Sprintf(
			"(toLower(%s.short_name) CONTAINS toLower($short_name) OR toLower(%s.legal_name) CONTAINS toLower($short_name))",
			entityVar, entityVar))
	}
	if r.LegalName != "" {
		params["legal_name"] = r.LegalName
		conds = append(conds, fmt.Sprintf(
			"(toLower(%s.short_name) CONTAINS toLower($legal_name) OR toLower(%s.legal_name) CONTAINS toLower($legal_name))",
			entityVar, entityVar))
	}

	return MatchSpec{
		Clause: fmt.Sprintf("MATCH (%s:Entity) WHERE %s", entityVar, strings.Join(conds, " OR ")),
		Params: params,
	}, nil
}

// PersonRef is a bag of optional person hints.
type PersonRef struct {
	ID      string
	Name    string
	Address string
	SecCIK  string
}

func (r PersonRef) normalized() PersonRef {
	return PersonRef{
		ID:      norm(r.ID),
		Name:    norm(r.Name),
		Address: norm(r.Address),
		SecCIK:  norm(r.SecCIK),
	}
}

// Empty reports whether no identifying hint at all was supplied.
func (r PersonRef) Empty() bool {
	r = r.normalized()
	return r.ID == "" && r.Name == "" && r.Address == "" && r.SecCIK == ""
}

// Match builds the MATCH/WHERE fragment identifying this person as
// personVar. The id is exact and highest priority; otherwise a name is
// required. Address and sec_cik are permissive extra filters appended
// with OR in either branch.
func (r PersonRef) Match(personVar string) (MatchSpec, error) {
	r = r.normalized()
	params := map[string]any{}

	extras := func() []string {
		var conds []string
		if r.Address != "" {
			params["address"] = r.Address
			conds = append(conds, fmt.Sprintf("toLower(%s.address) CONTAINS toLower($address)", personVar))
		}
		if r.SecCIK != "" {
			params["sec_cik"] = r.SecCIK
			conds = append(conds, fmt.Sprintf("toLower(%s.sec_cik) = toLower($sec_cik)", personVar))
		}
		return conds
	}

	if r.ID != "" {
		params["id"] = r.ID
		conds := append([]string{fmt.Sprintf("%s.id = $id", personVar)}, extras()...)
		return MatchSpec{
			Clause: fmt.Sprintf("MATCH (%s:Person) WHERE %s", personVar, strings.Join(conds, " OR ")),
			Params: params,
		}, nil
	}

	if r.Name == "" {
		return MatchSpec{}, invalidArgf("at least one of id or name is required to identify a person")
	}

	params["name"] = r.Name
	conds := append([]string{fmt.Sprintf("toLower(%s.full_name) CONTAINS toLower($name)", personVar)}, extras()...)
	return MatchSpec{
		Clause: fmt.Sprintf("MATCH (%s:Person) WHERE %s", personVar, strings.Join(conds, " OR ")),
		Params: params,
	}, nil
}

// mergeTwoEntityMatch resolves two refs with namespaced parameters so both
// fragments can live in one query. Variable names follow the convention
// used across the engines: e1 and e2.
func mergeTwoEntityMatch(ref1, ref2 EntityRef) (MatchSpec, MatchSpec, map[string]any, error) {
	m1, err := ref1.Match("e1")
	if err != nil {
		return MatchSpec{}, MatchSpec{}, nil, err
	}
	m2, err := ref2.Match("e2")
	if err != nil {
		return MatchSpec{}, MatchSpec{}, nil, err
	}
	m1 = m1.Namespace("1_")
	m2 = m2.Namespace("2_")
	params := make(map[string]any, len(m1.Params)+len(m2.Params))
	for k, v := range m1.Params {
		params[k] = v
	}
	for k, v := range m2.Params {
		params[k] = v
	}
	return m1, m2, params, nil
}
