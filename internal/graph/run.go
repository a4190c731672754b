package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/obriclabs/corpgraph/internal/platform/neo4jdb"
)

// runRows executes one read query on a fresh session and collects every
// record. The session is released on every exit path.
func runRows(ctx context.Context, client *neo4jdb.Client, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	session, err := client.Session(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close(ctx)

	result, err := session.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	return result.Collect(ctx)
}

// nodeProps flattens a returned node value into its property map.
func nodeProps(v any) (map[string]any, error) {
	switch n := v.(type) {
	case nil:
		return nil, nil
	case dbtype.Node:
		return n.Props, nil
	case map[string]any:
		return n, nil
	default:
		return nil, fmt.Errorf("unexpected value type %T in result", v)
	}
}

// recordNodeProps extracts the named alias from a record and flattens it.
func recordNodeProps(record *neo4j.Record, alias string) (map[string]any, error) {
	value, ok := record.Get(alias)
	if !ok {
		return nil, fmt.Errorf("result record missing %q", alias)
	}
	return nodeProps(value)
}
