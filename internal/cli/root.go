package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/obriclabs/corpgraph/internal/config"
	"github.com/obriclabs/corpgraph/internal/graph"
	"github.com/obriclabs/corpgraph/internal/platform/logger"
	"github.com/obriclabs/corpgraph/internal/platform/neo4jdb"
)

// app holds the lazily-connected dependencies shared by every command.
type app struct {
	log    *logger.Logger
	client *neo4jdb.Client

	entities      *graph.EntityEngine
	neighbourhood *graph.NeighbourhoodEngine
	paths         *graph.PathEngine
	relationships *graph.RelationshipEngine
	people        *graph.PersonEngine
}

func (a *app) connect(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return err
	}
	client, err := neo4jdb.New(cfg.Neo4j, log)
	if err != nil {
		return err
	}
	if err := client.Connect(ctx); err != nil {
		return err
	}
	a.log = log
	a.client = client
	a.entities = graph.NewEntityEngine(client, log)
	a.neighbourhood = graph.NewNeighbourhoodEngine(client, log)
	a.paths = graph.NewPathEngine(client, log)
	a.relationships = graph.NewRelationshipEngine(client, log)
	a.people = graph.NewPersonEngine(client, log)
	return nil
}

func (a *app) close(ctx context.Context) {
	if a.client != nil {
		if err := a.client.Close(ctx); err != nil {
			a.log.Warn("close failed", "error", err)
		}
	}
	if a.log != nil {
		a.log.Sync()
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// entityFlags binds the identity hints used by single-entity commands.
type entityFlags struct {
	id        string
	ticker    string
	shortName string
	legalName string
}

func (f *entityFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.id, "id", "", "entity id")
	cmd.Flags().StringVar(&f.ticker, "ticker", "", "stock ticker")
	cmd.Flags().StringVar(&f.shortName, "short-name", "", "entity short name")
	cmd.Flags().StringVar(&f.legalName, "legal-name", "", "entity legal name")
}

func (f *entityFlags) ref() graph.EntityRef {
	return graph.EntityRef{ID: f.id, Ticker: f.ticker, ShortName: f.shortName, LegalName: f.legalName}
}

// pairFlags binds the two endpoints of a path or relationship command.
type pairFlags struct {
	id1, ticker1, shortName1, legalName1 string
	id2, ticker2, shortName2, legalName2 string
}

func (f *pairFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.id1, "id1", "", "first entity id")
	cmd.Flags().StringVar(&f.ticker1, "ticker1", "", "first entity ticker")
	cmd.Flags().StringVar(&f.shortName1, "short-name1", "", "first entity short name")
	cmd.Flags().StringVar(&f.legalName1, "legal-name1", "", "first entity legal name")
	cmd.Flags().StringVar(&f.id2, "id2", "", "second entity id")
	cmd.Flags().StringVar(&f.ticker2, "ticker2", "", "second entity ticker")
	cmd.Flags().StringVar(&f.shortName2, "short-name2", "", "second entity short name")
	cmd.Flags().StringVar(&f.legalName2, "legal-name2", "", "second entity legal name")
}

func (f *pairFlags) refs() (graph.EntityRef, graph.EntityRef) {
	ref1 := graph.EntityRef{ID: f.id1, Ticker: f.ticker1, ShortName: f.shortName1, LegalName: f.legalName1}
	ref2 := graph.EntityRef{ID: f.id2, Ticker: f.ticker2, ShortName: f.shortName2, LegalName: f.legalName2}
	return ref1, ref2
}

func Execute() {
	a := &app{}

	root := &cobra.Command{
		Use:           "corpgraph-cli",
		Short:         "Query the corporate relationship graph",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.connect(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			a.close(closeCtx)
		},
	}

	root.AddCommand(
		newFindEntityCmd(a),
		newSearchEntitiesCmd(a),
		newSearchByRelationshipCmd(a),
		newRelatedCmd(a),
		newTierCmd(a),
		newPathExistsCmd(a),
		newPathsCmd(a),
		newPathsDetailedCmd(a),
		newPathsBetweenCmd(a),
		newRelationshipDetailsCmd(a),
		newAwardsCmd(a),
		newInsidersCmd(a),
		newPeopleCmd(a),
		newPersonCmd(a),
		newPersonRelationshipsCmd(a),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
