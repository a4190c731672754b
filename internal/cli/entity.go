package cli

import (
	"github.com/spf13/cobra"

	"github.com/obriclabs/corpgraph/internal/graph"
)

func newFindEntityCmd(a *app) *cobra.Command {
	var flags entityFlags
	var limit int

	cmd := &cobra.Command{
		Use:   "find-entity",
		Short: "Look up entities by id, ticker or name",
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.entities.FindEntity(cmd.Context(), flags.ref(), limit)
			if err != nil {
				return err
			}
			return printJSON(results)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", 0, "max results")
	return cmd
}

func newSearchEntitiesCmd(a *app) *cobra.Command {
	var query string
	var limit int

	cmd := &cobra.Command{
		Use:   "search-entities",
		Short: "Substring search across entity name fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.entities.SearchEntities(cmd.Context(), query, limit)
			if err != nil {
				return err
			}
			return printJSON(results)
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "search text")
	cmd.Flags().IntVar(&limit, "limit", 0, "max results")
	return cmd
}

func newSearchByRelationshipCmd(a *app) *cobra.Command {
	var query, direction string
	var limit int

	cmd := &cobra.Command{
		Use:   "search-by-relationship",
		Short: "Find entities whose relationship descriptions mention a phrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.entities.FindEntitiesByRelationshipText(cmd.Context(), query, graph.Direction(direction), limit)
			if err != nil {
				return err
			}
			return printJSON(results)
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "search text")
	cmd.Flags().StringVar(&direction, "direction", "", "inbound, outbound or empty for both")
	cmd.Flags().IntVar(&limit, "limit", 0, "max results")
	return cmd
}
