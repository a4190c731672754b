package cli

import (
	"github.com/spf13/cobra"

	"github.com/obriclabs/corpgraph/internal/graph"
)

func newRelatedCmd(a *app) *cobra.Command {
	var flags entityFlags
	var direction string
	var minTier, maxTier, limit int

	cmd := &cobra.Command{
		Use:   "related",
		Short: "List entities within a tier band of a starting entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.neighbourhood.FindConnectedEntities(cmd.Context(), flags.ref(), minTier, maxTier, graph.Direction(direction), limit)
			if err != nil {
				return err
			}
			return printJSON(results)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&minTier, "min-tier", 1, "minimum tier")
	cmd.Flags().IntVar(&maxTier, "max-tier", 2, "maximum tier")
	cmd.Flags().StringVar(&direction, "direction", "", "inbound, outbound or empty for both")
	cmd.Flags().IntVar(&limit, "limit", 0, "max results")
	return cmd
}

func newTierCmd(a *app) *cobra.Command {
	var flags entityFlags
	var direction string
	var tier, limit int

	cmd := &cobra.Command{
		Use:   "tier",
		Short: "List entities at an exact tier from a starting entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.neighbourhood.FindTierEntities(cmd.Context(), flags.ref(), tier, graph.Direction(direction), limit)
			if err != nil {
				return err
			}
			return printJSON(results)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&tier, "tier", 1, "exact tier")
	cmd.Flags().StringVar(&direction, "direction", "outbound", "inbound or outbound")
	cmd.Flags().IntVar(&limit, "limit", 0, "max results")
	return cmd
}

func newPathExistsCmd(a *app) *cobra.Command {
	var flags pairFlags
	var direction string
	var maxTier int

	cmd := &cobra.Command{
		Use:   "path-exists",
		Short: "Check whether a directed path links two entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			ref1, ref2 := flags.refs()
			hasPath, err := a.paths.PathExists(cmd.Context(), ref1, ref2, graph.Direction(direction), maxTier)
			if err != nil {
				return err
			}
			return printJSON(map[string]any{"has_path": hasPath, "direction": direction, "tier": maxTier})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&direction, "direction", "outbound", "inbound or outbound")
	cmd.Flags().IntVar(&maxTier, "max-tier", 3, "maximum tier to search")
	return cmd
}

func newPathsCmd(a *app) *cobra.Command {
	var flags pairFlags
	var direction string
	var maxTier int

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Enumerate directed entity paths between two entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			ref1, ref2 := flags.refs()
			paths, err := a.paths.EnumeratePaths(cmd.Context(), ref1, ref2, graph.Direction(direction), maxTier)
			if err != nil {
				return err
			}
			return printJSON(paths)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&direction, "direction", "outbound", "inbound or outbound")
	cmd.Flags().IntVar(&maxTier, "max-tier", 3, "maximum tier to search")
	return cmd
}

func newPathsDetailedCmd(a *app) *cobra.Command {
	var flags pairFlags
	var direction string
	var maxTier int

	cmd := &cobra.Command{
		Use:   "paths-detailed",
		Short: "Enumerate directed paths with per-hop relationship details",
		RunE: func(cmd *cobra.Command, args []string) error {
			ref1, ref2 := flags.refs()
			paths, err := a.paths.EnumeratePathsWithRelationships(cmd.Context(), ref1, ref2, graph.Direction(direction), maxTier)
			if err != nil {
				return err
			}
			return printJSON(paths)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&direction, "direction", "outbound", "inbound or outbound")
	cmd.Flags().IntVar(&maxTier, "max-tier", 3, "maximum tier to search")
	return cmd
}

func newPathsBetweenCmd(a *app) *cobra.Command {
	var flags pairFlags
	var direction string
	var maxTier, maxPaths int

	cmd := &cobra.Command{
		Use:   "paths-between",
		Short: "Enumerate capped paths between two entities, any orientation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ref1, ref2 := flags.refs()
			paths, err := a.paths.FindPathsBetween(cmd.Context(), ref1, ref2, graph.Direction(direction), maxTier, maxPaths)
			if err != nil {
				return err
			}
			return printJSON(paths)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&direction, "direction", "", "inbound, outbound or empty for both")
	cmd.Flags().IntVar(&maxTier, "max-tier", 3, "maximum tier to search")
	cmd.Flags().IntVar(&maxPaths, "max-paths", 25, "maximum number of paths")
	return cmd
}
