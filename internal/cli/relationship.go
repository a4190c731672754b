package cli

import (
	"github.com/spf13/cobra"
)

func newRelationshipDetailsCmd(a *app) *cobra.Command {
	var flags pairFlags
	var limit int

	cmd := &cobra.Command{
		Use:   "relationship-details",
		Short: "List relationship details linking two entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			ref1, ref2 := flags.refs()
			results, err := a.relationships.FindRelationshipDetails(cmd.Context(), ref1, ref2, limit)
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

func newAwardsCmd(a *app) *cobra.Command {
	var flags entityFlags
	var limit int

	cmd := &cobra.Command{
		Use:   "awards",
		Short: "List government awards for an entity and its affiliates",
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.relationships.FindGovernmentAwards(cmd.Context(), flags.ref(), limit)
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

func newInsidersCmd(a *app) *cobra.Command {
	var flags entityFlags
	var startDate string
	var limit int

	cmd := &cobra.Command{
		Use:   "insiders",
		Short: "List recent insider activities for an entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			var start *string
			if cmd.Flags().Changed("start-date") {
				start = &startDate
			}
			results, err := a.relationships.FindRecentInsiderActivities(cmd.Context(), flags.ref(), start, limit)
			if err != nil {
				return err
			}
			return printJSON(results)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&startDate, "start-date", "", "only activities after this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 0, "max results")
	return cmd
}
