package cli

import (
	"github.com/spf13/cobra"

	"github.com/obriclabs/corpgraph/internal/graph"
)

func newPersonCmd(a *app) *cobra.Command {
	var id, name string
	var limit int

	cmd := &cobra.Command{
		Use:   "person",
		Short: "Look up people by id or name",
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.people.QueryPerson(cmd.Context(), id, name, limit)
			if err != nil {
				return err
			}
			return printJSON(results)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "person id")
	cmd.Flags().StringVar(&name, "name", "", "person full name")
	cmd.Flags().IntVar(&limit, "limit", 0, "max results")
	return cmd
}

func newPeopleCmd(a *app) *cobra.Command {
	var flags entityFlags
	var limit int

	cmd := &cobra.Command{
		Use:   "people",
		Short: "List people connected to an entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.people.FindPeopleByEntity(cmd.Context(), flags.ref(), limit)
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

func newPersonRelationshipsCmd(a *app) *cobra.Command {
	var flags entityFlags
	var personID, personName, address, secCIK, startDate string
	var limit int

	cmd := &cobra.Command{
		Use:   "person-relationships",
		Short: "List relationship details linking a person to an entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			personRef := graph.PersonRef{ID: personID, Name: personName, Address: address, SecCIK: secCIK}
			var start *string
			if cmd.Flags().Changed("start-date") {
				start = &startDate
			}
			results, err := a.people.FindPersonEntityRelationships(cmd.Context(), flags.ref(), personRef, start, limit)
			if err != nil {
				return err
			}
			return printJSON(results)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&personID, "person-id", "", "person id")
	cmd.Flags().StringVar(&personName, "person-name", "", "person full name")
	cmd.Flags().StringVar(&address, "address", "", "person address fragment")
	cmd.Flags().StringVar(&secCIK, "sec-cik", "", "person SEC CIK")
	cmd.Flags().StringVar(&startDate, "start-date", "", "only relationships after this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 0, "max results")
	return cmd
}
