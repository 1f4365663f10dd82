package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect or edit the search history",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List previously searched cities, oldest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cities, err := a.historyService().Cities(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(cities) == 0 {
					fmt.Fprintln(out, "search history is empty")
					return nil
				}
				for _, city := range cities {
					fmt.Fprintf(out, "%s\t%s\n", city.ID, city.Name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Remove a city from the search history",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.historyService().RemoveCity(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return nil
			},
		},
	)

	return cmd
}
