package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRmCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a note after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeFn, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			id := args[0]
			if err := st.RequestDelete(id); err != nil {
				return failure(st, err)
			}

			if !yes {
				note, _ := st.Get(id)
				fmt.Fprintf(cmd.OutOrStdout(), "Delete %q? This cannot be undone. [y/N] ", note.Title)

				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(answer)) {
				case "y", "yes":
				default:
					_ = st.CancelDelete()
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			deleted, err := st.ConfirmDelete(cmd.Context())
			if err != nil {
				return failure(st, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", deleted)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
