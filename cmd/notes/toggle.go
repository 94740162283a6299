package main

import (
	"fmt"

	"essential-notes/internal/converter"

	"github.com/spf13/cobra"
)

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip the public flag of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeFn, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			note, err := st.ToggleVisibility(cmd.Context(), args[0])
			if err != nil {
				return failure(st, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Public: %s\n", note.ID, converter.YesNo(note.IsPublic))
			return nil
		},
	}
}
