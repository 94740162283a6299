package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkTitle(title); err != nil {
				return err
			}

			st, closeFn, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			note, err := st.Create(cmd.Context(), title, content)
			if err != nil {
				return failure(st, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), note.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Note title (required)")
	cmd.Flags().StringVarP(&content, "content", "b", "", "Note content")
	return cmd
}
