package main

import (
	"errors"
	"fmt"

	"essential-notes/internal/store"

	"github.com/spf13/cobra"
)

func newEditCmd(a *app) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title and content of a note",
		Long:  "Flags that are not given keep their current value. Pass --content \"\" to clear the content.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("title") {
				if err := checkTitle(title); err != nil {
					return err
				}
			}

			st, closeFn, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			id := args[0]
			current, ok := st.Get(id)
			if !ok {
				return errors.New(store.MessageNotFound)
			}
			if !cmd.Flags().Changed("title") {
				title = current.Title
			}
			if !cmd.Flags().Changed("content") {
				content = current.ContentText()
			}

			note, err := st.Update(cmd.Context(), id, title, content)
			if err != nil {
				return failure(st, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s\n", note.ID, note.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&content, "content", "b", "", "New content")
	return cmd
}
