package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version задается при сборке через -ldflags "-X main.Version=..."
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "notes %s\n", Version)
		},
	}
}
