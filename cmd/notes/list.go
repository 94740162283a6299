package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"essential-notes/internal/converter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Форматы вывода list
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func newListCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeFn, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			cards := converter.ModelsToCards(st.Notes())
			out := cmd.OutOrStdout()

			switch output {
			case outputTable:
				return printTable(out, cards)
			case outputJSON:
				data, err := json.MarshalIndent(st.Notes(), "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			case outputYAML:
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(cards); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown output format %q (table|json|yaml)", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table, json or yaml")
	return cmd
}

func printTable(out io.Writer, cards []converter.NoteCard) error {
	if len(cards) == 0 {
		_, err := fmt.Fprintln(out, "No notes yet. Create your first one!")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCREATED\tPUBLIC\tPREVIEW")
	for _, c := range cards {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Title, c.Created, c.Public, oneLine(c.Preview))
	}
	return w.Flush()
}

// oneLine схлопывает переводы строк для табличного вывода
func oneLine(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r == '\n' || r == '\r' || r == '\t' {
			runes[i] = ' '
		}
	}
	return string(runes)
}
