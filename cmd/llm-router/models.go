package main

import (
	"encoding/json"
	"fmt"

	"github.com/MarcusGale/LLM-Router/handlers"
	"github.com/MarcusGale/LLM-Router/services/registry"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newModelsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the backend models and their specs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			models := handlers.ListModels(registry.New())

			if asJSON {
				out, err := json.MarshalIndent(models, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Model", "Context", "Latency", "Throughput", "Pricing"})
			table.SetAutoWrapText(false)
			for _, m := range models {
				id := m.ID
				if m.Default {
					id += " (default)"
				}
				table.Append([]string{id, m.Specs.ContextSize, m.Specs.Latency, m.Specs.Throughput, m.Specs.Pricing})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}
