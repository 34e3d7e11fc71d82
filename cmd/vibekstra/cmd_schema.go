package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vibekstra/internal/graph"
	"vibekstra/internal/provider"
)

var schemaFile string

// schemaCmd shows what would be sent without sending it
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the response schema, or the full prompt for a graph file",
	Long: `Dry run. Without --file, prints the JSON Schema the model must answer with.
With --file, prints the exact user message the configured provider would
send for that graph. No credentials are needed and nothing is sent.`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().StringVarP(&schemaFile, "file", "f", "", "Graph file (YAML or JSON)")
}

func runSchema(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if schemaFile == "" {
		data, err := json.MarshalIndent(graph.ResponseShape.JSONSchema(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal schema: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	c, err := graph.LoadCase(schemaFile)
	if err != nil {
		return err
	}
	req, err := c.Request()
	if err != nil {
		return err
	}
	payload, err := req.MarshalIndent()
	if err != nil {
		return err
	}
	msg, err := provider.UserMessage(provider.Name(cfg.LLM.Provider), payload, graph.ResponseShape)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, strings.TrimRight(msg, "\n"))
	return err
}
