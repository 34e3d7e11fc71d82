package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vibekstra/internal/provider"
)

// providersCmd lists supported providers
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List providers, default models and credential status",
	Args:  cobra.NoArgs,
	RunE:  runProviders,
}

func runProviders(cmd *cobra.Command, args []string) error {
	selected := ""
	if cfg != nil {
		selected = cfg.LLM.Provider
	}

	t := newTable("Providers", "", "Name", "Default model", "Credential")
	for _, info := range provider.Providers {
		marker := ""
		if string(info.Name) == selected {
			marker = "*"
		}
		cred := errorStyle.Render("missing") + mutedStyle.Render(" (set "+strings.Join(info.EnvVars, " or ")+")")
		if _, from := provider.APIKeyFromEnv(info.Name); from != "" {
			cred = successStyle.Render("set") + mutedStyle.Render(" via "+from)
		}
		t.AddRow(marker, string(info.Name), info.DefaultModel, cred)
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), t.View())
	return err
}
