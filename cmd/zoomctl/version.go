package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/kbukum/basiczoom/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				*version.Info
				UserAgent string `json:"user_agent"`
			}{version.GetVersionInfo(), version.UserAgent()})
		},
	}
}
