package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var versionAsJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of smarthouse",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if versionAsJSON {
			b, err := json.MarshalIndent(versionResult{Version: version, Commit: commit, Date: date}, "", "    ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "smarthouse version %s (commit %s, built %s)\n", version, commit, date)
		return nil
	},
}

type versionResult struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func init() {
	versionCmd.Flags().BoolVar(&versionAsJSON, "json", false, "print version as JSON")
	rootCmd.AddCommand(versionCmd)
}
