package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List the endpoints that would be probed",
	Args:  cobra.NoArgs,
	RunE:  runEndpoints,
}

func init() {
	rootCmd.AddCommand(endpointsCmd)
}

func runEndpoints(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "source: %s\n", cfg.Source)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tPORT\tURL")
	for _, e := range cfg.Endpoints {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", e.Name, e.Port, e.URL())
	}
	return tw.Flush()
}
