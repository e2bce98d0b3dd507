package main

import (
	"github.com/etnz/pkgindex/deb"
	"github.com/spf13/cobra"
)

func (a *app) formatsCommand() *cobra.Command {
	var (
		output string
		pretty bool
	)
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the supported input formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return encode(cmd.OutOrStdout(), deb.Formats(), output, pretty)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output encoding: json or yaml")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", true, "Indent the JSON output")
	return cmd
}
