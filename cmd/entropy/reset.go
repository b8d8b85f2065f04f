package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear stored positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.configureHeadless()
			if err != nil {
				return err
			}
			if err := e.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "positions cleared")
			return nil
		},
	}
}
