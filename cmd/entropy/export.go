package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/entropy"
)

func newExportCmd(opts *options) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored positions to " + entropy.ExportFileName,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.configureHeadless()
			if err != nil {
				return err
			}
			e.SetDownloader(entropy.FileDownloader{Dir: dir})
			if err := e.Export(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d spawners and %d targets\n",
				len(e.Spawners()), len(e.Targets()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "out", "o", ".", "output directory")
	return cmd
}
