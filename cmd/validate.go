package cmd

import (
	"jadwalsholat_backend/internals/features/prayers/schedules/repository"

	"github.com/spf13/cobra"
)

func newValidateCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validasi file dataset (struktur + invariant) tanpa menulis apa pun",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rt.cfg.DataFile
			if len(args) == 1 {
				path = args[0]
			}
			ds, err := repository.LoadDataset(path)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"file":  path,
				"valid": true,
				"stats": ds.Stats(),
			})
		},
	}
}
