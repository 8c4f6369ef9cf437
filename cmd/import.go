package cmd

import (
	"context"

	"jadwalsholat_backend/internals/configs"
	database "jadwalsholat_backend/internals/databases"
	"jadwalsholat_backend/internals/helpers/apperr"
	"jadwalsholat_backend/internals/seeds"

	"github.com/spf13/cobra"
)

func newImportCmd(rt *runtime) *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import file dataset ke PostgreSQL atau MongoDB (upsert)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rt.cfg.DataFile
			if len(args) == 1 {
				path = args[0]
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			switch target {
			case configs.SourcePostgres:
				db, err := database.ConnectDB(rt.cfg, rt.log)
				if err != nil {
					return apperr.Upstream("import", err)
				}
				defer database.Close(db)
				res, err := seeds.RunAllSeeds(ctx, db, path, rt.log)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)

			case configs.SourceMongo:
				client, mdb, err := database.ConnectMongo(ctx, rt.cfg, rt.log)
				if err != nil {
					return apperr.Upstream("import", err)
				}
				defer client.Disconnect(context.Background())
				res, err := seeds.RunMongoSeeds(ctx, mdb, path, rt.log)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			}
			return apperr.InvalidInput("import", "--target must be postgres or mongo, got %q", target)
		},
	}
	cmd.Flags().StringVar(&target, "target", configs.SourcePostgres, "postgres | mongo")
	return cmd
}
