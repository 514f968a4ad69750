package cli

import (
	"Backend-Schoolhub/src/database"
	"Backend-Schoolhub/src/seeder"

	"github.com/spf13/cobra"
)

func newSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create a demo school with one account per principal kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := bootstrap(ctx, *configPath); err != nil {
				return err
			}
			defer shutdown()

			if err := database.EnsureIndexes(ctx, database.DB); err != nil {
				return err
			}
			created, err := seeder.SeedDemo(ctx, database.DB, seeder.Demo())
			if err != nil {
				return err
			}
			seeder.PrintGeneratedPasswords(cmd.OutOrStdout(), created)
			return nil
		},
	}
}
