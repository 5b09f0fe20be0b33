package main

import (
	"fmt"

	"github.com/shahrzads/ml-application-test-master/internal/repository"
	"github.com/shahrzads/ml-application-test-master/pkg/postgres"

	"github.com/spf13/cobra"
)

func importCmd(e *env) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy a transaction CSV into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = e.cfg.Source.CSVPath
			}

			raw, err := repository.NewCSVTransactionRepository(path, e.log).ReadRaw(cmd.Context())
			if err != nil {
				return err
			}

			db, err := postgres.NewPool(cmd.Context(), e.cfg.Database.URL(), e.log)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := repository.NewTransactionRepository(db, e.log).Import(cmd.Context(), raw)
			if err != nil {
				return fmt.Errorf("failed to import %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d transactions from %s\n", n, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "CSV file (defaults to SOURCE_CSV_PATH)")
	return cmd
}
