package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/sqlkit/cli/internal/ui"
	"github.com/satishbabariya/sqlkit/runtime/client"
)

var execCmd = &cobra.Command{
	Use:   "exec <file.yaml>",
	Short: "Run query documents against the configured database",
	Long: `Compile every query document in a YAML file and run them, in order,
inside one transaction against database_url. SELECT statements and
statements with RETURNING print their rows; others print the number of
affected rows. Any failure rolls the whole file back.`,
	Args: cobra.ExactArgs(1),
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	if cfg.DatabaseURL == "" {
		return errors.New("database_url is not set (config file, SQLKIT_DATABASE_URL or DATABASE_URL)")
	}
	queries, err := loadQueries(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	c, err := client.Open(ctx, cfg.Client())
	if err != nil {
		return err
	}
	defer c.Close()
	c.Use(client.LoggingMiddleware(nil))

	out := ui.New(cmd.OutOrStdout())
	err = c.Transaction(ctx, nil, func(tx *client.Tx) error {
		for _, nq := range queries {
			out.Section(nq.label)
			if returnsRows(nq.query) {
				rows, err := tx.Query(ctx, nq.query)
				if err != nil {
					return err
				}
				if err := out.Rows(rows); err != nil {
					return err
				}
				continue
			}

			res, err := tx.Exec(ctx, nq.query)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				out.Success("done")
				continue
			}
			out.Success("%d row(s) affected", n)
		}
		return nil
	})
	if err != nil {
		return err
	}
	out.Success("%d statement(s) committed", len(queries))
	return nil
}
