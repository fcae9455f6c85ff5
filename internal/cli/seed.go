package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Keoroanthony/go-crm/internal/db"
	"github.com/Keoroanthony/go-crm/internal/seed"
)

func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo customers and products",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := db.Open(a.cfg.Database)
			if err != nil {
				return err
			}

			res, err := seed.Run(cmd.Context(), conn)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d customers and %d products\n", res.Customers, res.Products)
			return nil
		},
	}
}
