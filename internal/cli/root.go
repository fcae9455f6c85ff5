// Package cli wires configuration, storage and jobs into the crm command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	config "github.com/Keoroanthony/go-crm/configs"
)

type app struct {
	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "crm",
		Short:         "Customer relationship management backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			return nil
		},
	}

	root.AddCommand(
		a.serveCmd(),
		a.schedulerCmd(),
		a.jobCmd(),
		a.seedCmd(),
	)
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}
