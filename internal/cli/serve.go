package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/Keoroanthony/go-crm/internal/auth"
	"github.com/Keoroanthony/go-crm/internal/db"
	"github.com/Keoroanthony/go-crm/internal/handlers"
	"github.com/Keoroanthony/go-crm/internal/notifier"
	"github.com/Keoroanthony/go-crm/internal/store"
)

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the query/mutation API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			conn, err := db.Open(a.cfg.Database)
			if err != nil {
				return err
			}

			n, err := a.notifier(ctx)
			if err != nil {
				return err
			}
			var orderNotifier handlers.OrderNotifier
			if n.Enabled() {
				orderNotifier = n
			}

			routerCfg := handlers.RouterConfig{
				Resolver:      handlers.NewResolver(store.New(conn), orderNotifier),
				SessionSecret: a.cfg.SessionSecret,
			}
			if a.cfg.OIDC.Enabled() {
				authn, err := auth.New(ctx, a.cfg.OIDC, a.cfg.API.Key, conn)
				if err != nil {
					return err
				}
				routerCfg.Auth = authn
			}

			log.Printf("Listening on %s", a.cfg.HTTPAddr)
			if err := handlers.NewRouter(routerCfg).Run(a.cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("server stopped: %w", err)
			}
			return nil
		},
	}
}

func (a *app) notifier(ctx context.Context) (*notifier.Notifier, error) {
	email, err := notifier.NewEmailSender(ctx, a.cfg.Email)
	if err != nil {
		return nil, err
	}
	sms := notifier.NewSMSSender(a.cfg.AfricaTalking, nil)
	return notifier.New(email, sms), nil
}
