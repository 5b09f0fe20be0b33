package main

import (
	"github.com/shahrzads/ml-application-test-master/internal/api"
	"github.com/shahrzads/ml-application-test-master/internal/api/handlers"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context(), e.cfg, e.log)
			if err != nil {
				return err
			}
			defer a.Close()

			memberHandler := handlers.NewMemberHandler(a.offers, e.log)
			server := api.SetupRouter(memberHandler, e.log)
			server.Server().ReadTimeout = e.cfg.Server.ReadTimeout
			server.Server().WriteTimeout = e.cfg.Server.WriteTimeout

			errCh := make(chan error, 1)
			go func() {
				addr := ":" + e.cfg.Server.Port
				e.log.Info("Server starting", zap.String("address", addr))
				errCh <- server.Listen(addr)
			}()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
			}

			e.log.Info("Shutting down server")
			return server.Shutdown()
		},
	}
}
