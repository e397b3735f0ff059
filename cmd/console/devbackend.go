package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/hospital-console/internal/config"
	"github.com/jwalitptl/hospital-console/internal/devbackend"
	"github.com/jwalitptl/hospital-console/internal/model"
	"github.com/jwalitptl/hospital-console/pkg/logger"
)

func devBackendCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "devbackend",
		Short: "Run an in-memory backend for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

			dc := cfg.DevBackend
			if dc.AdminPassword == "" {
				return errors.New("devbackend.admin_password is required (CONSOLE_DEVBACKEND_ADMIN_PASSWORD)")
			}
			if dc.JWTSecret == "" {
				secret := make([]byte, 32)
				if _, err := rand.Read(secret); err != nil {
					return fmt.Errorf("failed to generate jwt secret: %w", err)
				}
				dc.JWTSecret = hex.EncodeToString(secret)
				log.Warn().Msg("no devbackend.jwt_secret set; tokens will not survive a restart")
			}

			dev, err := devbackend.New(devbackend.Config{
				JWTSecret:     dc.JWTSecret,
				TokenTTL:      dc.TokenTTL,
				AdminUsername: dc.AdminUsername,
				AdminPassword: dc.AdminPassword,
				AdminBranch:   model.Branch(dc.AdminBranch),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:    fmt.Sprintf(":%d", dc.Port),
				Handler: dev.Handler(),
			}
			log.Info().Str("addr", srv.Addr).Str("admin", dc.AdminUsername).Msg("dev backend listening")
			return run(ctx, srv)
		},
	}
}
