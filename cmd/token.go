package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yungbote/emolit-backend/internal/app"
	"github.com/yungbote/emolit-backend/internal/services"
)

var tokenTTL time.Duration

var tokenCmd = &cobra.Command{
	Use:   "token [user-id]",
	Short: "Mint a bearer token signed with JWT_SECRET_KEY for local testing",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := uuid.New()
		if len(args) == 1 {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id: %w", err)
			}
			userID = id
		}

		log, err := app.NewLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		cfg := app.LoadConfig(log)
		auth, err := services.NewAuthService(log, services.AuthConfig{SecretKey: cfg.JWTSecretKey, Issuer: cfg.JWTIssuer})
		if err != nil {
			return err
		}
		tok, err := auth.IssueToken(userID, tokenTTL)
		if err != nil {
			return fmt.Errorf("sign token: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user_id=%s\n%s\n", userID, tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}
