package main

import (
	"SMCHealth/utils"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// issueTokenCmd mints PASETO tokens for staff and citizens. Login flows live
// outside this service.
func issueTokenCmd() *cobra.Command {
	var (
		userID     string
		role       string
		hospitalID string
		expiry     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Issue an access token for a hospital user or a citizen",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := bootstrap()
			if err != nil {
				return err
			}
			switch role {
			case utils.RoleHospital:
				if hospitalID == "" {
					return errors.New("--hospital is required for hospital tokens")
				}
			case utils.RoleCitizen, utils.RoleAdmin:
			default:
				return errors.Errorf("unknown role %q", role)
			}

			tokens, err := utils.NewTokenManager(cfg.SymmetricKey)
			if err != nil {
				return err
			}
			token, err := tokens.GenerateToken(userID, role, hospitalID, expiry)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id carried by the token")
	cmd.Flags().StringVar(&role, "role", utils.RoleHospital, "hospital, citizen or admin")
	cmd.Flags().StringVar(&hospitalID, "hospital", "", "hospital id for staff tokens")
	cmd.Flags().DurationVar(&expiry, "expiry", utils.AccessTokenExpiry, "token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
