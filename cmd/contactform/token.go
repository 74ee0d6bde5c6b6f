package main

import (
	"fmt"
	"time"

	"contact-service/internal/auth"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newAdminTokenCmd(v *viper.Viper) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "admin-token",
		Short: "Issue a bearer token for the admin API",
		Long: `Issue an HS256 bearer token for /admin/submissions signed with the
server's auth.jwt_secret (env JWT_SECRET).

Examples:
  JWT_SECRET=... contactform admin-token --subject owner --ttl 1h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := auth.IssueAdminToken(v.GetString("jwt_secret"), subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("secret", "", "signing secret (env JWT_SECRET)")
	flags.StringVar(&subject, "subject", "admin", "token subject")
	flags.DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")

	_ = v.BindPFlag("jwt_secret", flags.Lookup("secret"))
	_ = v.BindEnv("jwt_secret", "JWT_SECRET")

	return cmd
}
