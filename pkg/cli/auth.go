package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/matt-steen/zenith/pkg/session"
)

var (
	authName     string
	authEmail    string
	authPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		result, err := client.Login(cmd.Context(), authEmail, authPassword)
		if err != nil {
			return err
		}

		return adoptSession(cmd, result.Token, session.User{
			ID:    result.UserID,
			Name:  result.User.Name,
			Email: result.User.Email,
			Role:  result.User.Role,
		})
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and persist the session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		result, err := client.Register(cmd.Context(), authName, authEmail, authPassword)
		if err != nil {
			return err
		}

		if result.Token == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "account created; run 'zenith login'")

			return nil
		}

		return adoptSession(cmd, result.Token, session.User{
			ID:    result.UserID,
			Name:  result.User.Name,
			Email: result.User.Email,
			Role:  result.User.Role,
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := store.Clear(); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "logged out")

		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&authEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVar(&authName, "name", "", "display name")
	registerCmd.Flags().StringVar(&authEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&authPassword, "password", "", "account password")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
}

func adoptSession(cmd *cobra.Command, token string, user session.User) error {
	sess := &session.Session{Token: token, User: user}

	if err := store.Save(sess); err != nil {
		return err
	}

	client.SetSession(token, user.ID)

	log.Info().Str("user", user.Email).Msg("session saved")
	fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", user.Email)

	return nil
}
