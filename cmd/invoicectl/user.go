package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type createUserOptions struct {
	Name     string
	Email    string
	Password string
}

// NewCreateUserCommand creates the create-user command. Without --password a
// random password is generated and printed once.
func NewCreateUserCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &createUserOptions{}

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a dashboard user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, dbConn, err := openService(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer dbConn.Close()

			user, err := svc.CreateUser(cmd.Context(), opts.Name, opts.Email, opts.Password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Email, user.ID)
			if opts.Password == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Password: %s\n", user.Password)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "display name")
	cmd.Flags().StringVar(&opts.Email, "email", "", "login email")
	cmd.Flags().StringVar(&opts.Password, "password", "", "login password, generated when empty")
	cmd.MarkFlagRequired("email")

	return cmd
}
