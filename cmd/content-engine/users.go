// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/content-engine/internal/credstore"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage the accounts allowed to log in to the server",
}

var usersAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Create a user or replace its password",
	Long: `Add stores the password given with --password, or read from the first line
of stdin when the flag is absent.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordArg(cmd)
		if err != nil {
			return err
		}
		store, err := openUserStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Put(cmd.Context(), args[0], password); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved user %s\n", args[0])
		return nil
	},
}

var usersCheckCmd = &cobra.Command{
	Use:   "check <username>",
	Short: "Verify a username and password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordArg(cmd)
		if err != nil {
			return err
		}
		store, err := openUserStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.CheckLogin(cmd.Context(), args[0], password); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List usernames",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openUserStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		names, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Remove a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openUserStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %s\n", args[0])
		return nil
	},
}

func openUserStore(cmd *cobra.Command) (*credstore.Store, error) {
	path, _ := cmd.Flags().GetString("users-db")
	if path == "" {
		path = viper.GetString("server.users_db")
	}
	if path == "" {
		return nil, errors.New("no user store: set server.users_db or --users-db")
	}
	return credstore.Open(path)
}

func passwordArg(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("password"); p != "" {
		return p, nil
	}
	return readPassword(cmd.InOrStdin())
}

// readPassword returns the first line of r.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("password is required (--password or stdin)")
	}
	return line, nil
}

func init() {
	usersCmd.PersistentFlags().String("users-db", "", "user store path (default from config)")
	usersAddCmd.Flags().String("password", "", "password (read from stdin when absent)")
	usersCheckCmd.Flags().String("password", "", "password (read from stdin when absent)")

	usersCmd.AddCommand(usersAddCmd, usersCheckCmd, usersListCmd, usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}
