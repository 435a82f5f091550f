// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/content-engine/internal/credstore"
	"github.com/pdiddy/content-engine/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pipeline over HTTP",
	Long: `Serve accepts POST / with a JSON body whose "task" field is one of login,
get_title_suggestions, generate_outline, refine_outline, or generate_article.
Results are returned as JSON; failures as {"error": "..."}. Login checks the
user store managed with "content-engine users"; with server.users_db set to
"" the login task answers 503.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		cfg := a.cfg.Server
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		if db, _ := cmd.Flags().GetString("users-db"); db != "" {
			cfg.UsersDB = db
		}

		auth, closeAuth, err := openAuthenticator(cfg.UsersDB)
		if err != nil {
			return err
		}
		defer closeAuth()
		if auth == nil {
			a.log.Warn().Msg("server.users_db is empty, login disabled")
		}

		return server.New(a.pipeline, auth, cfg, a.log).Run(cmd.Context())
	},
}

// openAuthenticator opens the user store at path. An empty path disables
// login and yields a nil Authenticator.
func openAuthenticator(path string) (server.Authenticator, func() error, error) {
	if path == "" {
		return nil, func() error { return nil }, nil
	}
	store, err := credstore.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().String("users-db", "", "user store path (default from config)")

	rootCmd.AddCommand(serveCmd)
}
