// Command taskboard runs the project/task tracking server.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/kidandcat/taskboard/internal/api"
	"github.com/kidandcat/taskboard/internal/config"
	"github.com/kidandcat/taskboard/internal/seed"
	"github.com/kidandcat/taskboard/internal/store"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "Taskboard - multi-user project and task tracking",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")
	rootCmd.AddCommand(serveCmd, seedCmd, migrateCmd)
}

func openStore() (*config.Config, *store.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, st, nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		// Sync configured admin emails before accepting traffic.
		for _, email := range cfg.AdminEmails {
			if email == "" {
				continue
			}
			if _, err := st.EnsureAdmin(email); err != nil {
				return fmt.Errorf("sync admin %s: %w", email, err)
			}
			log.Printf("Admin user: %s", email)
		}

		if err := st.DeleteExpiredSessions(); err != nil {
			log.Printf("prune sessions: %v", err)
		}

		server := api.NewServer(st, cfg)
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Taskboard running on %s", addr)
		return http.ListenAndServe(addr, server.Handler())
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with development data",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		return seed.Run(st)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, err := openStore()
		if err != nil {
			return err
		}
		return st.Close()
	},
}
