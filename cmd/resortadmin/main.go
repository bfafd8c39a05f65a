// Package main runs the resort admin dashboard server.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/eliteresort/resortadmin/internal/apiclient"
	"github.com/eliteresort/resortadmin/internal/config"
	"github.com/eliteresort/resortadmin/internal/dashboard"
	"github.com/eliteresort/resortadmin/internal/resources"
	"github.com/eliteresort/resortadmin/internal/session"
	"github.com/eliteresort/resortadmin/internal/web"
)

var version = "0.3.0"

func main() {
	var cfgPath string

	root := &cobra.Command{
		Use:          "resortadmin",
		Short:        "Admin dashboard for the resort booking backend",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfgPath)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for the local admin fallback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("resortadmin %s\n", version)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	kv, err := sessionBackend(cfg.Session)
	if err != nil {
		return err
	}
	store := session.NewStore(kv)

	sweeper, err := session.NewSweeper(store, "@every 1m")
	if err != nil {
		return err
	}
	sweeper.Start()
	defer sweeper.Stop()

	client := apiclient.New(apiclient.Options{
		BaseURL:   cfg.API.BaseURL,
		LoginPath: cfg.API.LoginEndpoint(),
		Session:   store,
		Timeout:   cfg.API.Timeout,
		OnUnauthorized: func() {
			log.Printf("session invalidated by backend 401")
		},
		Registerer: prometheus.DefaultRegisterer,
	})

	users := resources.NewUsersClient(client, &cfg.API)
	rooms := resources.NewRoomsClient(client, &cfg.API)

	server := web.New(web.Deps{
		Config:   cfg,
		Session:  store,
		Auth:     resources.NewAuthClient(client, store, cfg),
		Users:    users,
		Rooms:    rooms,
		Contacts: resources.NewContactsClient(client, &cfg.API),
		Bookings: resources.NewBookingsClient(client, &cfg.API),
		Metrics:  dashboard.New(users, rooms),
	})

	log.Printf("resortadmin %s listening on %s (backend %s)", version, cfg.ListenAddr, cfg.API.BaseURL)
	return server.Run()
}

func sessionBackend(cfg config.SessionConfig) (session.KV, error) {
	switch cfg.Backend {
	case "", "memory":
		return session.NewMemoryKV(), nil
	case "file":
		path := cfg.FilePath
		if path == "" {
			path = "resortadmin-session.json"
		}
		return session.NewFileKV(path), nil
	case "redis":
		return session.NewRedisKV(redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}
