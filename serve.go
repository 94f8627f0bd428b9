package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/anuptiwari/portfolio/internal/config"
	"github.com/anuptiwari/portfolio/internal/contact"
	"github.com/anuptiwari/portfolio/internal/content"
	"github.com/anuptiwari/portfolio/internal/live"
	"github.com/anuptiwari/portfolio/internal/store"
	"github.com/anuptiwari/portfolio/internal/telemetry"
	"github.com/anuptiwari/portfolio/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Start the HTTP server. All settings come from the environment (a .env file is loaded if present).`,
	RunE:  runServe,
}

var (
	serveHost string
	servePort string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serveHost, "host", "", "Interface to listen on (overrides HOST)")
	rootCmd.PersistentFlags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("host") {
		cfg.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTelEndpoint, version)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("Error flushing traces: %v", err)
		}
	}()

	source, err := content.NewSource(cfg.ContentPath)
	if err != nil {
		return errors.Wrap(err, "failed to load portfolio content")
	}

	db, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	sinks := []contact.Sink{db}
	if cfg.MailEnabled() {
		mailer, err := contact.NewMailer(cfg.SMTPConfig())
		if err != nil {
			return err
		}
		sinks = append(sinks, mailer)
	} else {
		log.Println("SMTP credentials not configured; contact messages are only stored")
	}

	hub := live.NewHub(live.Options{
		RotateInterval:  cfg.RotateInterval,
		ScrollThreshold: cfg.ScrollThreshold,
		SubmitDelay:     cfg.SubmitDelay,
		AttachTimeout:   cfg.AttachTimeout,
		MaxVisits:       cfg.MaxVisits,
		Sinks:           sinks,
	})

	server, err := web.New(web.Deps{
		Config:  cfg,
		Content: source,
		Hub:     hub,
		Store:   db,
		Sinks:   sinks,
	})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(ctx) })
	g.Go(func() error { return hub.Run(ctx) })
	g.Go(func() error { return server.RunMaintenance(ctx) })
	g.Go(func() error { return source.Watch(ctx) })

	err = g.Wait()
	log.Println("Server stopped")
	return err
}
