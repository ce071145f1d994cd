package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"

	"github.com/oaiiae/contactbook/cli/api"
	"github.com/oaiiae/contactbook/cli/client"
	"github.com/oaiiae/contactbook/cli/logger"
	"github.com/oaiiae/contactbook/query"
)

const title = "Contact Book"

var (
	version  = "dev" //nolint: gochecknoglobals // set by -ldflags
	revision = ""    //nolint: gochecknoglobals // set by -ldflags
	created  = ""    //nolint: gochecknoglobals // set by -ldflags
)

// Options for the CLI. Pass `--api` or set the `SERVICE_API` env var.
type Options struct {
	client.APIOptions
	logger.Options
	api.ServerOptions
	api.RouterOptions
}

func main() {
	var (
		options *Options
		log     *slog.Logger
	)
	newApp := func(out io.Writer) (*client.App, error) {
		return client.NewApp(&options.APIOptions, log, out)
	}

	cli := humacli.New(func(hooks humacli.Hooks, o *Options) {
		options = o
		log = logger.NewWithOutput(&o.Options, os.Stderr)
		hooks.OnStart(func() {
			app, err := newApp(os.Stdout)
			if err == nil {
				err = app.List(context.Background(), client.Filter{}, 1, query.DefaultPageSize)
				app.LogMetrics(context.Background())
			}
			if err != nil {
				log.Error("could not list contacts", "err", err)
				os.Exit(1)
			}
		})
	})

	root := cli.Root()
	root.Use = "contactbook"
	root.Short = "Manage contacts and groups through the contacts API"
	root.Version = version
	root.SilenceUsage = true
	root.AddCommand(client.Commands(newApp)...)
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve an in-memory contacts API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), options, log)
		},
	})
	cli.Run()
}

func serve(ctx context.Context, options *Options, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := api.NewServer(&options.ServerOptions,
		api.NewRouter(&options.RouterOptions, api.NewStores(options.Seed), title, version, revision, created, logger),
		logger,
	)

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("could not shutdown the server", "err", err)
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server closed")
	return nil
}
