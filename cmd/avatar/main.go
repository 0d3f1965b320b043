package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"avatar/internal/anim"
	"avatar/internal/avatar"
	"avatar/internal/config"
	"avatar/internal/export"
	"avatar/internal/logging"
	"avatar/internal/option"
	"avatar/internal/session"
	"avatar/internal/web"
)

const shutdownTimeout = 10 * time.Second

type rootFlags struct {
	config   string
	listen   string
	logLevel string
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var f rootFlags
	cmd := &cobra.Command{
		Use:          "avatar",
		Short:        "Avatar studio",
		Long:         "Avatar studio: build a cartoon avatar in the browser and export it as SVG, PNG, GIF or PDF",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&f.config, "config", "c", "avatar.yaml", "path to config file")
	cmd.PersistentFlags().StringVar(&f.listen, "listen", "", "listen address, overrides the config file")
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "log level, overrides the config file")

	cmd.AddCommand(serveCommand(&f), exportCommand(&f))
	return cmd
}

// load reads the config file and applies the command line overrides.
func (f *rootFlags) load() (*config.Config, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return nil, err
	}
	if f.listen != "" {
		cfg.Listen = f.listen
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	logging.Setup(cfg.LogLevel)
	return cfg, nil
}

func serveCommand(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web studio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load()
			if err != nil {
				return err
			}
			tmpl, err := web.ParseTemplates(cfg.Templates)
			if err != nil {
				return err
			}

			srv := &web.Server{
				Store:    session.NewMemoryStore[*avatar.Avatar](),
				Tmpl:     tmpl,
				Defaults: cfg.Props(),
				Export:   cfg.ExportOptions(),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go srv.Expire(ctx, cfg.SessionIdle.Duration(), time.Minute)

			httpServer := &http.Server{
				Addr:              cfg.Listen,
				Handler:           srv.Routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			go func() {
				<-ctx.Done()
				log.Info().Msg("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				_ = httpServer.Shutdown(shutdownCtx)
			}()

			log.Info().Str("addr", cfg.Listen).Msg("listening")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("error running http server")
			}
			return nil
		},
	}
}

func exportCommand(f *rootFlags) *cobra.Command {
	var (
		format string
		out    string
		width  int
		title  string
		set    []string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write an avatar file without starting the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load()
			if err != nil {
				return err
			}
			fm, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			p := cfg.Props()
			for _, kv := range set {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					return errors.Errorf("--set %q: expected key=value", kv)
				}
				p.Values[option.Key(k)] = v
			}

			frames := export.Frames(p, nil)
			if fm.Animated() {
				seq := p.Anim.HoverSequence
				if len(seq) == 0 {
					seq = anim.DefaultHoverSequence
				}
				frames = export.Frames(p, seq)
			}
			opts := cfg.ExportOptions()
			if width > 0 {
				opts.Width = width
			}
			opts.Title = title

			if out == "" {
				out = "avatar." + string(fm)
			}
			file, err := os.Create(out)
			if err != nil {
				return errors.Wrap(err, "create output")
			}
			if err := export.Write(file, fm, frames, opts); err != nil {
				_ = file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			log.Info().Str("file", out).Str("format", string(fm)).Int("frames", len(frames)).Msg("exported")
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, png, gif or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, defaults to avatar.<format>")
	cmd.Flags().IntVar(&width, "width", 0, "output width, defaults to the config file")
	cmd.Flags().StringVar(&title, "title", "", "caption printed under each PDF frame")
	cmd.Flags().StringArrayVar(&set, "set", nil, "option value as key=value, e.g. --set topType=Hat")
	return cmd
}
