package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"floorten/internal/audit"
	"floorten/internal/booking"
	"floorten/internal/bot"
	"floorten/internal/config"
	"floorten/internal/events"
	"floorten/internal/metrics"
	"floorten/internal/store"
	"floorten/internal/web"
)

func main() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("FLOORTEN_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	if cfg.Telegram.BotToken == "" || cfg.Telegram.BotToken == "YOUR_BOT_TOKEN_HERE" {
		logger.Fatal().Msg("set telegram.bot_token in config")
	}

	st, err := store.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("open store error")
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := events.NewBus()

	engine, err := booking.New(ctx, st, booking.Config{
		Hours:          booking.BusinessHours{Open: cfg.Hours.Open, Close: cfg.Hours.Close},
		LockTimeout:    cfg.LockTimeout(),
		MaxSuggestions: cfg.Booking.MaxSuggestions,
	}, bus, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("load room catalog error")
	}

	if cfg.Audit.Enabled {
		trail, err := audit.New(cfg.Audit.Path, &logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("open audit trail error")
		}
		defer trail.Close()
		trail.Attach(bus)
	}

	b, err := bot.New(cfg.Telegram.BotToken, cfg.Telegram.Debug, engine, cfg.Managers, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("create bot error")
	}

	statusSrv := web.New(cfg.Monitoring.StatusPort, bus, nil, &logger)
	go statusSrv.Run(ctx)

	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	logger.Info().Str("backend", cfg.Store.Backend).Msg("room booking bot started")
	b.Start(ctx)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
