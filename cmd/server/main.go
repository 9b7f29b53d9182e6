package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/billed/internal/auth"
	"github.com/mmynk/billed/internal/config"
	"github.com/mmynk/billed/internal/i18n"
	"github.com/mmynk/billed/internal/metrics"
	"github.com/mmynk/billed/internal/middleware"
	"github.com/mmynk/billed/internal/service"
	"github.com/mmynk/billed/internal/storage"
	"github.com/mmynk/billed/internal/storage/sqlite"
	"github.com/mmynk/billed/internal/web"
	"github.com/mmynk/billed/pkg/billsapi"
	"github.com/mmynk/billed/pkg/logging"
)

func main() {
	flags := pflag.NewFlagSet("billed", pflag.ExitOnError)
	configPath := flags.String("config", "", "path to a YAML config file")
	flags.Int("port", 8080, "HTTP listen port")
	flags.String("db", "./data/bills.db", "SQLite database path")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.String("log-format", "text", "text or json")
	flags.String("locale", "fr", "default display locale")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	if cfg.Auth.JWTSecret == "" {
		slog.Error("auth.jwt_secret is required (BILLED_AUTH_JWT_SECRET)")
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	if err := bootstrapAdmin(context.Background(), cfg, store); err != nil {
		slog.Error("Failed to create admin account", "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler := newHandler(cfg, store, reg)

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := cfg.Server.Addr()
	slog.Info("Server starting", "address", addr, "locale", i18n.ParseLocale(cfg.Locale).String())
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// bootstrapAdmin creates the configured admin account. The public Register
// RPC only creates employees, so this is how the first admin appears.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, store storage.Store) error {
	if cfg.Auth.AdminEmail == "" {
		return nil
	}
	created, err := auth.NewPasswordAuthenticator(store).EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		slog.Info("Admin account created", "email", cfg.Auth.AdminEmail)
	}
	return nil
}

// newHandler mounts the Connect services, the web endpoints and /metrics.
func newHandler(cfg *config.Config, store storage.Store, reg *prometheus.Registry) http.Handler {
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	m := metrics.New(reg)

	// RequireAuth runs first so the logging interceptor sees the user id.
	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager, billsapi.PublicProcedures),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()

	billPath, billHandler := billsapi.NewBillServiceHandler(service.NewBillService(store), interceptors)
	mux.Handle(billPath, billHandler)

	authService := service.NewAuthService(auth.NewPasswordAuthenticator(store), store, jwtManager, slog.Default())
	authPath, authHandler := billsapi.NewAuthServiceHandler(authService, interceptors)
	mux.Handle(authPath, authHandler)

	bills := web.NewHandler(store,
		web.WithLocale(i18n.ParseLocale(cfg.Locale)),
		web.WithMetrics(m),
	)
	mux.Handle("/employee/", bills.Routes(jwtManager))

	mux.Handle("GET /metrics", metrics.Handler(reg))

	return middleware.Logging(middleware.CORS(mux))
}
