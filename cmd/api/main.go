package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/cart"
	"storefront/internal/handler"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/infra/token"
	"storefront/internal/logger"
	"storefront/internal/middleware"
	"storefront/internal/server"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// timerScheduler runs payment completions on runtime timers.
type timerScheduler struct{}

func (s *timerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Coffee storefront session API",
	Long: `Serves the coffee catalog, per-session carts and the mock checkout and
login flows over HTTP. Running without a subcommand is the same as "serve".`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, catalogCmd)
}

func main() {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "load .env:", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.GoEnv)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	//Repository
	products, err := infraRepo.NewProductRepositoryFromFile(cfg.CatalogPath)
	if err != nil {
		return err
	}

	//parts shared by the usecases
	idGen := &uuidGenerator{}
	clock := &realClock{}
	carts := infraRepo.NewCartMemoryRepository(infraRepo.WithExpiry(cfg.SessionTTL, clock))
	engine := cart.NewEngine(idGen)
	tokens := token.NewJWT(cfg.SessionSecret, cfg.SessionTTL)
	forms := validator.NewSubmitValidator()
	cookies := middleware.CookieWriter{Secure: cfg.CookieSecure}

	//Usecase
	productUC := usecase.NewProductUsecase(products)
	cartUC := usecase.NewCartUsecase(carts, products, engine)
	checkoutUC := usecase.NewCheckoutUsecase(carts, engine, forms, &timerScheduler{}, cfg.PaymentDelay, log)
	authUC := usecase.NewAuthUsecase(tokens, forms, clock)

	e := server.New(server.Deps{
		Config: cfg,
		Log:    log,
		Tokens: tokens,
		IDs:    idGen,
		Clock:  clock,
		Handlers: server.Handlers{
			Product:  handler.NewProductHandler(productUC),
			Cart:     handler.NewCartHandler(cartUC),
			Checkout: handler.NewCheckoutHandler(checkoutUC),
			Auth:     handler.NewAuthHandler(authUC, cookies),
			Session:  handler.NewSessionHandler(),
		},
	})

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("storefront starting",
		zap.String("env", cfg.GoEnv),
		zap.Duration("payment_delay", cfg.PaymentDelay),
	)
	return server.Start(ctx, e, cfg.Addr(), log)
}

func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
