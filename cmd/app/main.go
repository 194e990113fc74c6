package main

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/selvakumar-dev/shopkart-backend/internal/bank"
	"github.com/selvakumar-dev/shopkart-backend/internal/cart"
	"github.com/selvakumar-dev/shopkart-backend/internal/config"
	"github.com/selvakumar-dev/shopkart-backend/internal/database"
	"github.com/selvakumar-dev/shopkart-backend/internal/order"
	"github.com/selvakumar-dev/shopkart-backend/internal/payment"
	"github.com/selvakumar-dev/shopkart-backend/internal/product"
	"github.com/selvakumar-dev/shopkart-backend/internal/user"
	"github.com/selvakumar-dev/shopkart-backend/internal/wishlist"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	log.Logger = logger

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not connect to database")
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		logger.Fatal().Err(err).Msg("could not ensure schema")
	}
	if err := database.SeedBanks(db); err != nil {
		logger.Fatal().Err(err).Msg("could not seed bank accounts")
	}
	if err := database.SeedProducts(db); err != nil {
		logger.Fatal().Err(err).Msg("could not seed products")
	}

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(requestLogger(logger))

	userHandler := user.NewHandler(user.NewService(user.NewPostgresRepository(db)))

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	cartService := cart.NewService(cart.NewPostgresRepository(db), productService)
	cartHandler := cart.NewHandler(cartService)

	ledger := bank.NewService(bank.NewPostgresRepository(db))

	orderService := order.NewService(order.NewPostgresRepository(db), cartService, ledger,
		logger.With().Str("component", "orders").Logger())
	orderHandler := order.NewHandler(orderService)

	paymentHandler := payment.NewHandler(ledger, orderService)

	wishlistHandler := wishlist.NewHandler(wishlist.NewService(wishlist.NewPostgresRepository(db), productService))

	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	paymentHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	paymentHandler.RegisterProtectedRoutes(app)
	wishlistHandler.RegisterProtectedRoutes(app)

	logger.Info().Str("addr", cfg.Addr).Msg("listening")
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func requestLogger(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info().
			Str("method", c.Method()).
			Str("path", c.OriginalURL()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}
