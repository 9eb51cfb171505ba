package cmd

import (
	"context"
	"fmt"
	"net/http"

	"storefront/cart"
	"storefront/checkout"
	"storefront/config"
	"storefront/controllers"
	"storefront/events"
	"storefront/logger"
	"storefront/middleware"
	"storefront/models"
	"storefront/repository"
	"storefront/routes"
	"storefront/services"
	"storefront/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// app is the wired service graph.
type app struct {
	store     *repository.Store
	carts     cart.Store
	publisher events.Publisher
	metrics   *middleware.Metrics
	tokens    *utils.TokenManager

	products *services.ProductService
	orders   *services.OrderService
	settings *services.SettingsService
	auth     *services.AuthService
	stats    *services.StatsService
	checkout *checkout.Service

	closers []func(context.Context) error
}

// newApp opens the configured backends and builds the services on top.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}

	store, err := a.openStore(ctx, cfg)
	if err != nil {
		a.close(ctx)
		return nil, err
	}
	a.store = store

	if a.carts, err = a.openCarts(ctx, cfg); err != nil {
		a.close(ctx)
		return nil, err
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			a.close(ctx)
			return nil, err
		}
		a.publisher = publisher
	} else {
		a.publisher = events.NoopPublisher{}
	}

	secret := cfg.JWTSecret
	if secret == "" {
		if cfg.AppEnv == "production" {
			a.close(ctx)
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		secret = uuid.NewString()
		logger.Log.Warn("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}
	a.tokens = utils.NewTokenManager(secret, cfg.JWTTTL)

	storeInfo := models.StoreSettings{
		Name:    cfg.Store.Name,
		Email:   cfg.Store.Email,
		Phone:   cfg.Store.Phone,
		Address: cfg.Store.Address,
	}
	emails := utils.NewEmailService(newMailer(cfg), cfg.Store.Name, cfg.AdminNotifyEmail, cfg.TrackURL)

	a.metrics = middleware.NewMetrics("storefront")
	a.products = services.NewProductService(store.Products)
	a.orders = services.NewOrderService(store.Orders, emails, a.publisher)
	a.orders.CountPlaced(a.metrics.OrdersPlaced)
	a.settings = services.NewSettingsService(store.Settings, storeInfo)
	a.auth = services.NewAuthService(store.Users, a.tokens)
	a.stats = services.NewStatsService(store.Products, store.Orders)
	a.checkout = checkout.NewService(a.carts, a.orders)
	a.closers = append(a.closers, func(context.Context) error {
		a.orders.Wait()
		return a.publisher.Close()
	})
	return a, nil
}

func (a *app) openStore(ctx context.Context, cfg *config.Config) (*repository.Store, error) {
	if cfg.StoreDriver == "memory" {
		logger.Log.Warn("Using in-memory store; data is lost on restart")
		return repository.NewMemoryStore(), nil
	}

	client, err := repository.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client.Disconnect)

	db := client.Database(cfg.MongoDatabase)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		return nil, err
	}
	logger.Log.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))
	return repository.NewMongoStore(db), nil
}

func (a *app) openCarts(ctx context.Context, cfg *config.Config) (cart.Store, error) {
	if cfg.RedisAddr == "" {
		return cart.NewMemoryStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	a.closers = append(a.closers, func(context.Context) error { return client.Close() })
	logger.Log.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr))
	return cart.NewRedisStore(client, cfg.CartTTL), nil
}

func newMailer(cfg *config.Config) utils.Mailer {
	switch cfg.EmailProvider {
	case "postmark":
		return utils.NewPostmarkMailer(cfg.PostmarkToken, cfg.EmailSender)
	case "sendgrid":
		return utils.NewSendGridMailer(cfg.SendGridKey, cfg.EmailSender)
	default:
		return utils.LogMailer{}
	}
}

// handler mounts every route behind the request-scoped middleware.
func (a *app) handler(cfg *config.Config) http.Handler {
	router := mux.NewRouter()
	routes.RegisterRoutes(router, routes.Controllers{
		User:     controllers.NewUserController(a.auth),
		Product:  controllers.NewProductController(a.products),
		Cart:     controllers.NewCartController(a.carts, a.products),
		Order:    controllers.NewOrderController(a.orders, cfg.TrackURL),
		Checkout: controllers.NewCheckoutController(a.checkout, cfg.TrackURL),
		Settings: controllers.NewSettingsController(a.settings),
		Stats:    controllers.NewStatsController(a.stats),
	}, routes.Options{
		Auth:         a.auth,
		LoginLimiter: middleware.PerMinute(cfg.LoginRatePerMin),
		Metrics:      a.metrics,
	})

	cors := middleware.DefaultCORSOptions()
	cors.AllowedOrigins = cfg.AllowedOrigins

	var h http.Handler = router
	h = middleware.CORS(cors)(h)
	h = middleware.Recovery(h)
	h = middleware.RequestLogger(h)
	h = middleware.RequestID(h)
	return h
}

// seed fills an empty catalog, stores default settings and, when configured,
// the admin credential.
func (a *app) seed(ctx context.Context, cfg *config.Config) error {
	added, err := a.products.Seed(ctx)
	if err != nil {
		return err
	}
	logger.Log.Info("Catalog seeded", zap.Int("products_added", added))

	if _, err := a.settings.Get(ctx); err != nil {
		return err
	}

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logger.Log.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin account")
		return nil
	}
	if _, err := a.auth.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, "Store Admin"); err != nil {
		return err
	}
	logger.Log.Info("Admin account ready", zap.String("email", cfg.AdminEmail))
	return nil
}

// close releases backends in reverse order of opening.
func (a *app) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			logger.Log.Warn("Shutdown step failed", zap.Error(err))
		}
	}
	a.closers = nil
}
