package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/vibeoutfit-backend/api/controllers"
	admincontrollers "github.com/angelmondragon/vibeoutfit-backend/api/controllers/admin"
	cartcontrollers "github.com/angelmondragon/vibeoutfit-backend/api/controllers/cart"
	ordercontrollers "github.com/angelmondragon/vibeoutfit-backend/api/controllers/orders"
	"github.com/angelmondragon/vibeoutfit-backend/api/middleware"
	"github.com/angelmondragon/vibeoutfit-backend/internal/admin"
	"github.com/angelmondragon/vibeoutfit-backend/internal/auth"
	"github.com/angelmondragon/vibeoutfit-backend/internal/cart"
	"github.com/angelmondragon/vibeoutfit-backend/internal/catalog"
	"github.com/angelmondragon/vibeoutfit-backend/internal/checkout"
	"github.com/angelmondragon/vibeoutfit-backend/internal/navigation"
	"github.com/angelmondragon/vibeoutfit-backend/internal/orders"
	"github.com/angelmondragon/vibeoutfit-backend/internal/reviews"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/auth/session"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/config"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/enums"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/logger"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/metrics"
	pkgredis "github.com/angelmondragon/vibeoutfit-backend/pkg/redis"
)

// RedisStore is the Redis surface the HTTP layer needs: health, rate limits
// and idempotency records. *redis.Client satisfies it.
type RedisStore interface {
	pkgredis.IdempotencyStore
	Ping(context.Context) error
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// Dependencies are the services and clients the router wires into handlers.
// A nil Redis disables rate limiting and idempotency.
type Dependencies struct {
	DB          controllers.Pinger
	Redis       RedisStore
	Sessions    session.AccessSessionChecker
	HTTPMetrics *metrics.HTTPMetrics

	Auth       auth.Service
	Navigation navigation.Service
	Catalog    catalog.Service
	Reviews    reviews.Service
	Cart       cart.Service
	Checkout   checkout.Service
	Orders     orders.Service
	Admin      *admin.Service
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	var (
		rateStore interface {
			IncrWithTTL(context.Context, string, time.Duration) (int64, error)
		}
		idempotencyStore pkgredis.IdempotencyStore
	)
	pingers := map[string]controllers.Pinger{}
	if deps.DB != nil {
		pingers["db"] = deps.DB
	}
	if deps.Redis != nil {
		rateStore = deps.Redis
		idempotencyStore = deps.Redis
		pingers["redis"] = deps.Redis
	}

	authenticate := middleware.Auth(cfg.JWT, deps.Sessions, logg)
	idempotent := middleware.Idempotency(idempotencyStore, cfg.Checkout.IdempotencyTTL, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, rateStore, logg)).Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.With(authenticate).Post("/logout", controllers.AuthLogout(deps.Auth, logg))
		r.With(authenticate).Get("/me", controllers.AuthMe(deps.Auth, logg))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
		mountAdmin(r, deps, logg)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/navigation", controllers.Navigation(deps.Navigation, logg))
		r.Get("/hero-section", controllers.HeroSection(deps.Navigation, logg))

		r.Get("/categories", controllers.TopCategories(deps.Catalog, logg))
		r.Get("/categories/all", controllers.CategoryTree(deps.Catalog, logg))
		r.Get("/categories/{slug}/products", controllers.CategoryProducts(deps.Catalog, logg))

		r.Get("/products/featured", controllers.FeaturedProducts(deps.Catalog, logg))
		r.Get("/products/new-arrivals", controllers.NewArrivals(deps.Catalog, logg))
		r.Get("/products/{slug}", controllers.ProductDetail(deps.Catalog, logg))
		r.Get("/products/{slug}/reviews", controllers.ProductReviews(deps.Reviews, logg))

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/products/{slug}/reviews", controllers.CreateReview(deps.Reviews, logg))

			r.With(idempotent).Post("/cart/add", cartcontrollers.Add(deps.Cart, logg))
			r.Get("/cart", cartcontrollers.List(deps.Cart, logg))
			r.Patch("/cart_item/{id}", cartcontrollers.UpdateItem(deps.Cart, logg))
			r.Delete("/cart_item/{id}/delete", cartcontrollers.RemoveItem(deps.Cart, logg))

			r.Get("/orders", ordercontrollers.List(deps.Orders, logg))
			r.With(idempotent).Post("/orders", ordercontrollers.Place(deps.Checkout, logg))
			r.Get("/orders/{id}", ordercontrollers.Detail(deps.Orders, logg))
		})
	})

	return r
}

func mountAdmin(r chi.Router, deps Dependencies, logg *logger.Logger) {
	svc := deps.Admin
	if svc == nil {
		svc = &admin.Service{}
	}

	r.Route("/logos", func(r chi.Router) { admincontrollers.MountResource(r, svc.Logos, logg) })
	r.Route("/nav-options", func(r chi.Router) { admincontrollers.MountResource(r, svc.NavOptions, logg) })
	r.Route("/nav-buttons", func(r chi.Router) { admincontrollers.MountResource(r, svc.NavButtons, logg) })
	r.Route("/hero-sections", func(r chi.Router) { admincontrollers.MountResource(r, svc.HeroSections, logg) })
	r.Route("/categories", func(r chi.Router) { admincontrollers.MountResource(r, svc.Categories, logg) })
	r.Route("/products", func(r chi.Router) { admincontrollers.MountResource(r, svc.Products, logg) })
	r.Route("/product-images", func(r chi.Router) { admincontrollers.MountResource(r, svc.ProductImages, logg) })
	r.Route("/product-variants", func(r chi.Router) { admincontrollers.MountResource(r, svc.ProductVariants, logg) })

	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", admincontrollers.ReviewList(svc.Reviews, logg))
		r.Delete("/{id}", admincontrollers.ReviewDelete(svc.Reviews, logg))
	})
	r.Route("/carts", func(r chi.Router) {
		r.Get("/", admincontrollers.CartList(svc.Carts, logg))
		r.Get("/{id}", admincontrollers.CartDetail(svc.Carts, logg))
	})
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", admincontrollers.OrderList(deps.Orders, logg))
		r.Get("/{id}", admincontrollers.OrderDetail(deps.Orders, logg))
		r.Patch("/{id}/status", admincontrollers.OrderUpdateStatus(deps.Orders, logg))
	})
}
