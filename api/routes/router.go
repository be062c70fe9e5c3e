package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aliffarhan/threadmart-backend/api/controllers"
	"github.com/aliffarhan/threadmart-backend/api/middleware"
	authsvc "github.com/aliffarhan/threadmart-backend/internal/auth"
	cartsvc "github.com/aliffarhan/threadmart-backend/internal/cart"
	"github.com/aliffarhan/threadmart-backend/internal/catalog"
	checkoutsvc "github.com/aliffarhan/threadmart-backend/internal/checkout"
	couponsvc "github.com/aliffarhan/threadmart-backend/internal/coupons"
	ordersvc "github.com/aliffarhan/threadmart-backend/internal/orders"
	"github.com/aliffarhan/threadmart-backend/pkg/config"
	"github.com/aliffarhan/threadmart-backend/pkg/db"
	"github.com/aliffarhan/threadmart-backend/pkg/logger"
	pkgredis "github.com/aliffarhan/threadmart-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *pkgredis.Client
	Sessions middleware.SessionChecker
	Registry *prometheus.Registry

	Auth     authsvc.Service
	Catalog  catalog.Service
	Cart     cartsvc.Service
	Coupons  couponsvc.Service
	Checkout checkoutsvc.Service
	Orders   ordersvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	var redisPinger pkgredis.Pinger
	var idemStore pkgredis.IdempotencyStore
	if deps.Redis != nil {
		redisPinger = deps.Redis
		idemStore = deps.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.Live())
		r.Get("/ready", controllers.Ready(deps.DB, redisPinger, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.Idempotency(idemStore, logg)).Post("/register", controllers.Register(deps.Auth, logg))
		r.Post("/login", controllers.Login(deps.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, deps.Sessions, logg)).Post("/logout", controllers.Logout(deps.Auth, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(deps.Catalog, logg))
		r.Get("/{productID}", controllers.GetProduct(deps.Catalog, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.Cart, logg))
			r.Put("/", controllers.ReplaceCart(deps.Cart, logg))
		})

		r.Get("/coupons", controllers.ListActiveCoupons(deps.Coupons, logg))

		r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(deps.Orders, logg))
			r.Get("/{orderID}", controllers.GetOrder(deps.Orders, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireAdmin(logg))

		r.Route("/coupons", func(r chi.Router) {
			r.Get("/", controllers.ListCoupons(deps.Coupons, logg))
			r.Post("/", controllers.CreateCoupon(deps.Coupons, logg))
			r.Put("/{couponID}", controllers.UpdateCoupon(deps.Coupons, logg))
			r.Delete("/{couponID}", controllers.DeleteCoupon(deps.Coupons, logg))
		})
	})

	return r
}
