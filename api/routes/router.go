package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Terellreed1/smokers-club-sub000/api/controllers"
	"github.com/Terellreed1/smokers-club-sub000/api/middleware"
	adminauthsvc "github.com/Terellreed1/smokers-club-sub000/internal/adminauth"
	"github.com/Terellreed1/smokers-club-sub000/internal/cart"
	checkoutsvc "github.com/Terellreed1/smokers-club-sub000/internal/checkout"
	faqsvc "github.com/Terellreed1/smokers-club-sub000/internal/faq"
	productsvc "github.com/Terellreed1/smokers-club-sub000/internal/products"
	referralsvc "github.com/Terellreed1/smokers-club-sub000/internal/referrals"
	reviewsvc "github.com/Terellreed1/smokers-club-sub000/internal/reviews"
	wholesalesvc "github.com/Terellreed1/smokers-club-sub000/internal/wholesale"
	"github.com/Terellreed1/smokers-club-sub000/pkg/config"
	"github.com/Terellreed1/smokers-club-sub000/pkg/db"
	"github.com/Terellreed1/smokers-club-sub000/pkg/logger"
	"github.com/Terellreed1/smokers-club-sub000/pkg/metrics"
	"github.com/Terellreed1/smokers-club-sub000/pkg/redis"
)

// Deps collects everything the router needs. Controllers get services,
// middleware gets clients.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *db.Client
	Redis    *redis.Client
	Registry *cart.Registry

	HTTPMetrics     *metrics.HTTPMetrics
	MetricsRegistry *prometheus.Registry

	AdminAuth *adminauthsvc.Service
	Products  *productsvc.Service
	Checkout  *checkoutsvc.Service
	Reviews   *reviewsvc.Service
	FAQ       *faqsvc.Service
	Referrals *referralsvc.Service
	Wholesale *wholesalesvc.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if d.HTTPMetrics != nil {
		r.Use(middleware.Metrics(d.HTTPMetrics))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"admin-login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, d.DB, d.Redis, logg))
	})

	if d.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(d.Products, logg))
			r.Get("/{productId}", controllers.GetProduct(d.Products, logg))
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", controllers.ListReviews(d.Reviews, logg))
			r.Post("/", controllers.SubmitReview(d.Reviews, logg))
		})

		r.Get("/faq", controllers.ListFAQ(d.FAQ, logg))

		r.Route("/referrals", func(r chi.Router) {
			r.Post("/", controllers.CreateReferralCode(d.Referrals, logg))
			r.Get("/{code}", controllers.GetReferralStats(d.Referrals, logg))
			r.Post("/{code}/signups", controllers.RecordReferralSignup(d.Referrals, logg))
		})

		r.Post("/wholesale", controllers.SubmitWholesaleInquiry(d.Wholesale, logg))

		// Shopper routes that need a cart attach the session cookie.
		r.Group(func(r chi.Router) {
			r.Use(middleware.ShopperSession(cfg.Session, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(d.Registry, logg))
				r.Delete("/", controllers.ClearCart(d.Registry, logg))
				r.Post("/items", controllers.AddCartItem(d.Registry, d.Products, logg))
				r.Patch("/items/{productId}", controllers.UpdateCartItem(d.Registry, logg))
				r.Delete("/items/{productId}", controllers.RemoveCartItem(d.Registry, logg))
			})

			r.Post("/checkout", controllers.BeginCheckout(d.Checkout, logg))
			r.Get("/checkout/confirmation", controllers.CheckoutConfirmation(d.Checkout, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/login", controllers.AdminLogin(d.AdminAuth, logg))
			r.Post("/logout", controllers.AdminLogout(d.AdminAuth, logg))
			r.With(middleware.AdminAuth(d.AdminAuth, logg)).Post("/logout-all", controllers.AdminLogoutAll(d.AdminAuth, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(d.AdminAuth, logg))
			r.Get("/ping", controllers.AdminPing())

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateProduct(d.Products, logg))
				r.Patch("/{productId}", controllers.AdminUpdateProduct(d.Products, logg))
				r.Delete("/{productId}", controllers.AdminDeleteProduct(d.Products, logg))
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", controllers.AdminListReviews(d.Reviews, logg))
				r.Post("/{reviewId}/approve", controllers.AdminApproveReview(d.Reviews, logg))
				r.Delete("/{reviewId}", controllers.AdminDeleteReview(d.Reviews, logg))
			})

			r.Route("/faq", func(r chi.Router) {
				r.Get("/", controllers.AdminListFAQ(d.FAQ, logg))
				r.Post("/", controllers.AdminCreateFAQ(d.FAQ, logg))
				r.Patch("/{faqId}", controllers.AdminUpdateFAQ(d.FAQ, logg))
				r.Delete("/{faqId}", controllers.AdminDeleteFAQ(d.FAQ, logg))
			})

			r.Get("/wholesale", controllers.AdminListWholesaleInquiries(d.Wholesale, logg))
		})
	})

	return r
}
