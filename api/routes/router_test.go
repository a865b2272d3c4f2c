package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	sq "github.com/square/square-go-sdk"

	adminauthsvc "github.com/Terellreed1/smokers-club-sub000/internal/adminauth"
	"github.com/Terellreed1/smokers-club-sub000/internal/cart"
	checkoutsvc "github.com/Terellreed1/smokers-club-sub000/internal/checkout"
	faqsvc "github.com/Terellreed1/smokers-club-sub000/internal/faq"
	productsvc "github.com/Terellreed1/smokers-club-sub000/internal/products"
	referralsvc "github.com/Terellreed1/smokers-club-sub000/internal/referrals"
	reviewsvc "github.com/Terellreed1/smokers-club-sub000/internal/reviews"
	wholesalesvc "github.com/Terellreed1/smokers-club-sub000/internal/wholesale"
	"github.com/Terellreed1/smokers-club-sub000/pkg/config"
	"github.com/Terellreed1/smokers-club-sub000/pkg/db/models"
	"github.com/Terellreed1/smokers-club-sub000/pkg/logger"
	"github.com/Terellreed1/smokers-club-sub000/pkg/pagination"
	"github.com/Terellreed1/smokers-club-sub000/pkg/square"
)

type stubProductRepo struct{}

func (stubProductRepo) List(context.Context, productsvc.ListFilters, pagination.Params) ([]models.Product, int64, error) {
	return nil, 0, nil
}

func (stubProductRepo) FindByID(context.Context, uuid.UUID) (*models.Product, error) {
	return nil, nil
}

func (stubProductRepo) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	return p, nil
}

func (stubProductRepo) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	return p, nil
}

func (stubProductRepo) Delete(context.Context, uuid.UUID) error { return nil }

type stubReviewRepo struct{}

func (stubReviewRepo) List(context.Context, *uuid.UUID, bool, pagination.Params) ([]models.Review, int64, error) {
	return nil, 0, nil
}
func (stubReviewRepo) FindByID(context.Context, uuid.UUID) (*models.Review, error) {
	return nil, nil
}
func (stubReviewRepo) Create(ctx context.Context, r *models.Review) (*models.Review, error) {
	return r, nil
}
func (stubReviewRepo) SetApproved(context.Context, uuid.UUID, bool) error { return nil }
func (stubReviewRepo) Delete(context.Context, uuid.UUID) error            { return nil }

type stubFAQRepo struct{}

func (stubFAQRepo) List(context.Context, bool) ([]models.FAQItem, error) { return nil, nil }
func (stubFAQRepo) FindByID(context.Context, uuid.UUID) (*models.FAQItem, error) {
	return nil, nil
}
func (stubFAQRepo) Create(ctx context.Context, item *models.FAQItem) (*models.FAQItem, error) {
	return item, nil
}
func (stubFAQRepo) Update(ctx context.Context, item *models.FAQItem) (*models.FAQItem, error) {
	return item, nil
}
func (stubFAQRepo) Delete(context.Context, uuid.UUID) error { return nil }

type stubReferralRepo struct{}

func (stubReferralRepo) FindCodeByEmail(context.Context, string) (*models.ReferralCode, error) {
	return nil, nil
}
func (stubReferralRepo) FindByCode(context.Context, string) (*models.ReferralCode, error) {
	return nil, nil
}
func (stubReferralRepo) CreateCode(context.Context, *models.ReferralCode) error     { return nil }
func (stubReferralRepo) CreateSignup(context.Context, *models.ReferralSignup) error { return nil }
func (stubReferralRepo) CountSignups(context.Context, uuid.UUID) (int64, error)     { return 0, nil }

type stubWholesaleRepo struct{}

func (stubWholesaleRepo) Create(ctx context.Context, inquiry *models.WholesaleInquiry) (*models.WholesaleInquiry, error) {
	return inquiry, nil
}
func (stubWholesaleRepo) List(context.Context, pagination.Params) ([]models.WholesaleInquiry, int64, error) {
	return nil, 0, nil
}

type stubAdminRepo struct{}

func (stubAdminRepo) FindUserByEmail(context.Context, string) (*models.AdminUser, error) {
	return nil, nil
}
func (stubAdminRepo) CreateSession(context.Context, *models.AdminSession) error { return nil }
func (stubAdminRepo) FindSession(context.Context, string) (*models.AdminSession, error) {
	return nil, nil
}
func (stubAdminRepo) DeleteSession(context.Context, string) error { return nil }
func (stubAdminRepo) DeleteExpiredSessions(context.Context, time.Time) (int64, error) {
	return 0, nil
}
func (stubAdminRepo) DeleteSessionsForUser(context.Context, uuid.UUID) error { return nil }

type stubPayments struct{}

func (stubPayments) CreatePaymentLink(context.Context, square.PaymentLinkCreateParams) (*sq.PaymentLink, error) {
	url := "https://square.link/u/test"
	return &sq.PaymentLink{URL: &url}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test"})
	registry := cart.NewRegistry(time.Hour, logg, nil)

	adminAuth, err := adminauthsvc.NewService(stubAdminRepo{}, config.AdminAuthConfig{})
	if err != nil {
		t.Fatalf("admin auth service: %v", err)
	}
	products, err := productsvc.NewService(stubProductRepo{})
	if err != nil {
		t.Fatalf("product service: %v", err)
	}
	checkout, err := checkoutsvc.NewService(stubPayments{}, registry, config.CheckoutConfig{
		SuccessURL: "https://shop.example/order-confirmation",
	}, logg, nil)
	if err != nil {
		t.Fatalf("checkout service: %v", err)
	}
	reviews, err := reviewsvc.NewService(stubReviewRepo{})
	if err != nil {
		t.Fatalf("review service: %v", err)
	}
	faq, err := faqsvc.NewService(stubFAQRepo{})
	if err != nil {
		t.Fatalf("faq service: %v", err)
	}
	referrals, err := referralsvc.NewService(stubReferralRepo{})
	if err != nil {
		t.Fatalf("referral service: %v", err)
	}
	wholesale, err := wholesalesvc.NewService(stubWholesaleRepo{}, nil, "", logg)
	if err != nil {
		t.Fatalf("wholesale service: %v", err)
	}

	return NewRouter(Deps{
		Config: &config.Config{
			App:     config.AppConfig{Env: "dev"},
			Session: config.SessionConfig{CookieName: "sc_session", TTL: time.Hour},
		},
		Logger:    logg,
		Registry:  registry,
		AdminAuth: adminAuth,
		Products:  products,
		Checkout:  checkout,
		Reviews:   reviews,
		FAQ:       faq,
		Referrals: referrals,
		Wholesale: wholesale,
	})
}

func TestRouterPublicRoutes(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health/live", http.StatusOK},
		{http.MethodGet, "/api/v1/ping", http.StatusOK},
		{http.MethodGet, "/api/v1/products", http.StatusOK},
		{http.MethodGet, "/api/v1/reviews", http.StatusOK},
		{http.MethodGet, "/api/v1/faq", http.StatusOK},
		{http.MethodGet, "/api/v1/cart", http.StatusOK},
		{http.MethodGet, "/does-not-exist", http.StatusNotFound},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != tc.status {
			t.Fatalf("%s %s: expected %d got %d", tc.method, tc.path, tc.status, resp.Code)
		}
	}
}

func TestRouterCartIssuesSessionCookie(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	cookies := resp.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == "sc_session" {
			if _, err := uuid.Parse(c.Value); err != nil {
				t.Fatalf("session cookie is not a uuid: %s", c.Value)
			}
			found = true
		}
	}
	if !found {
		t.Fatal("expected a session cookie to be set")
	}
}

func TestRouterAdminRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/v1/ping"},
		{http.MethodGet, "/api/admin/v1/reviews"},
		{http.MethodGet, "/api/admin/v1/wholesale"},
		{http.MethodPost, "/api/admin/v1/auth/logout-all"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 got %d", tc.method, tc.path, resp.Code)
		}
	}
}
