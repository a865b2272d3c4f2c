package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	sq "github.com/square/square-go-sdk"

	"github.com/Terellreed1/smokers-club-sub000/internal/cart"
	"github.com/Terellreed1/smokers-club-sub000/pkg/config"
	pkgerrors "github.com/Terellreed1/smokers-club-sub000/pkg/errors"
	"github.com/Terellreed1/smokers-club-sub000/pkg/logger"
	"github.com/Terellreed1/smokers-club-sub000/pkg/metrics"
	"github.com/Terellreed1/smokers-club-sub000/pkg/square"
)

const defaultTimeout = 15 * time.Second

type paymentLinker interface {
	CreatePaymentLink(ctx context.Context, params square.PaymentLinkCreateParams) (*sq.PaymentLink, error)
}

// Line is one row handed to the payment processor: what it is, what one
// unit costs, and how many.
type Line struct {
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// BeginResult is the outcome of a successful checkout initiation. CancelURL
// is where the storefront sends shoppers who back out; Square payment links
// only take the success redirect, so cancel routing happens client-side.
type BeginResult struct {
	RedirectURL string
	CancelURL   string
	Lines       []Line
	Total       decimal.Decimal
}

// Service turns a cart into a hosted payment page.
type Service struct {
	payments paymentLinker
	registry *cart.Registry
	cfg      config.CheckoutConfig
	logger   *logger.Logger
	metrics  *metrics.CartMetrics
}

// NewService wires the checkout flow.
func NewService(payments paymentLinker, registry *cart.Registry, cfg config.CheckoutConfig, logg *logger.Logger, m *metrics.CartMetrics) (*Service, error) {
	if payments == nil {
		return nil, fmt.Errorf("payment client required")
	}
	if registry == nil {
		return nil, fmt.Errorf("cart registry required")
	}
	if strings.TrimSpace(cfg.SuccessURL) == "" {
		return nil, fmt.Errorf("checkout success url required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Service{
		payments: payments,
		registry: registry,
		cfg:      cfg,
		logger:   logg,
		metrics:  m,
	}, nil
}

// Begin snapshots the session's cart, asks the payment processor for a
// hosted checkout link covering every line, and returns the redirect URL.
// The cart is left untouched: it is only cleared once the shopper lands on
// the confirmation page, so a failed or abandoned checkout loses nothing.
func (s *Service) Begin(ctx context.Context, sessionID string) (*BeginResult, error) {
	store, ok := s.registry.Peek(sessionID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	snapshot := store.Snapshot()
	if len(snapshot.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	lines := make([]Line, 0, len(snapshot.Items))
	items := make([]square.PaymentLinkLineItem, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		lines = append(lines, Line{
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
		items = append(items, square.PaymentLinkLineItem{
			Name:        item.Name,
			AmountCents: cart.PriceCents(item.UnitPrice),
			Quantity:    item.Quantity,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	link, err := s.payments.CreatePaymentLink(ctx, square.PaymentLinkCreateParams{
		Description: "Smokers Club order",
		RedirectURL: s.cfg.SuccessURL,
		LineItems:   items,
	})
	if err != nil {
		s.metrics.IncCheckout("failure")
		if ctx.Err() != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment processor timed out")
		}
		return nil, err
	}

	redirectURL := derefString(link.GetURL())
	if redirectURL == "" {
		s.metrics.IncCheckout("failure")
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payment processor returned no redirect url")
	}

	s.metrics.IncCheckout("success")
	if s.logger != nil {
		s.logger.Info(
			s.logger.WithFields(ctx, map[string]any{
				"line_count":  len(lines),
				"total_items": snapshot.TotalItemCount,
			}),
			"checkout initiated",
		)
	}

	return &BeginResult{
		RedirectURL: redirectURL,
		CancelURL:   s.cfg.CancelURL,
		Lines:       lines,
		Total:       snapshot.Subtotal,
	}, nil
}

// Confirm marks the order as paid for from the shopper's point of view and
// empties the cart. Confirming with no live cart is a no-op so the
// confirmation page can be reloaded safely.
func (s *Service) Confirm(ctx context.Context, sessionID string) {
	store, ok := s.registry.Peek(sessionID)
	if !ok {
		return
	}
	store.Clear()
	s.metrics.IncCheckout("confirmed")
	if s.logger != nil {
		s.logger.Info(ctx, "checkout confirmed, cart cleared")
	}
}

func derefString(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}
