package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	sq "github.com/square/square-go-sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Terellreed1/smokers-club-sub000/internal/cart"
	"github.com/Terellreed1/smokers-club-sub000/pkg/config"
	pkgerrors "github.com/Terellreed1/smokers-club-sub000/pkg/errors"
	"github.com/Terellreed1/smokers-club-sub000/pkg/square"
)

type fakePayments struct {
	params   square.PaymentLinkCreateParams
	deadline bool
	url      string
	err      error
	inFlight func()
}

func (f *fakePayments) CreatePaymentLink(ctx context.Context, params square.PaymentLinkCreateParams) (*sq.PaymentLink, error) {
	f.params = params
	_, f.deadline = ctx.Deadline()
	if f.inFlight != nil {
		f.inFlight()
	}
	if f.err != nil {
		return nil, f.err
	}
	url := f.url
	return &sq.PaymentLink{URL: &url}, nil
}

func newTestService(t *testing.T, payments *fakePayments) (*Service, *cart.Registry) {
	t.Helper()
	registry := cart.NewRegistry(time.Hour, nil, nil)
	svc, err := NewService(payments, registry, config.CheckoutConfig{
		SuccessURL: "https://smokersclub.example/order/confirmation",
		CancelURL:  "https://smokersclub.example/cart",
		Timeout:    5 * time.Second,
	}, nil, nil)
	require.NoError(t, err)
	return svc, registry
}

func fillCart(t *testing.T, registry *cart.Registry, sessionID string) *cart.Store {
	t.Helper()
	store := registry.Get(sessionID)
	_, err := store.AddItem(cart.AddItemInput{ProductID: "p1", Name: "Gold Standard", Price: "$25", Quantity: 1})
	require.NoError(t, err)
	_, err = store.AddItem(cart.AddItemInput{ProductID: "p2", Name: "Diamond Reserve", Price: "$80", Quantity: 2})
	require.NoError(t, err)
	return store
}

func TestBeginBuildsExactLineList(t *testing.T) {
	payments := &fakePayments{url: "https://pay.example/link"}
	svc, registry := newTestService(t, payments)
	fillCart(t, registry, "s1")

	result, err := svc.Begin(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example/link", result.RedirectURL)
	assert.Equal(t, "https://smokersclub.example/cart", result.CancelURL)
	require.Len(t, result.Lines, 2)
	assert.Equal(t, "Gold Standard", result.Lines[0].Name)
	assert.True(t, result.Lines[0].UnitPrice.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, 1, result.Lines[0].Quantity)
	assert.Equal(t, "Diamond Reserve", result.Lines[1].Name)
	assert.True(t, result.Lines[1].UnitPrice.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, 2, result.Lines[1].Quantity)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(185)))

	require.Len(t, payments.params.LineItems, 2)
	assert.Equal(t, int64(2500), payments.params.LineItems[0].AmountCents)
	assert.Equal(t, int64(8000), payments.params.LineItems[1].AmountCents)
	assert.Equal(t, 2, payments.params.LineItems[1].Quantity)
	assert.Equal(t, "https://smokersclub.example/order/confirmation", payments.params.RedirectURL)
	assert.True(t, payments.deadline, "payment call should carry a deadline")
}

func TestBeginEmptyCartFailsBeforePayment(t *testing.T) {
	payments := &fakePayments{url: "https://pay.example/link"}
	svc, registry := newTestService(t, payments)

	// session never created
	_, err := svc.Begin(context.Background(), "missing")
	require.Error(t, err)

	// session exists but cart is empty
	registry.Get("s1")
	_, err = svc.Begin(context.Background(), "s1")
	require.Error(t, err)

	domainErr := pkgerrors.As(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, pkgerrors.CodeValidation, domainErr.Code())
	assert.Empty(t, payments.params.LineItems, "payment processor must not be called")
}

func TestBeginLinesUnaffectedByInFlightCartMutation(t *testing.T) {
	payments := &fakePayments{url: "https://pay.example/link"}
	svc, registry := newTestService(t, payments)
	store := fillCart(t, registry, "s1")

	// the shopper edits the cart while the payment request is in flight;
	// the dispatched line list must stay the one Begin snapshotted
	payments.inFlight = func() {
		require.NoError(t, store.UpdateQuantity("p1", 5))
		_, err := store.AddItem(cart.AddItemInput{ProductID: "p3", Name: "Late Add", Price: "$10", Quantity: 1})
		require.NoError(t, err)
	}

	result, err := svc.Begin(context.Background(), "s1")
	require.NoError(t, err)

	require.Len(t, payments.params.LineItems, 2)
	assert.Equal(t, "Gold Standard", payments.params.LineItems[0].Name)
	assert.Equal(t, 1, payments.params.LineItems[0].Quantity)
	assert.Equal(t, "Diamond Reserve", payments.params.LineItems[1].Name)
	assert.Equal(t, 2, payments.params.LineItems[1].Quantity)

	require.Len(t, result.Lines, 2)
	assert.Equal(t, 1, result.Lines[0].Quantity)
	assert.Equal(t, 2, result.Lines[1].Quantity)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(185)))

	// the mutations themselves are not lost
	snap := store.Snapshot()
	assert.Equal(t, 8, snap.TotalItemCount)
}

func TestBeginFailurePreservesCart(t *testing.T) {
	payments := &fakePayments{err: errors.New("square unavailable")}
	svc, registry := newTestService(t, payments)
	store := fillCart(t, registry, "s1")

	_, err := svc.Begin(context.Background(), "s1")
	require.Error(t, err)

	snap := store.Snapshot()
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, 3, snap.TotalItemCount)
}

func TestBeginSuccessLeavesCartUntilConfirm(t *testing.T) {
	payments := &fakePayments{url: "https://pay.example/link"}
	svc, registry := newTestService(t, payments)
	store := fillCart(t, registry, "s1")

	_, err := svc.Begin(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, store.TotalItemCount(), "cart survives until confirmation")

	svc.Confirm(context.Background(), "s1")
	assert.Equal(t, 0, store.TotalItemCount())

	// confirmation page reload
	svc.Confirm(context.Background(), "s1")
	svc.Confirm(context.Background(), "unknown-session")
	assert.Equal(t, 0, store.TotalItemCount())
}

func TestBeginRejectsMissingRedirectURL(t *testing.T) {
	payments := &fakePayments{url: ""}
	svc, registry := newTestService(t, payments)
	store := fillCart(t, registry, "s1")

	_, err := svc.Begin(context.Background(), "s1")
	require.Error(t, err)
	assert.Equal(t, 3, store.TotalItemCount())
}

func TestNewServiceValidates(t *testing.T) {
	registry := cart.NewRegistry(time.Hour, nil, nil)

	_, err := NewService(nil, registry, config.CheckoutConfig{SuccessURL: "https://x"}, nil, nil)
	require.Error(t, err)

	_, err = NewService(&fakePayments{}, nil, config.CheckoutConfig{SuccessURL: "https://x"}, nil, nil)
	require.Error(t, err)

	_, err = NewService(&fakePayments{}, registry, config.CheckoutConfig{}, nil, nil)
	require.Error(t, err)

	svc, err := NewService(&fakePayments{}, registry, config.CheckoutConfig{SuccessURL: "https://x"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultTimeout, svc.cfg.Timeout)
}
