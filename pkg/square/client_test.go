package square

import (
	"strings"
	"testing"

	pkgerrors "github.com/Terellreed1/smokers-club-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureIdempotencyKey(t *testing.T) {
	c := &Client{}
	if got := c.ensureIdempotencyKey("pref", "custom-key"); got != "custom-key" {
		t.Fatalf("expected provided key, got %q", got)
	}
	if got := c.ensureIdempotencyKey("prefix", ""); !strings.HasPrefix(got, "prefix-") {
		t.Fatalf("generated idempotency key %q missing prefix", got)
	}
}

func TestRedact(t *testing.T) {
	c := &Client{}
	assert.Equal(t, "[REDACTED]", c.redact("access_token", "abc123"))
	assert.Equal(t, "ok", c.redact("status", "ok"))
}

func TestDomainCodeForStatus(t *testing.T) {
	assert.Equal(t, pkgerrors.CodeUnauthorized, domainCodeForStatus(401))
	assert.Equal(t, pkgerrors.CodeValidation, domainCodeForStatus(400))
	assert.Equal(t, pkgerrors.CodeRateLimit, domainCodeForStatus(429))
	assert.Equal(t, pkgerrors.CodeDependency, domainCodeForStatus(502))
}

func TestToSquareRequestBuildsOrder(t *testing.T) {
	params := PaymentLinkCreateParams{
		LocationID:  "LOC123",
		Description: "Smokers Club order",
		RedirectURL: "https://smokersclub.example/order/confirmation",
		LineItems: []PaymentLinkLineItem{
			{Name: "Gold Standard", AmountCents: 2500, Quantity: 1},
			{Name: "Diamond Reserve", AmountCents: 8000, Quantity: 2},
		},
	}

	req, err := params.toSquareRequest("key-1")
	require.NoError(t, err)
	require.NotNil(t, req.Order)
	assert.Equal(t, "LOC123", req.Order.LocationID)
	require.Len(t, req.Order.LineItems, 2)
	assert.Equal(t, "2", req.Order.LineItems[1].Quantity)
	assert.Equal(t, int64(8000), *req.Order.LineItems[1].BasePriceMoney.Amount)
	require.NotNil(t, req.CheckoutOptions)
	assert.Equal(t, "https://smokersclub.example/order/confirmation", *req.CheckoutOptions.RedirectURL)
}

func TestToSquareRequestRejectsBadLineItems(t *testing.T) {
	_, err := PaymentLinkCreateParams{}.toSquareRequest("k")
	require.Error(t, err)

	_, err = PaymentLinkCreateParams{
		LineItems: []PaymentLinkLineItem{{Name: "x", AmountCents: 100, Quantity: 0}},
	}.toSquareRequest("k")
	require.Error(t, err)

	_, err = PaymentLinkCreateParams{
		LineItems: []PaymentLinkLineItem{{Name: " ", AmountCents: 100, Quantity: 1}},
	}.toSquareRequest("k")
	require.Error(t, err)
}
