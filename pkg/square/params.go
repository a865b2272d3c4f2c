package square

import (
	"fmt"
	"strconv"
	"strings"

	sq "github.com/square/square-go-sdk"
	sqcheckout "github.com/square/square-go-sdk/checkout"
)

// PaymentLinkLineItem is one purchasable row on the hosted checkout page.
type PaymentLinkLineItem struct {
	Name        string
	AmountCents int64
	Quantity    int
}

// PaymentLinkCreateParams contains the fields required to build a Square
// hosted checkout link.
type PaymentLinkCreateParams struct {
	LocationID     string
	IdempotencyKey string
	Description    string
	RedirectURL    string
	LineItems      []PaymentLinkLineItem
}

func (p PaymentLinkCreateParams) toSquareRequest(idempotencyKey string) (*sqcheckout.CreatePaymentLinkRequest, error) {
	if len(p.LineItems) == 0 {
		return nil, fmt.Errorf("payment link requires at least one line item")
	}

	lineItems := make([]*sq.OrderLineItem, 0, len(p.LineItems))
	for _, item := range p.LineItems {
		if strings.TrimSpace(item.Name) == "" {
			return nil, fmt.Errorf("line item name is required")
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("line item %q quantity must be >= 1", item.Name)
		}
		if item.AmountCents < 0 {
			return nil, fmt.Errorf("line item %q amount cannot be negative", item.Name)
		}
		lineItems = append(lineItems, &sq.OrderLineItem{
			Name:           ptrString(item.Name),
			Quantity:       strconv.Itoa(item.Quantity),
			BasePriceMoney: moneyPtr(item.AmountCents, "USD"),
		})
	}

	req := &sqcheckout.CreatePaymentLinkRequest{
		IdempotencyKey: ptrString(idempotencyKey),
		Order: &sq.Order{
			LocationID: p.LocationID,
			LineItems:  lineItems,
		},
	}
	if trimmed := strings.TrimSpace(p.Description); trimmed != "" {
		req.Description = ptrString(trimmed)
	}
	if trimmed := strings.TrimSpace(p.RedirectURL); trimmed != "" {
		req.CheckoutOptions = &sq.CheckoutOptions{
			RedirectURL: ptrString(trimmed),
		}
	}
	return req, nil
}

func ptrString(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

func int64Ptr(value int64) *int64 {
	return &value
}

func currencyPtr(code string) *sq.Currency {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		trimmed = "USD"
	}
	c := sq.Currency(trimmed)
	return &c
}

func moneyPtr(amount int64, currency string) *sq.Money {
	return &sq.Money{
		Amount:   int64Ptr(amount),
		Currency: currencyPtr(currency),
	}
}
