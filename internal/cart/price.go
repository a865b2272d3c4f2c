package cart

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/Terellreed1/smokers-club-sub000/pkg/errors"
)

// ParsePrice converts a display price such as "$65" or "25.50" into an exact
// decimal amount. Placeholder and negative prices are rejected so a bad
// catalog row can never enter a cart.
func ParsePrice(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "price is required")
	}
	if strings.EqualFold(cleaned, "n/a") || strings.EqualFold(cleaned, "tbd") {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "price is not available for purchase")
	}

	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "price is not a valid amount")
	}
	if amount.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	return amount, nil
}

// FormatPrice renders a decimal amount back into the display form used by
// the catalog and API payloads.
func FormatPrice(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// PriceCents converts a decimal dollar amount to integer cents, rounding
// half-up the way payment processors expect.
func PriceCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
