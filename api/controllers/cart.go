package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Terellreed1/smokers-club-sub000/api/middleware"
	"github.com/Terellreed1/smokers-club-sub000/api/responses"
	"github.com/Terellreed1/smokers-club-sub000/api/validators"
	"github.com/Terellreed1/smokers-club-sub000/internal/cart"
	productsvc "github.com/Terellreed1/smokers-club-sub000/internal/products"
	pkgerrors "github.com/Terellreed1/smokers-club-sub000/pkg/errors"
	"github.com/Terellreed1/smokers-club-sub000/pkg/logger"
)

type cartItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type cartResponse struct {
	Message        string             `json:"message,omitempty"`
	Items          []cartItemResponse `json:"items"`
	TotalItemCount int                `json:"total_item_count"`
	Subtotal       string             `json:"subtotal"`
}

func toCartResponse(snap cart.Snapshot) cartResponse {
	items := make([]cartItemResponse, 0, len(snap.Items))
	for _, item := range snap.Items {
		items = append(items, cartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: cart.FormatPrice(item.UnitPrice),
			Quantity:  item.Quantity,
			Subtotal:  cart.FormatPrice(item.Subtotal()),
		})
	}
	return cartResponse{
		Items:          items,
		TotalItemCount: snap.TotalItemCount,
		Subtotal:       cart.FormatPrice(snap.Subtotal),
	}
}

// GetCart returns the session's cart contents.
func GetCart(registry *cart.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := sessionCart(w, r, registry, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, toCartResponse(store.Snapshot()))
	}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// AddCartItem resolves the product from the catalog and puts it in the
// cart. The catalog row is the source of truth for name and price.
func AddCartItem(registry *cart.Registry, products *productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := sessionCart(w, r, registry, logg)
		if !ok {
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParsePathUUID(payload.ProductID, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := products.Get(r.Context(), productID, false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := store.AddItem(cart.AddItemInput{
			ProductID: product.ID.String(),
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := toCartResponse(store.Snapshot())
		if result.Incremented {
			resp.Message = "Added another " + product.Name + " to your cart"
		} else {
			resp.Message = "Added " + product.Name + " to your cart"
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// UpdateCartItem sets the quantity for a cart row; zero removes it.
func UpdateCartItem(registry *cart.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := sessionCart(w, r, registry, logg)
		if !ok {
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := chi.URLParam(r, "productId")
		if err := store.UpdateQuantity(productID, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toCartResponse(store.Snapshot()))
	}
}

// RemoveCartItem deletes one row from the cart. Removing an item that is
// not there is fine; the response reflects the current cart either way.
func RemoveCartItem(registry *cart.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := sessionCart(w, r, registry, logg)
		if !ok {
			return
		}

		store.RemoveItem(chi.URLParam(r, "productId"))
		responses.WriteSuccess(w, toCartResponse(store.Snapshot()))
	}
}

// ClearCart empties the cart.
func ClearCart(registry *cart.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := sessionCart(w, r, registry, logg)
		if !ok {
			return
		}

		store.Clear()
		responses.WriteSuccess(w, toCartResponse(store.Snapshot()))
	}
}

func sessionCart(w http.ResponseWriter, r *http.Request, registry *cart.Registry, logg *logger.Logger) (*cart.Store, bool) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
		return nil, false
	}
	return registry.Get(sessionID), true
}
