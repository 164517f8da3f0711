package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vkuzmenko/techstore-backend/api/responses"
	"github.com/vkuzmenko/techstore-backend/api/validators"
	"github.com/vkuzmenko/techstore-backend/internal/cart"
	"github.com/vkuzmenko/techstore-backend/internal/catalog"
	pkgerrors "github.com/vkuzmenko/techstore-backend/pkg/errors"
	"github.com/vkuzmenko/techstore-backend/pkg/logger"
)

const (
	cartTokenHeader  = "X-Cart-Token"
	customerIDHeader = "X-Customer-Id"
)

// cartRefFromRequest builds the cart ref from the request headers. Customer
// carts are keyed by X-Customer-Id; anonymous carts by X-Cart-Token. A fresh
// token is minted and echoed back when an anonymous request carries none.
func cartRefFromRequest(w http.ResponseWriter, r *http.Request) (cart.Ref, error) {
	if raw := r.Header.Get(customerIDHeader); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return cart.Ref{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer id")
		}
		return cart.Ref{CustomerID: &id}, nil
	}

	token := r.Header.Get(cartTokenHeader)
	if token == "" {
		token = uuid.NewString()
	}
	w.Header().Set(cartTokenHeader, token)
	return cart.Ref{Token: token}, nil
}

type addCartItemPayload struct {
	ProductKind string `json:"product_kind" validate:"required,oneof=notebook smartphone"`
	ProductID   string `json:"product_id" validate:"required,uuid"`
	Qty         int    `json:"qty" validate:"omitempty,min=1"`
}

type changeQtyPayload struct {
	Qty int `json:"qty" validate:"required,min=1"`
}

// CartFetch returns the requester's cart with derived totals.
func CartFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		ref, err := cartRefFromRequest(w, r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.GetCart(ctx, ref)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// CartAddItem puts a product into the requester's cart.
func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		ref, err := cartRefFromRequest(w, r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload addCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := catalog.ParseProductRef(payload.ProductKind, payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product reference"))
			return
		}

		qty := payload.Qty
		if qty == 0 {
			qty = 1
		}

		dto, err := svc.AddItem(ctx, ref, product, qty)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// CartChangeQty sets a line's quantity.
func CartChangeQty(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		ref, err := cartRefFromRequest(w, r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		var payload changeQtyPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.ChangeQty(ctx, ref, itemID, payload.Qty)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// CartRemoveItem deletes a line from the requester's cart.
func CartRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		ref, err := cartRefFromRequest(w, r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		dto, err := svc.RemoveItem(ctx, ref, itemID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
