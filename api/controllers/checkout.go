package controllers

import (
	"net/http"

	"github.com/vkuzmenko/techstore-backend/api/responses"
	"github.com/vkuzmenko/techstore-backend/api/validators"
	"github.com/vkuzmenko/techstore-backend/internal/orders"
	pkgerrors "github.com/vkuzmenko/techstore-backend/pkg/errors"
	"github.com/vkuzmenko/techstore-backend/pkg/logger"
)

type checkoutPayload struct {
	Email      string  `json:"email" validate:"required,email"`
	FirstName  string  `json:"first_name" validate:"required"`
	LastName   string  `json:"last_name" validate:"required"`
	Phone      string  `json:"phone" validate:"required"`
	Address    *string `json:"address,omitempty"`
	BuyingType string  `json:"buying_type" validate:"omitempty,oneof=self_pickup delivery"`
	Comment    *string `json:"comment,omitempty"`
}

// Checkout turns the requester's cart into a new order.
func Checkout(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		ref, err := cartRefFromRequest(w, r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload checkoutPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.Checkout(ctx, orders.CheckoutInput{
			Cart:       ref,
			Email:      payload.Email,
			FirstName:  payload.FirstName,
			LastName:   payload.LastName,
			Phone:      payload.Phone,
			Address:    payload.Address,
			BuyingType: payload.BuyingType,
			Comment:    payload.Comment,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
