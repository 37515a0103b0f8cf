package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/service/checkout"
)

const maxRequestBody = 64 * 1024

type handlers struct {
	checkout checkout.Finalizer
	quoter   Quoter
	timeline domain.TimelineRepository
	logger   *log.Entry
}

type checkoutResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message"`
	Total         string `json:"total"`
}

type quoteItemRequest struct {
	ProductID int64               `json:"product_id"`
	Name      string              `json:"name"`
	Price     decimal.NullDecimal `json:"price"`
	Weight    decimal.NullDecimal `json:"weight"`
	Category  string              `json:"category"`
	Fragile   bool                `json:"fragile"`
	Quantity  int64               `json:"quantity"`
}

type quoteRequest struct {
	Items []*quoteItemRequest `json:"items"`
}

type quoteResponse struct {
	Subtotal   string `json:"subtotal"`
	Discount   string `json:"discount"`
	Weight     string `json:"weight"`
	Shipping   string `json:"shipping"`
	FragileFee string `json:"fragile_fee"`
	Total      string `json:"total"`
}

type timelineEventResponse struct {
	AttemptID string    `json:"attempt_id"`
	Type      string    `json:"type"`
	Reason    string    `json:"reason,omitempty"`
	Occurred  time.Time `json:"occurred"`
}

type timelineResponse struct {
	CartID int64                   `json:"cart_id"`
	Events []timelineEventResponse `json:"events"`
}

func (h *handlers) finalizeCheckout(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "customerID")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	cartID, err := pathID(r, "cartID")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	result, err := h.checkout.FinalizeCheckout(r.Context(), cartID, customerID)
	if err != nil {
		if domain.KindOf(err) == "" {
			h.logger.WithError(err).WithFields(log.Fields{
				"cart_id":     cartID,
				"customer_id": customerID,
			}).Error("checkout failed with internal error")
		}
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{
		Success:       result.Success,
		TransactionID: result.TransactionID,
		Message:       result.Message,
		Total:         result.Total.StringFixed(2),
	})
}

func (h *handlers) quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeDomainError(w, r, domain.InvalidInput("invalid request body: %v", err))
		return
	}

	quote, err := h.quoter.Quote(req.toCart())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, quoteResponse{
		Subtotal:   quote.Subtotal.StringFixed(2),
		Discount:   quote.Discount.String(),
		Weight:     quote.Weight.String(),
		Shipping:   quote.Shipping.StringFixed(2),
		FragileFee: quote.FragileFee.StringFixed(2),
		Total:      quote.Total.StringFixed(2),
	})
}

func (h *handlers) cartTimeline(w http.ResponseWriter, r *http.Request) {
	if h.timeline == nil {
		writeError(w, r, http.StatusNotFound, errorCodeRouteNotFound, "timeline is not configured")
		return
	}
	cartID, err := pathID(r, "cartID")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	events, err := h.timeline.List(r.Context(), cartID)
	if err != nil {
		h.logger.WithError(err).WithField("cart_id", cartID).Error("list checkout timeline failed")
		writeError(w, r, http.StatusInternalServerError, errorCodeInternal, internalErrorMessage)
		return
	}

	resp := timelineResponse{CartID: cartID, Events: make([]timelineEventResponse, 0, len(events))}
	for _, event := range events {
		resp.Events = append(resp.Events, timelineEventResponse{
			AttemptID: event.AttemptID,
			Type:      event.Type,
			Reason:    event.Reason,
			Occurred:  event.Occurred,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (req quoteRequest) toCart() *domain.Cart {
	cart := &domain.Cart{Items: make([]*domain.LineItem, 0, len(req.Items))}
	for idx, item := range req.Items {
		if item == nil {
			cart.Items = append(cart.Items, nil)
			continue
		}
		cart.Items = append(cart.Items, &domain.LineItem{
			ID: int64(idx + 1),
			Product: &domain.Product{
				ID:       item.ProductID,
				Name:     item.Name,
				Price:    item.Price,
				Weight:   item.Weight,
				Category: domain.Category(item.Category),
				Fragile:  item.Fragile,
			},
			Quantity: item.Quantity,
		})
	}
	return cart
}

func pathID(r *http.Request, param string) (int64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.InvalidInput("%s must be an integer, got %q", param, raw)
	}
	return id, nil
}
