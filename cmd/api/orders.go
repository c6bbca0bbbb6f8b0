package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shopadmin/internal/domain/orders"
	"shopadmin/internal/params"

	"github.com/go-chi/chi/v5"
)

const invalidStatusMessage = "Invalid status. Allowed values are: pending, shipping, delivered, returned, cancelled."

// UpdateOrderStatusRequest is the PATCH body.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" example:"shipping"`
}

// listFeedOrdersHandler godoc
//
//	@Summary		List orders
//	@Description	Newest first, optionally filtered by status. Each order carries its items, buyer and total.
//	@Tags			Orders
//	@Produce		json
//	@Param			status	query		string	false	"Filter by status"	Enums(pending,shipping,delivered,returned,cancelled)
//	@Param			page	query		int		false	"Page number (default: 1)"
//	@Param			limit	query		int		false	"Items per page (default: 10, max: 100)"
//	@Success		200		{object}	map[string]any
//	@Failure		400		{object}	errorEnvelope
//	@Failure		500		{object}	errorEnvelope
//	@Router			/orders/get-feed-orders [get]
func (app *application) listFeedOrdersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && !orders.IsValidStatus(status) {
		app.badRequestMessage(w, r, invalidStatusMessage)
		return
	}
	p := params.ParsePagination(r.URL.Query())

	list, total, err := app.store.Orders.ListFeed(ctx, status, p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	app.successResponse(w, http.StatusOK, map[string]any{
		"orders":     list,
		"pagination": p,
	})
}

// searchOrderByIDHandler godoc
//
//	@Summary	Find an order by ID
//	@Tags		Orders
//	@Produce	json
//	@Param		orderId	query		int	true	"Order ID"
//	@Success	200		{object}	map[string]any
//	@Failure	400		{object}	errorEnvelope
//	@Failure	404		{object}	errorEnvelope
//	@Router		/orders/search-order-by-id [get]
func (app *application) searchOrderByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	raw := strings.TrimSpace(r.URL.Query().Get("orderId"))
	if raw == "" {
		app.badRequestMessage(w, r, "Order ID is required.")
		return
	}
	id, ok := parseOrderID(raw)
	if !ok {
		app.badRequestMessage(w, r, "Invalid order ID.")
		return
	}

	order, err := app.store.Orders.GetFeedOrder(ctx, id)
	if err != nil {
		app.orderLookupError(w, r, err)
		return
	}

	app.successResponse(w, http.StatusOK, map[string]any{"order": order})
}

// getOrderDetailsHandler godoc
//
//	@Summary		Get order details
//	@Description	Includes delivery address, payment reference and product prices per item.
//	@Tags			Orders
//	@Produce		json
//	@Param			orderId	path		int	true	"Order ID"
//	@Success		200		{object}	map[string]any
//	@Failure		400		{object}	errorEnvelope
//	@Failure		404		{object}	errorEnvelope
//	@Router			/orders/details/{orderId} [get]
func (app *application) getOrderDetailsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	id, ok := parseOrderID(chi.URLParam(r, "orderId"))
	if !ok {
		app.badRequestMessage(w, r, "Invalid order ID.")
		return
	}

	detail, err := app.store.Orders.GetDetail(ctx, id)
	if err != nil {
		app.orderLookupError(w, r, err)
		return
	}

	app.successResponse(w, http.StatusOK, map[string]any{"order": detail})
}

// updateOrderStatusHandler godoc
//
//	@Summary	Update order status
//	@Tags		Orders
//	@Accept		json
//	@Produce	json
//	@Param		orderId	path		int							true	"Order ID"
//	@Param		payload	body		UpdateOrderStatusRequest	true	"New status"
//	@Success	200		{object}	map[string]any
//	@Failure	400		{object}	errorEnvelope
//	@Failure	404		{object}	errorEnvelope
//	@Router		/orders/update-status/{orderId} [patch]
func (app *application) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	id, ok := parseOrderID(chi.URLParam(r, "orderId"))
	if !ok {
		app.badRequestMessage(w, r, "Invalid order ID.")
		return
	}

	var req UpdateOrderStatusRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	status := strings.TrimSpace(req.Status)
	if !orders.IsValidStatus(status) {
		app.badRequestMessage(w, r, invalidStatusMessage)
		return
	}

	order, err := app.store.Orders.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, orders.ErrInvalidStatus) {
			app.badRequestMessage(w, r, invalidStatusMessage)
			return
		}
		app.orderLookupError(w, r, err)
		return
	}

	app.successResponse(w, http.StatusOK, map[string]any{
		"message": "Order status updated successfully.",
		"order":   order,
	})
}

func (app *application) orderLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, orders.ErrNotFound) {
		app.notFoundResponse(w, r, "Order not found.")
		return
	}
	app.internalServerError(w, r, err)
}

func parseOrderID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
