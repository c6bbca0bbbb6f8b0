package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"shopadmin/internal/domain/customers"
	"shopadmin/internal/params"

	"github.com/go-chi/chi/v5"
)

// listCustomersHandler godoc
//
//	@Summary		List customers
//	@Description	Customers with order and review counts and their latest subscription status.
//	@Tags			Customers
//	@Produce		json
//	@Param			page	query		int	false	"Page number (default: 1)"
//	@Param			limit	query		int	false	"Items per page (default: 10, max: 100)"
//	@Success		200		{object}	map[string]any
//	@Failure		500		{object}	errorEnvelope
//	@Router			/customers/get-customers [get]
func (app *application) listCustomersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	p := params.ParsePagination(r.URL.Query())

	list, total, err := app.store.Customers.List(ctx, p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	app.successResponse(w, http.StatusOK, map[string]any{
		"data":       list,
		"pagination": p,
	})
}

// getCustomerHandler godoc
//
//	@Summary	Get a customer
//	@Tags		Customers
//	@Produce	json
//	@Param		id	path		int	true	"User ID"
//	@Success	200	{object}	map[string]any
//	@Failure	400	{object}	errorEnvelope
//	@Failure	404	{object}	errorEnvelope
//	@Router		/customers/search-customer-by-id/{id} [get]
func (app *application) getCustomerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid customer ID"))
		return
	}

	customer, err := app.store.Customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, customers.ErrNotFound) {
			app.notFoundResponse(w, r, "Customer not found")
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.successResponse(w, http.StatusOK, map[string]any{"data": customer})
}
