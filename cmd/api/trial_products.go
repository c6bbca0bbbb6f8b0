package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"shopadmin/internal/domain/trialproducts"
	"shopadmin/internal/ingest"
	"shopadmin/internal/params"

	"github.com/go-chi/chi/v5"
)

// createTrialProductHandler godoc
//
//	@Summary	Create a trial product
//	@Tags		TrialProducts
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		images			formData	file	false	"Images (max 5)"
//	@Param		title			formData	string	true	"Title"
//	@Param		description		formData	string	true	"Description"
//	@Param		trialPeriod		formData	int		true	"Trial period in days"
//	@Param		availableCount	formData	int		true	"Units available for trial"
//	@Param		category		formData	string	true	"Category"
//	@Success	201				{object}	map[string]any
//	@Failure	400				{object}	errorEnvelope
//	@Failure	500				{object}	errorEnvelope
//	@Failure	502				{object}	errorEnvelope
//	@Router		/trialProducts/add-trial-product [post]
func (app *application) createTrialProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), catalogCreateTimeout)
	defer cancel()

	var in ingest.TrialProductInput
	files, err := parseCatalogForm(w, r, &in)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	trial, err := app.catalog.CreateTrialProduct(ctx, in, files)
	if err != nil {
		app.ingestErrorResponse(w, r, err, "Failed to add trial product")
		return
	}
	productsCreated.Add(1)
	imagesUploaded.Add(int64(len(trial.ImageURLs)))

	app.successResponse(w, http.StatusCreated, map[string]any{
		"message":      "Trial product created successfully",
		"trialProduct": trial,
	})
}

// listTrialProductsHandler godoc
//
//	@Summary	List trial products
//	@Tags		TrialProducts
//	@Produce	json
//	@Param		page	query		int	false	"Page number (default: 1)"
//	@Param		limit	query		int	false	"Items per page (default: 10, max: 100)"
//	@Success	200		{object}	map[string]any
//	@Failure	500		{object}	errorEnvelope
//	@Router		/trialProducts [get]
func (app *application) listTrialProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	p := params.ParsePagination(r.URL.Query())

	list, total, err := app.store.TrialProducts.List(ctx, p.Limit, p.Offset)
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

// getTrialProductHandler godoc
//
//	@Summary	Get a trial product
//	@Tags		TrialProducts
//	@Produce	json
//	@Param		trialProductID	path		int	true	"Trial product ID"
//	@Success	200				{object}	map[string]any
//	@Failure	404				{object}	errorEnvelope
//	@Router		/trialProducts/{trialProductID} [get]
func (app *application) getTrialProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "trialProductID"), 10, 64)
	if err != nil || id <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid trial product ID"))
		return
	}

	trial, err := app.store.TrialProducts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, trialproducts.ErrNotFound) {
			app.notFoundResponse(w, r, "Trial product not found")
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.successResponse(w, http.StatusOK, map[string]any{"trialProduct": trial})
}
