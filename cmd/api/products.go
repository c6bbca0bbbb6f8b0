package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"shopadmin/internal/domain/products"
	"shopadmin/internal/ingest"
	"shopadmin/internal/params"

	"github.com/go-chi/chi/v5"
)

// catalogCreateTimeout covers tagging, compression and upload of all images.
const catalogCreateTimeout = 55 * time.Second

// createProductHandler godoc
//
//	@Summary		Create a product
//	@Description	Generates tags with the text model and uploads the images concurrently, then stores the product.
//	@Description	A sale price must be lower than the price; the stored price becomes the sale price and oldPrice the regular one.
//	@Tags			Products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			images		formData	file	false	"Product images (max 5)"
//	@Param			title		formData	string	true	"Title"
//	@Param			description	formData	string	true	"Description"
//	@Param			price		formData	number	true	"Regular price"
//	@Param			salePrice	formData	number	false	"Sale price"
//	@Param			category	formData	string	true	"Category"
//	@Param			stockCount	formData	int		false	"Stock count (default 0)"
//	@Param			cargoWeight	formData	number	true	"Cargo weight"
//	@Success		201			{object}	map[string]any
//	@Failure		400			{object}	errorEnvelope
//	@Failure		429			{object}	errorEnvelope
//	@Failure		500			{object}	errorEnvelope
//	@Failure		502			{object}	errorEnvelope
//	@Router			/products/add-product [post]
func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), catalogCreateTimeout)
	defer cancel()

	var in ingest.ProductInput
	files, err := parseCatalogForm(w, r, &in)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product, err := app.catalog.CreateProduct(ctx, in, files)
	if err != nil {
		app.ingestErrorResponse(w, r, err, "Failed to add product")
		return
	}
	productsCreated.Add(1)
	imagesUploaded.Add(int64(len(product.ImageURLs)))

	app.successResponse(w, http.StatusCreated, map[string]any{
		"message": "Product created successfully",
		"product": product,
	})
}

// listProductsHandler godoc
//
//	@Summary		List products
//	@Description	Newest first.
//	@Tags			Products
//	@Produce		json
//	@Param			page	query		int	false	"Page number (default: 1)"
//	@Param			limit	query		int	false	"Items per page (default: 10, max: 100)"
//	@Success		200		{object}	map[string]any
//	@Failure		500		{object}	errorEnvelope
//	@Router			/products [get]
func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	p := params.ParsePagination(r.URL.Query())

	list, total, err := app.store.Products.List(ctx, p.Limit, p.Offset)
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

// getProductHandler godoc
//
//	@Summary	Get a product
//	@Tags		Products
//	@Produce	json
//	@Param		productID	path		int	true	"Product ID"
//	@Success	200			{object}	map[string]any
//	@Failure	400			{object}	errorEnvelope
//	@Failure	404			{object}	errorEnvelope
//	@Router		/products/{productID} [get]
func (app *application) getProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || id <= 0 {
		app.badRequestResponse(w, r, fmt.Errorf("invalid product ID"))
		return
	}

	product, err := app.store.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, products.ErrNotFound) {
			app.notFoundResponse(w, r, "Product not found")
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.successResponse(w, http.StatusOK, map[string]any{"product": product})
}
