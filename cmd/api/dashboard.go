package main

import (
	"context"
	"net/http"
	"time"
)

// dashboardHandler godoc
//
//	@Summary		Dashboard overview
//	@Description	User, subscriber and sales totals, last 24h counts, latest reviews and recent subscribers.
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Failure		500	{object}	errorEnvelope
//	@Router			/dashboard [get]
func (app *application) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	overview, err := app.store.Dashboard.GetOverview(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.successResponse(w, http.StatusOK, map[string]any{"data": overview})
}
