package main

import (
	"context"
	"errors"
	"net/http"

	"shopadmin/internal/imaging"
	"shopadmin/internal/ingest"
	"shopadmin/internal/objectstore"
	"shopadmin/internal/tagger"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem", "")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadRequest, err.Error(), "")
}

// badRequestMessage answers 400 with a fixed user-facing message.
func (app *application) badRequestMessage(w http.ResponseWriter, r *http.Request, message string) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", message)

	writeJSONError(w, http.StatusBadRequest, message, "")
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path)

	writeJSONError(w, http.StatusNotFound, message, "")
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)

	writeJSONError(w, http.StatusUnauthorized, "unauthorized", "")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)

	writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter, "")
}

// ingestErrorResponse maps a catalog creation failure onto a status and message.
// fallback is the message used for failures with no more specific mapping.
func (app *application) ingestErrorResponse(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var verr *ingest.ValidationError
	switch {
	case errors.As(err, &verr):
		app.badRequestResponse(w, r, verr)
	case errors.Is(err, context.DeadlineExceeded):
		app.failure(w, r, http.StatusGatewayTimeout, "Request timed out", err)
	case errors.Is(err, tagger.ErrRemoteService):
		tagFailures.Add(1)
		app.failure(w, r, http.StatusBadGateway, "AI tag generation failed", err)
	case errors.Is(err, tagger.ErrResponseParse):
		tagFailures.Add(1)
		app.failure(w, r, http.StatusInternalServerError, "Failed to parse AI response", err)
	case errors.Is(err, imaging.ErrCompression):
		app.failure(w, r, http.StatusInternalServerError, "Failed to process images", err)
	case errors.Is(err, objectstore.ErrUpload):
		app.failure(w, r, http.StatusInternalServerError, "Failed to upload images", err)
	default:
		app.failure(w, r, http.StatusInternalServerError, fallback, err)
	}
}

func (app *application) failure(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	app.logger.Errorw(message, "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, status, message, err.Error())
}
