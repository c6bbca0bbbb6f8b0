package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopadmin/docs" //this is required to generate swagger docs
	"shopadmin/internal/domain/products"
	"shopadmin/internal/domain/storage"
	"shopadmin/internal/domain/trialproducts"
	"shopadmin/internal/ingest"
	"shopadmin/internal/objectstore"
	"shopadmin/internal/ratelimiter"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// catalogService creates products and trial products from a form and its images.
type catalogService interface {
	CreateProduct(ctx context.Context, in ingest.ProductInput, files []objectstore.File) (*products.Product, error)
	CreateTrialProduct(ctx context.Context, in ingest.TrialProductInput, files []objectstore.File) (*trialproducts.TrialProduct, error)
}

type application struct {
	config      config
	store       *storage.Container
	logger      *zap.SugaredLogger
	catalog     catalogService
	rateLimiter ratelimiter.Limiter
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	storage     storageConfig
	images      imageConfig
	gemini      geminiConfig
	auth        authConfig
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
}

type basicConfig struct {
	user string
	pass string
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
}

type storageConfig struct {
	driver        string
	region        string
	bucket        string
	endpoint      string
	publicBaseURL string
	cloudinaryURL string
	uploadTimeout time.Duration
}

type imageConfig struct {
	compress  bool
	maxSizeKB int
	maxWidth  int
	format    string
}

type geminiConfig struct {
	apiKey  string
	model   string
	timeout time.Duration
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	// Signals through ctx.Done() that the request has timed out.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Route("/products", func(r chi.Router) {
			r.With(app.RateLimiterMiddleware).Post("/add-product", app.createProductHandler)
			r.Get("/", app.listProductsHandler)
			r.Get("/{productID}", app.getProductHandler)
		})

		r.Route("/trialProducts", func(r chi.Router) {
			r.With(app.RateLimiterMiddleware).Post("/add-trial-product", app.createTrialProductHandler)
			r.Get("/", app.listTrialProductsHandler)
			r.Get("/{trialProductID}", app.getTrialProductHandler)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/get-feed-orders", app.listFeedOrdersHandler)
			r.Get("/search-order-by-id", app.searchOrderByIDHandler)
			r.Get("/details/{orderId}", app.getOrderDetailsHandler)
			r.Patch("/update-status/{orderId}", app.updateOrderStatusHandler)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/get-customers", app.listCustomersHandler)
			r.Get("/search-customer-by-id/{id}", app.getCustomerHandler)
		})

		r.Get("/dashboard", app.dashboardHandler)
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 90,
		ReadTimeout:  time.Second * 30,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
