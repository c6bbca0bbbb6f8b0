// Package ingest creates catalog entries from a form and a set of images:
// tags are generated and images uploaded concurrently, then the record is stored.
// Uploaded images are removed again if anything after the upload fails.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shopadmin/internal/domain/products"
	"shopadmin/internal/domain/trialproducts"
	"shopadmin/internal/objectstore"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	MaxImages = 5

	ProductsFolder      = "products"
	TrialProductsFolder = "trial-products"
)

type Tagger interface {
	GenerateTags(ctx context.Context, title, description, category string) ([]string, error)
}

type Uploader interface {
	Upload(ctx context.Context, files []objectstore.File, folder string) ([]objectstore.Object, error)
	Remove(ctx context.Context, keys []string) error
}

type ProductStore interface {
	Create(ctx context.Context, p *products.Product) error
}

type TrialProductStore interface {
	Create(ctx context.Context, t *trialproducts.TrialProduct) error
}

type Options struct {
	Tagger        Tagger
	Uploader      Uploader
	Products      ProductStore
	TrialProducts TrialProductStore
	Validate      *validator.Validate
	Logger        *zap.SugaredLogger
}

type Service struct {
	tagger        Tagger
	uploader      Uploader
	products      ProductStore
	trialProducts TrialProductStore
	validate      *validator.Validate
	logger        *zap.SugaredLogger
}

func New(opts Options) (*Service, error) {
	switch {
	case opts.Tagger == nil:
		return nil, errors.New("ingest: tagger is required")
	case opts.Uploader == nil:
		return nil, errors.New("ingest: uploader is required")
	case opts.Products == nil || opts.TrialProducts == nil:
		return nil, errors.New("ingest: stores are required")
	}
	s := &Service{
		tagger:        opts.Tagger,
		uploader:      opts.Uploader,
		products:      opts.Products,
		trialProducts: opts.TrialProducts,
		validate:      opts.Validate,
		logger:        opts.Logger,
	}
	if s.validate == nil {
		s.validate = NewValidator()
	}
	if s.logger == nil {
		s.logger = zap.NewNop().Sugar()
	}
	return s, nil
}

// CreateProduct validates in, applies the sale price rule and stores a new
// product with generated tags and uploaded image URLs.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput, files []objectstore.File) (*products.Product, error) {
	trimInput(&in)
	if err := validate(s.validate, in); err != nil {
		return nil, err
	}

	price, err := parseAmount("price", in.Price, priceScale)
	if err != nil {
		return nil, err
	}
	var sale *float64
	if in.SalePrice != "" {
		v, err := parseAmount("salePrice", in.SalePrice, priceScale)
		if err != nil {
			return nil, err
		}
		if v >= price {
			return nil, &ValidationError{
				Fields:  []string{"salePrice"},
				Message: "sale price must be less than regular price",
			}
		}
		sale = &v
	}
	cargo, err := parseAmount("cargoWeight", in.CargoWeight, weightScale)
	if err != nil {
		return nil, err
	}
	stock, err := parseCount("stockCount", in.StockCount, 0)
	if err != nil {
		return nil, err
	}
	if files, err = checkImages(files); err != nil {
		return nil, err
	}

	p := &products.Product{
		Title:       in.Title,
		Description: in.Description,
		StockCount:  stock,
		Category:    in.Category,
		CargoWeight: cargo,
	}
	p.ApplySalePrice(price, sale)

	err = s.run(ctx, in.Title, in.Description, in.Category, files, ProductsFolder,
		func(ctx context.Context, tags, urls []string) error {
			p.Tags, p.ImageURLs = tags, urls
			return s.products.Create(ctx, p)
		})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateTrialProduct is CreateProduct for trial products.
func (s *Service) CreateTrialProduct(ctx context.Context, in TrialProductInput, files []objectstore.File) (*trialproducts.TrialProduct, error) {
	trimInput(&in)
	if err := validate(s.validate, in); err != nil {
		return nil, err
	}

	period, err := parseCount("trialPeriod", in.TrialPeriod, 0)
	if err != nil {
		return nil, err
	}
	available, err := parseCount("availableCount", in.AvailableCount, 0)
	if err != nil {
		return nil, err
	}
	if files, err = checkImages(files); err != nil {
		return nil, err
	}

	t := &trialproducts.TrialProduct{
		Title:          in.Title,
		Description:    in.Description,
		TrialPeriod:    period,
		AvailableCount: available,
		Category:       in.Category,
	}

	err = s.run(ctx, in.Title, in.Description, in.Category, files, TrialProductsFolder,
		func(ctx context.Context, tags, urls []string) error {
			t.Tags, t.ImageURLs = tags, urls
			return s.trialProducts.Create(ctx, t)
		})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// run generates tags and uploads files concurrently, then calls persist.
// Uploaded objects are removed when tagging, persisting or the request fails.
func (s *Service) run(
	ctx context.Context,
	title, description, category string,
	files []objectstore.File,
	folder string,
	persist func(ctx context.Context, tags, urls []string) error,
) error {
	start := time.Now()

	var (
		tags    []string
		objects []objectstore.Object
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tags, err = s.tagger.GenerateTags(gctx, title, description, category)
		return err
	})
	g.Go(func() error {
		var err error
		objects, err = s.uploader.Upload(gctx, files, folder)
		return err
	})

	if err := g.Wait(); err != nil {
		s.discard(ctx, objects)
		return err
	}

	if err := ctx.Err(); err != nil {
		s.discard(ctx, objects)
		return err
	}

	if err := persist(ctx, tags, objectstore.URLs(objects)); err != nil {
		s.discard(ctx, objects)
		return err
	}

	s.logger.Infow("catalog entry created",
		"folder", folder,
		"title", title,
		"tags", len(tags),
		"images", len(objects),
		"duration", time.Since(start).String(),
	)
	return nil
}

func (s *Service) discard(ctx context.Context, objects []objectstore.Object) {
	if len(objects) == 0 {
		return
	}
	keys := objectstore.Keys(objects)
	if err := s.uploader.Remove(context.WithoutCancel(ctx), keys); err != nil {
		s.logger.Errorw("failed to remove uploaded images", "keys", keys, "error", err.Error())
		return
	}
	s.logger.Infow("removed uploaded images after failure", "count", len(keys))
}

// checkImages enforces the image count and replaces declared content types
// with the sniffed ones. Non-image payloads are rejected.
func checkImages(files []objectstore.File) ([]objectstore.File, error) {
	if len(files) > MaxImages {
		return nil, &ValidationError{
			Fields:  []string{"images"},
			Message: fmt.Sprintf("at most %d images are allowed", MaxImages),
		}
	}

	out := make([]objectstore.File, len(files))
	for i, f := range files {
		mt := mimetype.Detect(f.Data)
		if !strings.HasPrefix(mt.String(), "image/") {
			return nil, &ValidationError{
				Fields:  []string{"images"},
				Message: fmt.Sprintf("%s is not an image (%s)", f.Name, mt.String()),
			}
		}
		f.ContentType = mt.String()
		out[i] = f
	}
	return out, nil
}
