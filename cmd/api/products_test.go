package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopadmin/internal/domain/products"
	"shopadmin/internal/tagger"
)

func productFields() map[string]string {
	return map[string]string{
		"title":       "Desk Lamp",
		"description": "Warm light for late work",
		"price":       "100",
		"salePrice":   "80",
		"category":    "Home",
		"stockCount":  "7",
		"cargoWeight": "1.5",
	}
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)

	req := multipartRequest(t, "/api/products/add-product", productFields(), map[string][]byte{
		"lamp.png": pngBytes(t),
	})
	rr := env.do(req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", rr.Code, rr.Body.String())
	}

	body := decodeBody(t, rr)
	if body["success"] != true || body["message"] != "Product created successfully" {
		t.Fatalf("body = %v", body)
	}
	product := body["product"].(map[string]any)
	if product["price"] != 80.0 || product["oldPrice"] != 100.0 || product["salePrice"] != 80.0 {
		t.Fatalf("prices = %v/%v/%v", product["price"], product["oldPrice"], product["salePrice"])
	}
	if product["stockCount"] != 7.0 {
		t.Fatalf("stockCount = %v", product["stockCount"])
	}
	urls := product["imageURLs"].([]any)
	if len(urls) != 1 || !strings.HasPrefix(urls[0].(string), "memory://bucket/products/") {
		t.Fatalf("imageURLs = %v", urls)
	}
	tags := product["tags"].([]any)
	if len(tags) != 2 || tags[0] != "lamp" {
		t.Fatalf("tags = %v", tags)
	}

	if len(env.products.created) != 1 {
		t.Fatalf("persisted %d products, want 1", len(env.products.created))
	}
	if keys := env.bucket.Keys(); len(keys) != 1 {
		t.Fatalf("bucket keys = %v", keys)
	}
}

func TestCreateProductRejectsSalePriceAbovePrice(t *testing.T) {
	env := newTestEnv(t)

	fields := productFields()
	fields["salePrice"] = "120"
	rr := env.do(multipartRequest(t, "/api/products/add-product", fields, map[string][]byte{
		"lamp.png": pngBytes(t),
	}))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["success"] != false {
		t.Fatalf("body = %v", body)
	}
	if len(env.products.created) != 0 || len(env.bucket.Keys()) != 0 {
		t.Fatal("nothing may be stored for an invalid request")
	}
}

func TestCreateProductValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]string)
		images map[string][]byte
		want   string
	}{
		{"missing title", func(f map[string]string) { delete(f, "title") }, nil, "title"},
		{"non-numeric price", func(f map[string]string) { f["price"] = "cheap" }, nil, "price"},
		{"not an image", func(map[string]string) {}, map[string][]byte{"notes.txt": []byte("hello there")}, "not an image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			fields := productFields()
			tt.mutate(fields)

			rr := env.do(multipartRequest(t, "/api/products/add-product", fields, tt.images))
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d body = %s", rr.Code, rr.Body.String())
			}
			if msg := decodeBody(t, rr)["message"].(string); !strings.Contains(msg, tt.want) {
				t.Fatalf("message %q does not mention %q", msg, tt.want)
			}
		})
	}
}

func TestCreateProductTooManyImages(t *testing.T) {
	env := newTestEnv(t)

	images := map[string][]byte{}
	for i := 0; i < 6; i++ {
		images[fmt.Sprintf("img%d.png", i)] = pngBytes(t)
	}
	rr := env.do(multipartRequest(t, "/api/products/add-product", productFields(), images))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestCreateProductTaggerFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"remote", fmt.Errorf("%w: 403 forbidden", tagger.ErrRemoteService), http.StatusBadGateway, "AI tag generation failed"},
		{"parse", fmt.Errorf("%w: no json", tagger.ErrResponseParse), http.StatusInternalServerError, "Failed to parse AI response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.tagger.err = tt.err
			before := tagFailures.Value()

			rr := env.do(multipartRequest(t, "/api/products/add-product", productFields(), map[string][]byte{
				"lamp.png": pngBytes(t),
			}))
			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			body := decodeBody(t, rr)
			if body["success"] != false || body["message"] != tt.wantMsg {
				t.Fatalf("body = %v", body)
			}
			if len(env.products.created) != 0 {
				t.Fatal("product persisted after tag failure")
			}
			if keys := env.bucket.Keys(); len(keys) != 0 {
				t.Fatalf("uploaded images not removed: %v", keys)
			}
			if tagFailures.Value() != before+1 {
				t.Fatal("tag_generation_failures not incremented")
			}
		})
	}
}

func TestCreateProductTaggerTimeout(t *testing.T) {
	env := newTestEnv(t)
	env.tagger.err = fmt.Errorf("%w: %w", tagger.ErrRemoteService, context.DeadlineExceeded)

	rr := env.do(multipartRequest(t, "/api/products/add-product", productFields(), map[string][]byte{
		"lamp.png": pngBytes(t),
	}))
	if rr.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusGatewayTimeout)
	}
	if body := decodeBody(t, rr); body["message"] != "Request timed out" {
		t.Fatalf("body = %v", body)
	}
}

func TestCreateStoreFailureReportsError(t *testing.T) {
	storeErr := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	trialFields := map[string]string{
		"title":          "Robot Vacuum",
		"description":    "Try it at home",
		"trialPeriod":    "14",
		"availableCount": "3",
		"category":       "Appliances",
	}
	tests := []struct {
		name    string
		path    string
		fields  map[string]string
		wantMsg string
	}{
		{"product", "/api/products/add-product", productFields(), "Failed to add product"},
		{"trial product", "/api/trialProducts/add-trial-product", trialFields, "Failed to add trial product"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.products.err = storeErr
			env.trialProducts.err = storeErr

			rr := env.do(multipartRequest(t, tt.path, tt.fields, map[string][]byte{
				"item.png": pngBytes(t),
			}))
			if rr.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", rr.Code)
			}
			body := decodeBody(t, rr)
			if body["success"] != false || body["message"] != tt.wantMsg {
				t.Fatalf("body = %v", body)
			}
			if detail, _ := body["error"].(string); !strings.Contains(detail, "connection refused") {
				t.Fatalf("error = %v, want store failure detail", body["error"])
			}
			if keys := env.bucket.Keys(); len(keys) != 0 {
				t.Fatalf("uploaded images not removed: %v", keys)
			}
		})
	}
}

func TestListProducts(t *testing.T) {
	env := newTestEnv(t)
	env.products.list = []*products.Product{{ID: 3, Title: "c"}, {ID: 2, Title: "b"}}
	env.products.total = 12

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/products?page=2&limit=5", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if len(body["data"].([]any)) != 2 {
		t.Fatalf("data = %v", body["data"])
	}
	p := body["pagination"].(map[string]any)
	if p["total"] != 12.0 || p["currentPage"] != 2.0 || p["totalPages"] != 3.0 || p["limit"] != 5.0 {
		t.Fatalf("pagination = %v", p)
	}
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	env.products.byID[4] = &products.Product{ID: 4, Title: "Lamp"}

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/products/4", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := decodeBody(t, rr)["product"].(map[string]any)["title"]; got != "Lamp" {
		t.Fatalf("title = %v", got)
	}

	if rr := env.do(httptest.NewRequest(http.MethodGet, "/api/products/5", nil)); rr.Code != http.StatusNotFound {
		t.Fatalf("missing product status = %d", rr.Code)
	}
	if rr := env.do(httptest.NewRequest(http.MethodGet, "/api/products/abc", nil)); rr.Code != http.StatusBadRequest {
		t.Fatalf("bad id status = %d", rr.Code)
	}
}

func TestCreateAndGetTrialProduct(t *testing.T) {
	env := newTestEnv(t)

	fields := map[string]string{
		"title":          "Robot Vacuum",
		"description":    "Try it at home",
		"trialPeriod":    "14",
		"availableCount": "3",
		"category":       "Appliances",
	}
	rr := env.do(multipartRequest(t, "/api/trialProducts/add-trial-product", fields, map[string][]byte{
		"robot.png": pngBytes(t),
	}))
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["message"] != "Trial product created successfully" {
		t.Fatalf("message = %v", body["message"])
	}
	trial := body["trialProduct"].(map[string]any)
	if trial["trialPeriod"] != 14.0 || trial["availableCount"] != 3.0 {
		t.Fatalf("trialProduct = %v", trial)
	}
	urls := trial["imageURLs"].([]any)
	if len(urls) != 1 || !strings.HasPrefix(urls[0].(string), "memory://bucket/trial-products/") {
		t.Fatalf("imageURLs = %v", urls)
	}

	rr = env.do(httptest.NewRequest(http.MethodGet, "/api/trialProducts/1", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("get status = %d", rr.Code)
	}
	if rr := env.do(httptest.NewRequest(http.MethodGet, "/api/trialProducts/99", nil)); rr.Code != http.StatusNotFound {
		t.Fatalf("missing trial product status = %d", rr.Code)
	}

	rr = env.do(httptest.NewRequest(http.MethodGet, "/api/trialProducts", nil))
	if rr.Code != http.StatusOK || len(decodeBody(t, rr)["data"].([]any)) != 1 {
		t.Fatalf("list status = %d body = %s", rr.Code, rr.Body.String())
	}
}

func TestCreateTrialProductRequiresTrialPeriod(t *testing.T) {
	env := newTestEnv(t)

	fields := map[string]string{
		"title": "Robot Vacuum", "description": "Try it", "availableCount": "3", "category": "Appliances",
	}
	rr := env.do(multipartRequest(t, "/api/trialProducts/add-trial-product", fields, nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if len(env.trialProducts.created) != 0 {
		t.Fatal("trial product persisted")
	}
}
