package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"shopadmin/internal/db"
	"shopadmin/internal/domain/storage"
	"shopadmin/internal/imaging"
	"shopadmin/internal/ingest"
	"shopadmin/internal/objectstore"
	"shopadmin/internal/ratelimiter"
	"shopadmin/internal/tagger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	defaultRequests := 200
	defaultEnabled := false

	requestsPerTimeFrame := defaultRequests
	if val, exists := os.LookupEnv("RATELIMITER_REQUESTS_COUNT"); exists {
		if parsedVal, err := strconv.Atoi(val); err == nil && parsedVal > 0 {
			requestsPerTimeFrame = parsedVal
		} else {
			fmt.Println("Invalid RATELIMITER_REQUESTS_COUNT, defaulting to", defaultRequests)
		}
	}

	enabled := defaultEnabled
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsedVal, err := strconv.ParseBool(val); err == nil {
			enabled = parsedVal
		} else {
			fmt.Println("Invalid RATE_LIMITER_ENABLED, defaulting to", defaultEnabled)
		}
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: requestsPerTimeFrame,
		TimeFrame:            5 * time.Second,
		Enabled:              enabled,
	}
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	level := zapcore.InfoLevel
	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), level)

	return zap.New(core).Sugar(), nil
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return n
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return d
}

func loadConfig() config {
	return config{
		addr:   envOr("ADDR", ":8080"),
		env:    envOr("ENV", "development"),
		apiURL: envOr("EXTERNAL_URL", "localhost:8080"),
		db: dbConfig{
			addr:        os.Getenv("DB_ADDR"),
			maxConns:    int32(envInt("DB_MAX_CONNS", 30)),
			maxIdleTime: envOr("DB_MAX_IDLE_TIME", "15m"),
		},
		storage: storageConfig{
			driver:        envOr("STORAGE_DRIVER", "s3"),
			region:        os.Getenv("AWS_REGION"),
			bucket:        os.Getenv("AWS_BUCKET_NAME"),
			endpoint:      os.Getenv("S3_ENDPOINT"),
			publicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
			cloudinaryURL: os.Getenv("CLOUDINARY_URL"),
			uploadTimeout: envDuration("UPLOAD_TIMEOUT", 30*time.Second),
		},
		images: imageConfig{
			compress:  envBool("IMAGE_COMPRESSION_ENABLED", true),
			maxSizeKB: envInt("IMAGE_MAX_SIZE_KB", imaging.DefaultMaxSizeKB),
			maxWidth:  envInt("IMAGE_MAX_WIDTH", imaging.DefaultMaxWidth),
			format:    os.Getenv("IMAGE_FORMAT"),
		},
		gemini: geminiConfig{
			apiKey:  os.Getenv("GEMINI_API_KEY"),
			model:   envOr("GEMINI_MODEL", tagger.DefaultModel),
			timeout: envDuration("TAG_TIMEOUT", 30*time.Second),
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
		},
		rateLimiter: LoadRateLimiterConfig(),
	}
}

func newBucket(ctx context.Context, cfg storageConfig) (objectstore.Bucket, error) {
	switch cfg.driver {
	case "s3":
		b, err := objectstore.NewS3Bucket(ctx, objectstore.S3Options{
			Region:        cfg.region,
			Bucket:        cfg.bucket,
			Endpoint:      cfg.endpoint,
			PublicBaseURL: cfg.publicBaseURL,
		})
		if err != nil {
			return nil, err
		}
		return b, nil
	case "cloudinary":
		b, err := objectstore.NewCloudinaryBucket(cfg.cloudinaryURL)
		if err != nil {
			return nil, err
		}
		return b, nil
	case "memory":
		return objectstore.NewMemoryBucket(""), nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.driver)
	}
}

var version = "1.0.0"

//	@title			Shop Admin API
//	@description	Admin backend for the shop: catalog ingestion with AI tagging, orders, customers and dashboard.

//	@contact.name	API Support
//	@contact.url	http://www.swagger.io/support
//	@contact.email	support@swagger.io

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@BasePath					/api
//	@securityDefinitions.basic	BasicAuth

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := loadConfig()

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	// Database
	pool, err := db.New(cfg.db.addr, cfg.db.maxConns, cfg.db.maxIdleTime)
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()
	logger.Info("database connection pool established")

	store := storage.NewContainer(pool)

	// Object storage
	ctx := context.Background()
	bucket, err := newBucket(ctx, cfg.storage)
	if err != nil {
		logger.Fatal(err)
	}

	codec, err := imaging.CodecByName(cfg.images.format)
	if err != nil {
		logger.Fatal(err)
	}
	policy := imaging.DefaultPolicy()
	policy.MaxSizeKB = cfg.images.maxSizeKB
	policy.MaxWidth = cfg.images.maxWidth
	policy.Codec = codec

	uploader, err := objectstore.NewUploader(objectstore.UploaderOptions{
		Bucket:      bucket,
		Compress:    cfg.images.compress,
		Compression: policy,
		PutTimeout:  cfg.storage.uploadTimeout,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal(err)
	}

	// Tag generation
	generator, err := tagger.NewGeminiGenerator(ctx, cfg.gemini.apiKey, cfg.gemini.model)
	if err != nil {
		logger.Fatal(err)
	}
	tags, err := tagger.New(tagger.Options{
		Generator:   generator,
		CallTimeout: cfg.gemini.timeout,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal(err)
	}

	catalog, err := ingest.New(ingest.Options{
		Tagger:        tags,
		Uploader:      uploader,
		Products:      store.Products,
		TrialProducts: store.TrialProducts,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal(err)
	}

	app := &application{
		config:  cfg,
		logger:  logger,
		store:   store,
		catalog: catalog,
	}
	if cfg.rateLimiter.Enabled {
		app.rateLimiter = ratelimiter.NewFixedWindowLimiter(
			cfg.rateLimiter.RequestsPerTimeFrame,
			cfg.rateLimiter.TimeFrame,
		)
	}

	//Metrics collected http://localhost:8080/api/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		st := pool.Stat()
		return map[string]any{
			"max_conns":      st.MaxConns(),
			"total_conns":    st.TotalConns(),
			"idle_conns":     st.IdleConns(),
			"acquired_conns": st.AcquiredConns(),
			"acquire_count":  st.AcquireCount(),
		}
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
