// Package app wires configuration, storage, the database and every route
// into a runnable engine
package app

import (
	"fmt"
	"time"

	"sharepile/file-api/app/file"
	"sharepile/file-api/app/root"
	"sharepile/file-api/app/user"
	"sharepile/file-api/db"
	"sharepile/file-api/internal"
	"sharepile/file-api/internal/storage"
	"sharepile/file-api/pkg/middleware"
	"sharepile/file-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/static"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

func NewRouter() (*gin.Engine, error) {
	d := &internal.Deps{}

	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
	}
	d.DB = database

	blobs, err := storage.New(viper.GetString("storage.path"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage, %w", err)
	}
	d.Store = blobs
	d.Argon = security.New()

	makeLogger()

	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors_origins"),
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	jwt := middleware.NewJWTMiddleware(database)
	rateLimit := viper.GetInt("security.rate_limit")
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
		CleanupInterval:   time.Second,
	})
	maxUploadSize := viper.GetInt64("upload.max_size")

	// The SPA build output is served from the same process
	router.Use(static.Serve("/", static.LocalFile("web", true)))

	main := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/validate		-> Validates a JWT token
		main.GET("/validate", jwt, root.Validate)
	}

	users := main.Group("/users", middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/users		-> Returns the profile and stats of a user
		users.GET("", jwt, cachePerUser(30), func(c *gin.Context) { user.UserFetch(c, d) })

		// POST /api/users 		-> Registers a new user
		users.POST("", func(c *gin.Context) { user.UserRegister(c, d) })

		// POST /api/users/login 	-> Logs in a user and returns a JWT token
		users.POST("/login", func(c *gin.Context) { user.UserLogin(c, d) })

		// POST /api/users/logout	-> Clears the auth cookie
		users.POST("/logout", jwt, func(c *gin.Context) { user.UserLogout(c, d) })
	}

	files := main.Group("/files", jwt)
	{
		// POST /api/files         	-> Uploads a new file and stores it in the database
		files.POST("", middleware.BodySizeLimiter(maxUploadSize), func(c *gin.Context) { file.FileUpload(c, d) })

		// GET /api/files/bulk 		-> Returns a user's files with inlined content
		files.GET("/bulk", func(c *gin.Context) { file.FileList(c, d) })

		// PATCH /api/files/:id/tags	-> Merges tags into a file owned by the user
		files.PATCH("/:id/tags", func(c *gin.Context) { file.FileAddTags(c, d) })

		// POST /api/files/:id/links	-> Issues a new share token for a file owned by the user
		files.POST("/:id/links", func(c *gin.Context) { file.FileCreateLink(c, d) })
	}

	// GET /api/shared/:token		-> Resolves a share token, counts the view and returns the content
	main.GET("/shared/:token", func(c *gin.Context) { file.FileResolve(c, d) })

	return router, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

// cachePerUser caches a response keyed by caller, a plain URI key would
// hand one user's payload to the next
func cachePerUser(sec int) gin.HandlerFunc {
	return cache.Cache(store, time.Second*time.Duration(sec),
		cache.WithCacheStrategyByRequest(func(c *gin.Context) (bool, cache.Strategy) {
			return true, cache.Strategy{
				CacheKey: c.Request.RequestURI + ":" + c.GetString("userID"),
			}
		}),
	)
}
