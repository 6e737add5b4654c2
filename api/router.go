// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"github.com/alisontirado/estacionatec/db"
	"github.com/alisontirado/estacionatec/middleware"
	"github.com/alisontirado/estacionatec/model"
	"github.com/alisontirado/estacionatec/security"
	"github.com/alisontirado/estacionatec/storage"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Argon  *security.ArgonHash
	Store  storage.Store
}

func NewRouter() (*API, error) {
	a := &API{
		Argon: security.NewArgon(),
	}

	d, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = d

	if err := db.EnsureAdmin(d, a.Argon); err != nil {
		return nil, err
	}

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
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

				if v := c.GetUint("userID"); v != 0 {
					fields = append(fields, zap.Uint("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	a.Router.MaxMultipartMemory = 5 << 20

	a.registerRoutes(router, d)

	st, err := storage.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage, %w", err)
	}
	a.Store = st

	return a, nil
}

func (a *API) registerRoutes(router *gin.Engine, d *gorm.DB) {
	// Page routes bounce unauthenticated browsers back to the login form,
	// API routes answer with JSON errors
	page := middleware.NewAuthMiddleware(d, true)
	auth := middleware.NewAuthMiddleware(d, false)
	staffOnly := middleware.RequireRole(model.RoleStaff)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	lookupLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 5,
		Burst:             10,
	})

	// HEAD /heartbeat			-> Used to check if the server is alive
	router.HEAD("/heartbeat", a.Heartbeat)

	// GET /				-> Login form descriptor
	router.GET("/", a.LoginPage)

	// POST /perfil_usuario			-> Logs in a user and sets the session cookie
	router.POST("/perfil_usuario", middleware.BodySizeLimiter(1<<20), a.Login)

	// GET|POST /registro_usuario		-> Registration form / submission
	router.GET("/registro_usuario", a.RegisterPage)
	router.POST("/registro_usuario", middleware.BodySizeLimiter(1<<20), a.Register)

	// GET /logout				-> Clears the session and redirects to the login form
	router.GET("/logout", a.Logout)

	// GET /obtener_info/:placa		-> Public vehicle status lookup for the QR scanner
	router.GET("/obtener_info/:placa", lookupLimiter, cacheFor(10), a.VehicleLookup)

	user := router.Group("/", page)
	{
		// GET /miperfil		-> Caller's own profile
		user.GET("/miperfil", a.Profile)

		// GET|POST /miperfil/qr	-> Caller's parking QR code
		user.GET("/miperfil/qr", a.QRFetch)
		user.POST("/miperfil/qr", a.QRGenerate)

		// GET /resumen/pago		-> Caller's payment history
		user.GET("/resumen/pago", a.PaymentHistory)

		// GET|POST /carga/vehiculo	-> Vehicle registration form / submission
		user.GET("/carga/vehiculo", a.VehicleUploadPage)
		user.POST("/carga/vehiculo", middleware.BodySizeLimiter(viper.GetInt64("upload.max_size")), a.VehicleUpload)
	}

	// GET /scanner				-> QR scanner page, security staff only.
	// Students get redirected to their profile inside the handler
	router.GET("/scanner", page, a.Scanner)

	// POST /registro_acceso		-> Records an entry or exit after a scan
	router.POST("/registro_acceso", auth, staffOnly, middleware.BodySizeLimiter(1<<20), a.AccessLogCreate)

	// Generic CRUD over all entities, administrator only
	admin := router.Group("/admin", auth, adminOnly)
	{
		admin.GET("/:entity", a.AdminList)
		admin.GET("/:entity/:id", a.AdminGet)
		admin.POST("/:entity", middleware.BodySizeLimiter(1<<20), a.AdminCreate)
		admin.PUT("/:entity/:id", middleware.BodySizeLimiter(1<<20), a.AdminUpdate)
		admin.DELETE("/:entity/:id", a.AdminDelete)
	}
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

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
