// Package app contains all endpoints available
package app

import (
	"fmt"
	"strings"
	"time"

	"boycottwatch/catalog-api/app/admin"
	"boycottwatch/catalog-api/app/companycode"
	"boycottwatch/catalog-api/app/countrycode"
	"boycottwatch/catalog-api/app/denotion"
	"boycottwatch/catalog-api/app/product"
	"boycottwatch/catalog-api/app/report"
	"boycottwatch/catalog-api/app/root"
	"boycottwatch/catalog-api/app/user"
	"boycottwatch/catalog-api/aws"
	"boycottwatch/catalog-api/cloudflare"
	"boycottwatch/catalog-api/db"
	"boycottwatch/catalog-api/internal"
	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/internal/service"
	"boycottwatch/catalog-api/pkg/middleware"
	"boycottwatch/catalog-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
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

// TODO: use redis
var store = persist.NewMemoryStore(time.Minute)

func NewRouter() (*gin.Engine, error) {
	d := &internal.Deps{}

	makeLogger()

	router := gin.New()

	conn, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	d.DB = conn

	origins := strings.Split(viper.GetString("host.cors"), ",")

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "accesstoken"},
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

				if v, ok := c.Get(middleware.AuthUserKey); ok {
					if p, ok := v.(model.Principal); ok {
						fields = append(fields, zap.Uint("principal_id", p.ID), zap.String("role", string(p.Role)))
					}
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	d.Argon = security.NewArgon()

	tokens, err := security.TokenCodecFromConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token codec, %w", err)
	}
	d.Tokens = tokens

	var s3 *aws.S3Client
	switch viper.GetString("storage.type") {
	case "r2":
		s3, err = cloudflare.NewR2()
	default:
		s3, err = aws.NewS3()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
	}
	d.Uploader = service.NewS3Uploader(s3)
	d.Mailer = service.NewSMTPMailer()

	auth := middleware.NewAuthMiddleware(conn, tokens, viper.GetString("jwt.prefix"))
	adminOnly := middleware.RequireRoles(model.RoleAdmin)
	userOnly := middleware.RequireRoles(model.RoleUser)
	anyRole := middleware.RequireRoles(model.RoleAdmin, model.RoleUser)

	rateLimit := viper.GetInt("security.rate_limit")
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
		CleanupInterval:   time.Second,
	})

	// HEAD /heartbeat 	-> Used to check if the server is alive
	router.HEAD("/heartbeat", root.Heartbeat)

	u := router.Group("/user")
	{
		// POST /user/signUp 			-> Registers a new user account
		u.POST("/signUp", rateLimiter, middleware.BodySizeLimiter(5<<20), func(c *gin.Context) { user.SignUp(c, d) })

		// GET /user/confirm-email/:token 	-> Marks an account as verified
		u.GET("/confirm-email/:token", func(c *gin.Context) { user.ConfirmEmail(c, d) })

		// POST /user/signIn 			-> Logs in a verified user
		u.POST("/signIn", rateLimiter, func(c *gin.Context) { user.SignIn(c, d) })

		// GET /user/getUser 			-> Returns the basic info of a user
		u.GET("/getUser", auth, userOnly, func(c *gin.Context) { user.Fetch(c, d) })

		// PUT /user/updateAccount 		-> Updates name, email or avatar
		u.PUT("/updateAccount", auth, userOnly, func(c *gin.Context) { user.Update(c, d) })

		// DELETE /user/deleteAccount 		-> Deletes a user account
		u.DELETE("/deleteAccount", auth, userOnly, func(c *gin.Context) { user.Delete(c, d) })
	}

	a := router.Group("/admin")
	{
		// POST /admin/signUp 			-> Registers a new admin account
		a.POST("/signUp", rateLimiter, middleware.BodySizeLimiter(5<<20), func(c *gin.Context) { admin.SignUp(c, d) })

		// GET /admin/confirm-email/:token 	-> Marks an account as verified
		a.GET("/confirm-email/:token", func(c *gin.Context) { admin.ConfirmEmail(c, d) })

		// POST /admin/signIn 			-> Logs in a verified admin
		a.POST("/signIn", rateLimiter, func(c *gin.Context) { admin.SignIn(c, d) })

		// GET /admin/getData 			-> Returns the basic info of an admin
		a.GET("/getData", auth, adminOnly, func(c *gin.Context) { admin.Fetch(c, d) })

		// PUT /admin/updateAccount 		-> Updates name, email or avatar
		a.PUT("/updateAccount", auth, adminOnly, func(c *gin.Context) { admin.Update(c, d) })

		// DELETE /admin/deleteAccountAdmin 	-> Deletes an admin account
		a.DELETE("/deleteAccountAdmin", auth, adminOnly, func(c *gin.Context) { admin.Delete(c, d) })
	}

	p := router.Group("/product")
	{
		p.POST("/createProduct", auth, adminOnly, func(c *gin.Context) { product.Create(c, d) })
		p.PUT("/updateProduct/:productId", auth, adminOnly, func(c *gin.Context) { product.Update(c, d) })
		p.DELETE("/deleteProduct/:productId", auth, adminOnly, func(c *gin.Context) { product.Delete(c, d) })

		// The catalog itself is public so scanner clients can browse
		// without an account
		p.GET("/getProductById/:productId", cacheFor(15), func(c *gin.Context) { product.Fetch(c, d) })
		p.GET("/getAllProduct", cacheFor(15), func(c *gin.Context) { product.FetchAll(c, d) })
	}

	r := router.Group("/report")
	{
		r.POST("/createReport", auth, userOnly, func(c *gin.Context) { report.Create(c, d) })
		r.PATCH("/updateReport/:reportId", auth, userOnly, func(c *gin.Context) { report.Update(c, d) })
		r.DELETE("/deleteReport/:reportId", auth, userOnly, func(c *gin.Context) { report.Delete(c, d) })
		r.GET("/getReportById/:reportId", auth, anyRole, func(c *gin.Context) { report.Fetch(c, d) })
		r.GET("/getAllReportsByProductId/:productId", auth, anyRole, func(c *gin.Context) { report.FetchByProduct(c, d) })
		r.GET("/getAllReports", auth, adminOnly, func(c *gin.Context) { report.FetchAll(c, d) })
	}

	dn := router.Group("/denotion")
	{
		dn.POST("/createDenotion", auth, adminOnly, func(c *gin.Context) { denotion.Create(c, d) })
		dn.PUT("/updateDenotion/:denotionId", auth, adminOnly, func(c *gin.Context) { denotion.Update(c, d) })
		dn.DELETE("/deleteDenotion/:denotionId", auth, adminOnly, func(c *gin.Context) { denotion.Delete(c, d) })
		dn.GET("/getDenotionById/:denotionId", auth, anyRole, func(c *gin.Context) { denotion.Fetch(c, d) })
		dn.GET("/getAllDenotion", auth, anyRole, func(c *gin.Context) { denotion.FetchAll(c, d) })
	}

	cc := router.Group("/countryCode")
	{
		cc.POST("/addCountryCode", auth, adminOnly, func(c *gin.Context) { countrycode.Create(c, d) })
		cc.PUT("/updateCountryCode/:countryCodeId", auth, adminOnly, func(c *gin.Context) { countrycode.Update(c, d) })
		cc.DELETE("/deleteCountryCode/:countryCodeId", auth, adminOnly, func(c *gin.Context) { countrycode.Delete(c, d) })
		cc.GET("/getCountryCodeById/:countryCodeId", cacheFor(60), func(c *gin.Context) { countrycode.Fetch(c, d) })
		cc.GET("/getAllCountryCode", cacheFor(60), func(c *gin.Context) { countrycode.FetchAll(c, d) })
	}

	cp := router.Group("/companyCode")
	{
		cp.POST("/addCompanyCode", auth, adminOnly, func(c *gin.Context) { companycode.Create(c, d) })
		cp.PUT("/updateCompanyCode/:companyCodeId", auth, adminOnly, func(c *gin.Context) { companycode.Update(c, d) })
		cp.DELETE("/deleteCompanyCode/:companyCodeId", auth, adminOnly, func(c *gin.Context) { companycode.Delete(c, d) })
		cp.GET("/getCompanyCodeById/:companyCodeId", cacheFor(60), func(c *gin.Context) { companycode.Fetch(c, d) })
		cp.GET("/getAllCompanyCode", cacheFor(60), func(c *gin.Context) { companycode.FetchAll(c, d) })
	}

	// Accounts that never confirm their email get removed after the
	// verification deadline passes
	deadline := viper.GetDuration("cleanup.verification_deadline")
	if deadline > 0 {
		go service.AccountCleanup(time.Hour*24, deadline, conn, d.Uploader)
	}

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

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
