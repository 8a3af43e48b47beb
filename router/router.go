package router

import (
	"time"

	"moneybook/api"
	"moneybook/config"
	_ "moneybook/docs"
	"moneybook/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		// 认证相关路由（无需登录）
		authHandler := api.NewAuthHandler(cfg)
		passwordResetHandler := api.NewPasswordResetHandler(cfg)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(5, time.Minute), authHandler.Login)
		}

		// 密码重置（无需登录）
		password := v1.Group("/password")
		{
			password.POST("/request-reset", passwordResetHandler.RequestPasswordReset)
			password.GET("/verify-token", passwordResetHandler.VerifyResetToken)
			password.POST("/reset", passwordResetHandler.ResetPassword)
		}

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			// 用户相关
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/password", authHandler.ChangePassword)

			// 现金账户
			accountHandler := api.NewAccountHandler()
			accounts := authorized.Group("/accounts")
			{
				accounts.POST("", accountHandler.Create)
				accounts.GET("", accountHandler.List)
				accounts.GET("/:id", accountHandler.Get)
				accounts.PUT("/:id", accountHandler.Update)
				accounts.DELETE("/:id", accountHandler.Delete)
			}

			// 信用卡
			cardHandler := api.NewCardHandler()
			cards := authorized.Group("/cards")
			{
				cards.POST("", cardHandler.Create)
				cards.GET("", cardHandler.List)
				cards.GET("/:id", cardHandler.Get)
				cards.PUT("/:id", cardHandler.Update)
				cards.DELETE("/:id", cardHandler.Delete)
				cards.POST("/:id/pay", cardHandler.Pay)
			}

			// 分类
			categoryHandler := api.NewCategoryHandler()
			categories := authorized.Group("/categories")
			{
				categories.POST("", categoryHandler.Create)
				categories.GET("", categoryHandler.List)
				categories.PUT("/:id", categoryHandler.Update)
				categories.DELETE("/:id", categoryHandler.Delete)
			}

			// 标签
			tagHandler := api.NewTagHandler()
			tags := authorized.Group("/tags")
			{
				tags.POST("", tagHandler.Create)
				tags.GET("", tagHandler.List)
				tags.PUT("/:id", tagHandler.Update)
				tags.DELETE("/:id", tagHandler.Delete)
			}

			// 交易
			transactionHandler := api.NewTransactionHandler()
			transactions := authorized.Group("/transactions")
			{
				transactions.POST("", transactionHandler.Create)
				transactions.GET("", transactionHandler.List)
				transactions.GET("/:id", transactionHandler.Get)
				transactions.PUT("/:id", transactionHandler.Update)
				transactions.DELETE("/:id", transactionHandler.Delete)
			}

			// 转账
			transferHandler := api.NewTransferHandler()
			transfers := authorized.Group("/transfers")
			{
				transfers.POST("", transferHandler.Create)
				transfers.GET("", transferHandler.List)
				transfers.GET("/:id", transferHandler.Get)
				transfers.PUT("/:id", transferHandler.Update)
				transfers.DELETE("/:id", transferHandler.Delete)
			}

			// 余额调整与重算
			adjustmentHandler := api.NewAdjustmentHandler()
			authorized.POST("/adjustments", adjustmentHandler.Create)
			authorized.GET("/adjustments", adjustmentHandler.List)
			authorized.POST("/recalculate", adjustmentHandler.Recalculate)

			// 统计
			summaryHandler := api.NewSummaryHandler()
			statistics := authorized.Group("/statistics")
			{
				statistics.GET("/net-worth", summaryHandler.NetWorth)
				statistics.GET("/summary", summaryHandler.IncomeExpense)
				statistics.GET("/by-category", summaryHandler.ByCategory)
			}

			// 导出
			exportHandler := api.NewExportHandler()
			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/json", exportHandler.ExportJSON)
				export.GET("/excel", exportHandler.ExportExcel)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
