package router

import (
	"github.com/blues/ccs/internal/handler"
	"github.com/blues/ccs/internal/logic"
	"github.com/gin-gonic/gin"
)

func Setup(ruleLogic *logic.RuleLogic, saleLogic *logic.SaleLogic, commissionLogic *logic.CommissionLogic) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "commission-service",
		})
	})

	ruleHandler := handler.NewRuleHandler(ruleLogic, commissionLogic)
	saleHandler := handler.NewSaleHandler(saleLogic)
	commissionHandler := handler.NewCommissionHandler(commissionLogic)

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 销售记录相关路由
		sales := v1.Group("/sales")
		{
			sales.POST("", saleHandler.CreateSale)
			sales.GET("", saleHandler.GetSales)
			sales.DELETE("/:id", saleHandler.DeleteSale)
		}

		// 佣金规则相关路由
		rules := v1.Group("/rules")
		{
			rules.POST("", ruleHandler.CreateRule)
			rules.GET("", ruleHandler.GetRules)
			rules.GET("/:id", ruleHandler.GetRule)
			rules.PUT("/:id", ruleHandler.UpdateRule)
			rules.POST("/validate-tiers", ruleHandler.ValidateTiers)
		}

		// 销售员规则关联
		v1.PUT("/sellers/:id/rule", ruleHandler.AssignSellerRule)

		// 佣金计算相关路由
		commissions := v1.Group("/commissions")
		{
			commissions.POST("/sales/:id", commissionHandler.CalculateForSale)
			commissions.POST("/period", commissionHandler.CalculateForPeriod)
			commissions.DELETE("/period", commissionHandler.DeletePeriod)
			commissions.POST("/sellers/:id", commissionHandler.RecalculateForSeller)
			commissions.POST("/rules/:id", commissionHandler.RecalculateForRule)
			commissions.GET("/summary", commissionHandler.GetSellerSummary)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
