package main

import (
	"log"

	"github.com/blues/ccs/internal/config"
	"github.com/blues/ccs/internal/database"
	"github.com/blues/ccs/internal/logger"
	"github.com/blues/ccs/internal/logic"
	"github.com/blues/ccs/internal/repository"
	"github.com/blues/ccs/internal/router"
	"github.com/blues/ccs/internal/task"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	logger.Init(cfg.Log)

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化仓储层
	saleRepo := repository.NewSaleRepository(db)
	ruleRepo := repository.NewRuleRepository(db)
	sellerRepo := repository.NewSellerRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)

	// 初始化业务逻辑层，佣金逻辑在处理器与定时任务间共享以保证组织级串行
	ruleLogic := logic.NewRuleLogic(ruleRepo, sellerRepo)
	commissionLogic := logic.NewCommissionLogic(saleRepo, ruleRepo, sellerRepo, commissionRepo, ruleLogic, cfg.Commission.Workers)
	saleLogic := logic.NewSaleLogic(saleRepo, sellerRepo, commissionRepo, commissionLogic,
		decimal.NewFromFloat(cfg.Commission.TaxDeductionRate))

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(ruleLogic, saleLogic, commissionLogic)

	// 启动定时任务
	task.Start(saleRepo, commissionLogic, cfg)

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
