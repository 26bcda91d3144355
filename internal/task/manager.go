package task

import (
	"github.com/blues/ccs/internal/config"
	"github.com/blues/ccs/internal/logger"
	"github.com/blues/ccs/internal/logic"
	"github.com/blues/ccs/internal/repository"
	"github.com/go-co-op/gocron/v2"
)

// Manager 任务管理器
type Manager struct {
	scheduler       gocron.Scheduler
	saleRepo        repository.SaleRepository
	commissionLogic *logic.CommissionLogic
	config          *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(saleRepo repository.SaleRepository, commissionLogic *logic.CommissionLogic, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler:       s,
		saleRepo:        saleRepo,
		commissionLogic: commissionLogic,
		config:          cfg,
	}
}

// Start 启动任务管理器
func Start(saleRepo repository.SaleRepository, commissionLogic *logic.CommissionLogic, cfg *config.Config) *Manager {
	manager := NewManager(saleRepo, commissionLogic, cfg)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	// 注册当期佣金重算任务
	m.RegisterPeriodRecalcJob()
}

// RegisterPeriodRecalcJob 注册当期佣金重算任务
func (m *Manager) RegisterPeriodRecalcJob() {
	job := NewPeriodRecalcJob(m.saleRepo, m.commissionLogic, m.config)

	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
