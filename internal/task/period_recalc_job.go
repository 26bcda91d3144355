package task

import (
	"time"

	"github.com/blues/ccs/internal/calc"
	"github.com/blues/ccs/internal/config"
	"github.com/blues/ccs/internal/logger"
	"github.com/blues/ccs/internal/logic"
	"github.com/blues/ccs/internal/repository"
	"github.com/go-co-op/gocron/v2"
)

// PeriodRecalcJob 当期佣金重算任务
// 定期重放当前期间内有销售记录的组织，保证规则变更后的佣金最终一致
type PeriodRecalcJob struct {
	saleRepo        repository.SaleRepository
	commissionLogic *logic.CommissionLogic
	config          *config.Config
}

// NewPeriodRecalcJob 创建当期佣金重算任务
func NewPeriodRecalcJob(saleRepo repository.SaleRepository, commissionLogic *logic.CommissionLogic, cfg *config.Config) *PeriodRecalcJob {
	return &PeriodRecalcJob{
		saleRepo:        saleRepo,
		commissionLogic: commissionLogic,
		config:          cfg,
	}
}

// GetName 获取任务名称
func (j *PeriodRecalcJob) GetName() string {
	return "period_commission_recalc"
}

// GetSchedule 获取调度配置
func (j *PeriodRecalcJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *PeriodRecalcJob) Execute() {
	period := calc.ExtractPeriod(time.Now())
	logger.Info("Starting period commission recalc task for period %s", period)

	organizationIds, err := j.saleRepo.FindOrganizationIdsByPeriod(period)
	if err != nil {
		logger.Error("Failed to fetch organizations for period %s: %v", period, err)
		return
	}

	processedCount := 0
	for _, organizationId := range organizationIds {
		counters, err := j.commissionLogic.CalculateForPeriod(organizationId, period)
		if err != nil {
			logger.Error("Failed to recalc period %s for organization %d: %v", period, organizationId, err)
			continue
		}

		logger.Info("Recalculated period %s for organization %d: calculated=%d skipped=%d errors=%d total=%s",
			period, organizationId, counters.Calculated, counters.Skipped, counters.Errors,
			counters.TotalAmount.StringFixed(2))
		processedCount++
	}

	logger.Info("Period commission recalc task completed. Processed %d organizations", processedCount)
}
