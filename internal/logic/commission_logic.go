package logic

import (
	"errors"
	"sync"

	"github.com/blues/ccs/internal/calc"
	"github.com/blues/ccs/internal/logger"
	"github.com/blues/ccs/internal/model"
	"github.com/blues/ccs/internal/repository"
	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"
)

// OutcomeStatus 单笔计算结果状态
type OutcomeStatus string

const (
	OutcomeCalculated OutcomeStatus = "calculated" // 已计算入账
	OutcomeSkipped    OutcomeStatus = "skipped"    // 无生效规则，跳过
	OutcomeError      OutcomeStatus = "error"      // 计算或持久化失败
)

// Outcome 单笔销售的佣金计算结果
type Outcome struct {
	Status     OutcomeStatus          `json:"status"`
	Reason     string                 `json:"reason,omitempty"`
	Commission *model.CommissionModel `json:"commission,omitempty"`
	Breakdown  []calc.TierAmount      `json:"breakdown,omitempty"`
}

// BatchCounters 批量计算汇总计数
type BatchCounters struct {
	Calculated  int             `json:"calculated"`
	Skipped     int             `json:"skipped"`
	Errors      int             `json:"errors"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func newBatchCounters() BatchCounters {
	return BatchCounters{TotalAmount: decimal.Zero}
}

// CommissionLogic 佣金计算编排（单笔计算与级联重算）
type CommissionLogic struct {
	saleRepo       repository.SaleRepository
	ruleRepo       repository.RuleRepository
	sellerRepo     repository.SellerRepository
	commissionRepo repository.CommissionRepository
	ruleLogic      *RuleLogic
	workers        int      // 批量重算协程池大小，0或1表示串行
	orgLocks       sync.Map // 组织级互斥锁，防止并发重算相互覆盖
}

// NewCommissionLogic 创建佣金计算编排
func NewCommissionLogic(
	saleRepo repository.SaleRepository,
	ruleRepo repository.RuleRepository,
	sellerRepo repository.SellerRepository,
	commissionRepo repository.CommissionRepository,
	ruleLogic *RuleLogic,
	workers int,
) *CommissionLogic {
	return &CommissionLogic{
		saleRepo:       saleRepo,
		ruleRepo:       ruleRepo,
		sellerRepo:     sellerRepo,
		commissionRepo: commissionRepo,
		ruleLogic:      ruleLogic,
		workers:        workers,
	}
}

// lockOrganization 获取组织级互斥锁
func (l *CommissionLogic) lockOrganization(organizationId int64) func() {
	value, _ := l.orgLocks.LoadOrStore(organizationId, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// CalculateForSale 计算单笔销售的佣金并按销售ID幂等入账。
// 无生效规则为跳过；规则数据损坏或持久化失败为错误，不会中断调用方的批量流程
func (l *CommissionLogic) CalculateForSale(sale *model.SaleModel) Outcome {
	rule, err := l.ruleLogic.GetEffectiveRule(sale.SellerId, sale.OrganizationId)
	if err != nil {
		logger.Error("Failed to resolve rule for sale %d: %v", sale.Id, err)
		return Outcome{Status: OutcomeError, Reason: err.Error()}
	}
	if rule == nil {
		return Outcome{Status: OutcomeSkipped, Reason: "没有生效的佣金规则"}
	}

	// 阶梯数据应在规则保存时已被校验，走到这里说明数据完整性被破坏
	if rule.Kind == calc.RuleKindTiered {
		if violations := calc.ValidateTiers(rule.Tiers); len(violations) > 0 {
			logger.Error("Invalid tier data reached calculation for rule %d: %v", rule.Id, violations)
			return Outcome{Status: OutcomeError, Reason: "规则档位数据无效"}
		}
	}

	result := calc.Calculate(sale.NetValue, rule)

	commission := &model.CommissionModel{
		SaleId:            sale.Id,
		RuleId:            rule.Id,
		OrganizationId:    sale.OrganizationId,
		SellerId:          sale.SellerId,
		Period:            calc.ExtractPeriod(sale.SaleDate),
		BaseValue:         sale.NetValue,
		PercentageApplied: result.PercentageApplied,
		Amount:            result.Amount,
	}

	if err := l.commissionRepo.UpsertBySaleId(commission); err != nil {
		logger.Error("Failed to upsert commission for sale %d: %v", sale.Id, err)
		return Outcome{Status: OutcomeError, Reason: err.Error()}
	}

	return Outcome{
		Status:     OutcomeCalculated,
		Commission: commission,
		Breakdown:  result.Breakdown,
	}
}

// CalculateForSaleId 按销售ID计算佣金（API入口）
func (l *CommissionLogic) CalculateForSaleId(saleId int64) (Outcome, error) {
	sale, err := l.saleRepo.FindById(saleId)
	if err != nil {
		return Outcome{}, err
	}
	if sale == nil {
		return Outcome{}, errors.New("销售记录不存在")
	}
	return l.CalculateForSale(sale), nil
}

// CalculateForPeriod 计算组织在指定期间内全部销售的佣金
func (l *CommissionLogic) CalculateForPeriod(organizationId int64, period string) (BatchCounters, error) {
	unlock := l.lockOrganization(organizationId)
	defer unlock()

	sales, err := l.saleRepo.FindByPeriod(organizationId, period)
	if err != nil {
		return newBatchCounters(), err
	}

	counters := l.calculateBatch(sales)
	logger.Info("Period %s calculation for organization %d completed: calculated=%d skipped=%d errors=%d total=%s",
		period, organizationId, counters.Calculated, counters.Skipped, counters.Errors, counters.TotalAmount)
	return counters, nil
}

// RecalculateForSeller 重算销售员的全部历史佣金（规则关联变更后历史记录已过期）
func (l *CommissionLogic) RecalculateForSeller(sellerId int64) (BatchCounters, error) {
	seller, err := l.sellerRepo.FindById(sellerId)
	if err != nil {
		return newBatchCounters(), err
	}
	if seller == nil {
		return newBatchCounters(), errors.New("销售员不存在")
	}

	unlock := l.lockOrganization(seller.OrganizationId)
	defer unlock()

	sales, err := l.saleRepo.FindBySeller(sellerId)
	if err != nil {
		return newBatchCounters(), err
	}

	counters := l.calculateBatch(sales)
	logger.Info("Seller %d recalculation completed: calculated=%d skipped=%d errors=%d",
		sellerId, counters.Calculated, counters.Skipped, counters.Errors)
	return counters, nil
}

// RecalculateForRule 规则变更后的级联重算。
// 默认规则影响所有未绑定专属规则的销售员，必须重放整个组织的销售；
// 专属规则只需重放其关联销售员的销售
func (l *CommissionLogic) RecalculateForRule(ruleId, organizationId int64) (BatchCounters, error) {
	rule, err := l.ruleRepo.FindById(ruleId)
	if err != nil {
		return newBatchCounters(), err
	}
	if rule == nil {
		return newBatchCounters(), errors.New("佣金规则不存在")
	}

	unlock := l.lockOrganization(organizationId)
	defer unlock()

	var sales []model.SaleModel
	if rule.IsDefault {
		sales, err = l.saleRepo.FindByOrganization(organizationId)
		if err != nil {
			return newBatchCounters(), err
		}
	} else {
		sellerIds, err := l.ruleRepo.FindSellersLinkedToRule(ruleId)
		if err != nil {
			return newBatchCounters(), err
		}
		for _, sellerId := range sellerIds {
			sellerSales, err := l.saleRepo.FindBySeller(sellerId)
			if err != nil {
				return newBatchCounters(), err
			}
			sales = append(sales, sellerSales...)
		}
	}

	counters := l.calculateBatch(sales)
	logger.Info("Rule %d recalculation for organization %d completed: calculated=%d skipped=%d errors=%d",
		ruleId, organizationId, counters.Calculated, counters.Skipped, counters.Errors)
	return counters, nil
}

// RecalculateForOrganization 重放组织的全部销售
func (l *CommissionLogic) RecalculateForOrganization(organizationId int64) (BatchCounters, error) {
	unlock := l.lockOrganization(organizationId)
	defer unlock()

	sales, err := l.saleRepo.FindByOrganization(organizationId)
	if err != nil {
		return newBatchCounters(), err
	}

	counters := l.calculateBatch(sales)
	logger.Info("Organization %d recalculation completed: calculated=%d skipped=%d errors=%d",
		organizationId, counters.Calculated, counters.Skipped, counters.Errors)
	return counters, nil
}

// RecalculateAfterRuleChange 规则编辑后的级联重算入口。
// 编辑前为默认规则时必须重放整个组织：默认规则被降级后，原先由它
// 结算的销售员改由新的默认规则结算，此时该规则已无关联销售员，
// 按关联销售员重放会遗漏这些过期佣金
func (l *CommissionLogic) RecalculateAfterRuleChange(ruleId, organizationId int64, wasDefault bool) (BatchCounters, error) {
	if wasDefault {
		return l.RecalculateForOrganization(organizationId)
	}
	return l.RecalculateForRule(ruleId, organizationId)
}

// DeletePeriod 批量清除组织在指定期间的佣金记录
func (l *CommissionLogic) DeletePeriod(organizationId int64, period string) error {
	unlock := l.lockOrganization(organizationId)
	defer unlock()

	return l.commissionRepo.DeleteByPeriod(organizationId, period)
}

// GetSellerSummary 按销售员汇总组织在指定期间的佣金
func (l *CommissionLogic) GetSellerSummary(organizationId int64, period string) ([]model.SellerSummary, error) {
	return l.commissionRepo.GetSellerSummary(organizationId, period)
}

// calculateBatch 逐笔计算并汇总计数。单笔失败只计数，不中断批量
func (l *CommissionLogic) calculateBatch(sales []model.SaleModel) BatchCounters {
	if l.workers <= 1 || len(sales) <= 1 {
		return l.calculateSequential(sales)
	}
	return l.calculateParallel(sales)
}

func (l *CommissionLogic) calculateSequential(sales []model.SaleModel) BatchCounters {
	counters := newBatchCounters()
	for i := range sales {
		outcome := l.CalculateForSale(&sales[i])
		mergeOutcome(&counters, outcome)
	}
	return counters
}

// calculateParallel 使用协程池并发计算，计数通过互斥锁合并。
// 同一批次内销售互不重叠，入账以销售ID为原子单位
func (l *CommissionLogic) calculateParallel(sales []model.SaleModel) BatchCounters {
	pool, err := ants.NewPool(l.workers)
	if err != nil {
		logger.Warn("Failed to create worker pool (size %d), falling back to sequential: %v", l.workers, err)
		return l.calculateSequential(sales)
	}
	defer pool.Release()

	counters := newBatchCounters()
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := range sales {
		sale := &sales[i]
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			outcome := l.CalculateForSale(sale)
			mu.Lock()
			mergeOutcome(&counters, outcome)
			mu.Unlock()
		}); err != nil {
			wg.Done()
			logger.Error("Failed to submit sale %d to worker pool: %v", sale.Id, err)
			mu.Lock()
			counters.Errors++
			mu.Unlock()
		}
	}
	wg.Wait()

	return counters
}

// mergeOutcome 合并单笔结果到批量计数
func mergeOutcome(counters *BatchCounters, outcome Outcome) {
	switch outcome.Status {
	case OutcomeCalculated:
		counters.Calculated++
		counters.TotalAmount = counters.TotalAmount.Add(outcome.Commission.Amount)
	case OutcomeSkipped:
		counters.Skipped++
	case OutcomeError:
		counters.Errors++
	}
}
