package logic

import (
	"errors"

	"github.com/blues/ccs/internal/calc"
	"github.com/blues/ccs/internal/logger"
	"github.com/blues/ccs/internal/model"
	"github.com/blues/ccs/internal/repository"
	"github.com/shopspring/decimal"
)

// SaleLogic 销售记录业务逻辑
type SaleLogic struct {
	saleRepo        repository.SaleRepository
	sellerRepo      repository.SellerRepository
	commissionRepo  repository.CommissionRepository
	commissionLogic *CommissionLogic
	taxRate         decimal.Decimal // 统一扣税比例（百分比）
}

// NewSaleLogic 创建销售记录业务逻辑
func NewSaleLogic(
	saleRepo repository.SaleRepository,
	sellerRepo repository.SellerRepository,
	commissionRepo repository.CommissionRepository,
	commissionLogic *CommissionLogic,
	taxRate decimal.Decimal,
) *SaleLogic {
	return &SaleLogic{
		saleRepo:        saleRepo,
		sellerRepo:      sellerRepo,
		commissionRepo:  commissionRepo,
		commissionLogic: commissionLogic,
		taxRate:         taxRate,
	}
}

// CreateSale 创建销售记录：从总额扣税得到净额，保存后立即计算佣金
func (l *SaleLogic) CreateSale(sale *model.SaleModel) (Outcome, error) {
	if err := l.validateSale(sale); err != nil {
		return Outcome{}, err
	}

	sale.NetValue = calc.ApplyTaxDeduction(sale.GrossValue, l.taxRate)

	if err := l.saleRepo.Create(sale); err != nil {
		return Outcome{}, err
	}

	outcome := l.commissionLogic.CalculateForSale(sale)
	if outcome.Status == OutcomeSkipped {
		logger.Info("Sale %d created without commission: %s", sale.Id, outcome.Reason)
	}
	return outcome, nil
}

// GetSales 查询销售记录：期间优先，其次销售员，再次整个组织
func (l *SaleLogic) GetSales(organizationId int64, period string, sellerId int64) ([]model.SaleModel, error) {
	if period != "" {
		return l.saleRepo.FindByPeriod(organizationId, period)
	}
	if sellerId > 0 {
		return l.saleRepo.FindBySeller(sellerId)
	}
	return l.saleRepo.FindByOrganization(organizationId)
}

// DeleteSale 删除销售记录及其佣金记录
func (l *SaleLogic) DeleteSale(id int64) error {
	sale, err := l.saleRepo.FindById(id)
	if err != nil {
		return err
	}
	if sale == nil {
		return errors.New("销售记录不存在")
	}

	if err := l.commissionRepo.DeleteBySaleId(id); err != nil {
		return err
	}
	return l.saleRepo.Delete(id)
}

// validateSale 销售数据校验
func (l *SaleLogic) validateSale(sale *model.SaleModel) error {
	if sale.OrganizationId <= 0 {
		return errors.New("组织ID不能为空")
	}
	if sale.SellerId <= 0 {
		return errors.New("销售员ID不能为空")
	}
	if sale.GrossValue.IsNegative() {
		return errors.New("销售总额不能为负数")
	}
	if sale.SaleDate.IsZero() {
		return errors.New("销售日期不能为空")
	}

	seller, err := l.sellerRepo.FindById(sale.SellerId)
	if err != nil {
		return err
	}
	if seller == nil {
		return errors.New("销售员不存在")
	}
	if seller.OrganizationId != sale.OrganizationId {
		return errors.New("销售员与销售记录不属于同一组织")
	}
	return nil
}
