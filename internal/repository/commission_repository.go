package repository

import (
	"fmt"

	"github.com/blues/ccs/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommissionRepository 佣金记录仓储
type CommissionRepository interface {
	UpsertBySaleId(commission *model.CommissionModel) error
	FindBySaleId(saleId int64) (*model.CommissionModel, error)
	FindByPeriod(organizationId int64, period string) ([]model.CommissionModel, error)
	DeleteBySaleId(saleId int64) error
	DeleteByPeriod(organizationId int64, period string) error
	GetSellerSummary(organizationId int64, period string) ([]model.SellerSummary, error)
}

type commissionRepository struct {
	db *gorm.DB
}

// NewCommissionRepository 创建佣金记录仓储
func NewCommissionRepository(db *gorm.DB) CommissionRepository {
	return &commissionRepository{db: db}
}

// UpsertBySaleId 按销售ID写入佣金记录（冲突时覆盖计算字段，保证每笔销售至多一条）
func (r *commissionRepository) UpsertBySaleId(commission *model.CommissionModel) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "sale_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"rule_id", "organization_id", "seller_id", "period",
			"base_value", "percentage_applied", "amount", "updated_at",
		}),
	}).Create(commission).Error; err != nil {
		return fmt.Errorf("写入佣金记录失败: %w", err)
	}
	return nil
}

// FindBySaleId 根据销售ID查询佣金记录，不存在时返回nil
func (r *commissionRepository) FindBySaleId(saleId int64) (*model.CommissionModel, error) {
	var commission model.CommissionModel
	if err := r.db.Where("sale_id = ?", saleId).First(&commission).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("查询佣金记录失败: %w", err)
	}
	return &commission, nil
}

// FindByPeriod 查询组织在指定期间的全部佣金记录
func (r *commissionRepository) FindByPeriod(organizationId int64, period string) ([]model.CommissionModel, error) {
	var commissions []model.CommissionModel
	if err := r.db.Where("organization_id = ? AND period = ?", organizationId, period).
		Order("seller_id ASC, sale_id ASC").
		Find(&commissions).Error; err != nil {
		return nil, fmt.Errorf("查询期间佣金记录失败: %w", err)
	}
	return commissions, nil
}

// DeleteBySaleId 删除销售对应的佣金记录（销售删除时的联动清理）
func (r *commissionRepository) DeleteBySaleId(saleId int64) error {
	if err := r.db.Where("sale_id = ?", saleId).
		Delete(&model.CommissionModel{}).Error; err != nil {
		return fmt.Errorf("删除佣金记录失败: %w", err)
	}
	return nil
}

// DeleteByPeriod 批量清除组织在指定期间的佣金记录
func (r *commissionRepository) DeleteByPeriod(organizationId int64, period string) error {
	if err := r.db.Where("organization_id = ? AND period = ?", organizationId, period).
		Delete(&model.CommissionModel{}).Error; err != nil {
		return fmt.Errorf("清除期间佣金记录失败: %w", err)
	}
	return nil
}

// GetSellerSummary 按销售员汇总组织在指定期间的已入账佣金
func (r *commissionRepository) GetSellerSummary(organizationId int64, period string) ([]model.SellerSummary, error) {
	var summaries []model.SellerSummary

	err := r.db.Raw(`
		SELECT
			c.seller_id,
			sl.name as seller_name,
			COUNT(c.id) as sales_count,
			COALESCE(SUM(s.gross_value), 0) as total_gross,
			COALESCE(SUM(s.net_value), 0) as total_net,
			COALESCE(SUM(c.amount), 0) as total_commission
		FROM commission c
		INNER JOIN sale s ON s.id = c.sale_id
		INNER JOIN seller sl ON sl.id = c.seller_id
		WHERE c.organization_id = ? AND c.period = ?
		GROUP BY c.seller_id, sl.name
		ORDER BY total_commission DESC
	`, organizationId, period).Scan(&summaries).Error

	if err != nil {
		return nil, fmt.Errorf("查询销售员佣金汇总失败: %w", err)
	}
	return summaries, nil
}
