package repository

import (
	"fmt"
	"time"

	"github.com/blues/ccs/internal/model"
	"gorm.io/gorm"
)

// SaleRepository 销售记录仓储
type SaleRepository interface {
	FindById(id int64) (*model.SaleModel, error)
	FindByPeriod(organizationId int64, period string) ([]model.SaleModel, error)
	FindBySeller(sellerId int64) ([]model.SaleModel, error)
	FindByOrganization(organizationId int64) ([]model.SaleModel, error)
	FindOrganizationIdsByPeriod(period string) ([]int64, error)
	Create(sale *model.SaleModel) error
	Delete(id int64) error
}

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository 创建销售记录仓储
func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

// periodRange 解析期间（YYYY-MM）为左闭右开的日期区间
func periodRange(period string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("无效的期间格式: %s", period)
	}
	return start, start.AddDate(0, 1, 0), nil
}

// FindById 根据ID查询销售记录，不存在时返回nil
func (r *saleRepository) FindById(id int64) (*model.SaleModel, error) {
	var sale model.SaleModel
	if err := r.db.First(&sale, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("查询销售记录失败: %w", err)
	}
	return &sale, nil
}

// FindByPeriod 查询组织在指定期间内的全部销售记录
func (r *saleRepository) FindByPeriod(organizationId int64, period string) ([]model.SaleModel, error) {
	start, end, err := periodRange(period)
	if err != nil {
		return nil, err
	}

	var sales []model.SaleModel
	if err := r.db.Where("organization_id = ? AND sale_date >= ? AND sale_date < ?",
		organizationId, start, end).
		Order("sale_date ASC").
		Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("查询期间销售记录失败: %w", err)
	}
	return sales, nil
}

// FindBySeller 查询销售员的全部历史销售记录（跨期间）
func (r *saleRepository) FindBySeller(sellerId int64) ([]model.SaleModel, error) {
	var sales []model.SaleModel
	if err := r.db.Where("seller_id = ?", sellerId).
		Order("sale_date ASC").
		Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("查询销售员销售记录失败: %w", err)
	}
	return sales, nil
}

// FindByOrganization 查询组织的全部销售记录
func (r *saleRepository) FindByOrganization(organizationId int64) ([]model.SaleModel, error) {
	var sales []model.SaleModel
	if err := r.db.Where("organization_id = ?", organizationId).
		Order("sale_date ASC").
		Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("查询组织销售记录失败: %w", err)
	}
	return sales, nil
}

// FindOrganizationIdsByPeriod 查询在指定期间内有销售记录的组织ID列表
func (r *saleRepository) FindOrganizationIdsByPeriod(period string) ([]int64, error) {
	start, end, err := periodRange(period)
	if err != nil {
		return nil, err
	}

	var ids []int64
	if err := r.db.Model(&model.SaleModel{}).
		Where("sale_date >= ? AND sale_date < ?", start, end).
		Distinct("organization_id").
		Pluck("organization_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("查询期间组织列表失败: %w", err)
	}
	return ids, nil
}

// Create 创建销售记录
func (r *saleRepository) Create(sale *model.SaleModel) error {
	if err := r.db.Create(sale).Error; err != nil {
		return fmt.Errorf("创建销售记录失败: %w", err)
	}
	return nil
}

// Delete 删除销售记录
func (r *saleRepository) Delete(id int64) error {
	if err := r.db.Delete(&model.SaleModel{}, id).Error; err != nil {
		return fmt.Errorf("删除销售记录失败: %w", err)
	}
	return nil
}
