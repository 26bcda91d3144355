package repository

import (
	"fmt"

	"github.com/blues/ccs/internal/model"
	"gorm.io/gorm"
)

// SellerRepository 销售员仓储
type SellerRepository interface {
	FindById(id int64) (*model.SellerModel, error)
	FindByOrganization(organizationId int64) ([]model.SellerModel, error)
	Create(seller *model.SellerModel) error
	UpdateRuleLink(sellerId int64, ruleId *int64) error
}

type sellerRepository struct {
	db *gorm.DB
}

// NewSellerRepository 创建销售员仓储
func NewSellerRepository(db *gorm.DB) SellerRepository {
	return &sellerRepository{db: db}
}

// FindById 根据ID查询销售员，不存在时返回nil
func (r *sellerRepository) FindById(id int64) (*model.SellerModel, error) {
	var seller model.SellerModel
	if err := r.db.First(&seller, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("查询销售员失败: %w", err)
	}
	return &seller, nil
}

// FindByOrganization 查询组织的全部销售员
func (r *sellerRepository) FindByOrganization(organizationId int64) ([]model.SellerModel, error) {
	var sellers []model.SellerModel
	if err := r.db.Where("organization_id = ?", organizationId).
		Order("id ASC").
		Find(&sellers).Error; err != nil {
		return nil, fmt.Errorf("查询组织销售员失败: %w", err)
	}
	return sellers, nil
}

// Create 创建销售员
func (r *sellerRepository) Create(seller *model.SellerModel) error {
	if err := r.db.Create(seller).Error; err != nil {
		return fmt.Errorf("创建销售员失败: %w", err)
	}
	return nil
}

// UpdateRuleLink 更新销售员的专属规则关联（ruleId为空表示清除关联）
func (r *sellerRepository) UpdateRuleLink(sellerId int64, ruleId *int64) error {
	if err := r.db.Model(&model.SellerModel{}).
		Where("id = ?", sellerId).
		Update("commission_rule_id", ruleId).Error; err != nil {
		return fmt.Errorf("更新销售员规则关联失败: %w", err)
	}
	return nil
}
