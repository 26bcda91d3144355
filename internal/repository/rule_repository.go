package repository

import (
	"fmt"

	"github.com/blues/ccs/internal/model"
	"gorm.io/gorm"
)

// RuleRepository 佣金规则仓储
type RuleRepository interface {
	FindById(id int64) (*model.CommissionRuleModel, error)
	FindByOrganization(organizationId int64) ([]model.CommissionRuleModel, error)
	FindDefaultByOrganization(organizationId int64) (*model.CommissionRuleModel, error)
	FindTiersByRuleId(ruleId int64) ([]model.CommissionTierModel, error)
	FindSellersLinkedToRule(ruleId int64) ([]int64, error)
	Create(rule *model.CommissionRuleModel, tiers []model.CommissionTierModel) error
	Update(rule *model.CommissionRuleModel, tiers []model.CommissionTierModel) error
	ClearDefault(organizationId int64) error
}

type ruleRepository struct {
	db *gorm.DB
}

// NewRuleRepository 创建佣金规则仓储
func NewRuleRepository(db *gorm.DB) RuleRepository {
	return &ruleRepository{db: db}
}

// FindById 根据ID查询规则，不存在时返回nil
func (r *ruleRepository) FindById(id int64) (*model.CommissionRuleModel, error) {
	var rule model.CommissionRuleModel
	if err := r.db.First(&rule, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("查询佣金规则失败: %w", err)
	}
	return &rule, nil
}

// FindByOrganization 查询组织的全部规则
func (r *ruleRepository) FindByOrganization(organizationId int64) ([]model.CommissionRuleModel, error) {
	var rules []model.CommissionRuleModel
	if err := r.db.Where("organization_id = ?", organizationId).
		Order("id ASC").
		Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("查询组织规则列表失败: %w", err)
	}
	return rules, nil
}

// FindDefaultByOrganization 查询组织的生效默认规则，不存在时返回nil
func (r *ruleRepository) FindDefaultByOrganization(organizationId int64) (*model.CommissionRuleModel, error) {
	var rule model.CommissionRuleModel
	if err := r.db.Where("organization_id = ? AND is_default = ? AND is_active = ?",
		organizationId, true, true).
		First(&rule).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("查询默认规则失败: %w", err)
	}
	return &rule, nil
}

// FindTiersByRuleId 查询规则的阶梯档位（按下限升序）
func (r *ruleRepository) FindTiersByRuleId(ruleId int64) ([]model.CommissionTierModel, error) {
	var tiers []model.CommissionTierModel
	if err := r.db.Where("rule_id = ?", ruleId).
		Order("min_amount ASC").
		Find(&tiers).Error; err != nil {
		return nil, fmt.Errorf("查询阶梯档位失败: %w", err)
	}
	return tiers, nil
}

// FindSellersLinkedToRule 查询专属关联到该规则的销售员ID列表
func (r *ruleRepository) FindSellersLinkedToRule(ruleId int64) ([]int64, error) {
	var ids []int64
	if err := r.db.Model(&model.SellerModel{}).
		Where("commission_rule_id = ?", ruleId).
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("查询规则关联销售员失败: %w", err)
	}
	return ids, nil
}

// Create 创建规则及其档位
func (r *ruleRepository) Create(rule *model.CommissionRuleModel, tiers []model.CommissionTierModel) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rule).Error; err != nil {
			return fmt.Errorf("创建佣金规则失败: %w", err)
		}
		for i := range tiers {
			tiers[i].RuleId = rule.Id
		}
		if len(tiers) > 0 {
			if err := tx.Create(&tiers).Error; err != nil {
				return fmt.Errorf("创建阶梯档位失败: %w", err)
			}
		}
		return nil
	})
}

// ClearDefault 取消组织当前的默认规则标记（保证默认规则唯一）
func (r *ruleRepository) ClearDefault(organizationId int64) error {
	if err := r.db.Model(&model.CommissionRuleModel{}).
		Where("organization_id = ? AND is_default = ?", organizationId, true).
		Update("is_default", false).Error; err != nil {
		return fmt.Errorf("取消默认规则失败: %w", err)
	}
	return nil
}

// Update 更新规则，档位整体替换
func (r *ruleRepository) Update(rule *model.CommissionRuleModel, tiers []model.CommissionTierModel) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(rule).Error; err != nil {
			return fmt.Errorf("更新佣金规则失败: %w", err)
		}
		if err := tx.Where("rule_id = ?", rule.Id).
			Delete(&model.CommissionTierModel{}).Error; err != nil {
			return fmt.Errorf("清除旧档位失败: %w", err)
		}
		for i := range tiers {
			tiers[i].Id = 0
			tiers[i].RuleId = rule.Id
		}
		if len(tiers) > 0 {
			if err := tx.Create(&tiers).Error; err != nil {
				return fmt.Errorf("创建阶梯档位失败: %w", err)
			}
		}
		return nil
	})
}
