package logic

import (
	"errors"
	"fmt"

	"github.com/blues/ccs/internal/calc"
	"github.com/blues/ccs/internal/model"
	"github.com/blues/ccs/internal/repository"
)

// RuleLogic 佣金规则业务逻辑（规则的创建维护与生效规则解析）
type RuleLogic struct {
	ruleRepo   repository.RuleRepository
	sellerRepo repository.SellerRepository
}

// NewRuleLogic 创建佣金规则业务逻辑
func NewRuleLogic(ruleRepo repository.RuleRepository, sellerRepo repository.SellerRepository) *RuleLogic {
	return &RuleLogic{
		ruleRepo:   ruleRepo,
		sellerRepo: sellerRepo,
	}
}

// GetEffectiveRule 解析销售员的生效规则：专属规则优先，其次组织默认规则，都没有返回nil
func (l *RuleLogic) GetEffectiveRule(sellerId, organizationId int64) (*calc.Rule, error) {
	seller, err := l.sellerRepo.FindById(sellerId)
	if err != nil {
		return nil, err
	}

	if seller != nil && seller.CommissionRuleId != nil {
		rule, err := l.ruleRepo.FindById(*seller.CommissionRuleId)
		if err != nil {
			return nil, err
		}
		if rule != nil && rule.IsActive {
			return l.buildCalcRule(rule)
		}
	}

	defaultRule, err := l.ruleRepo.FindDefaultByOrganization(organizationId)
	if err != nil {
		return nil, err
	}
	if defaultRule == nil {
		return nil, nil
	}
	return l.buildCalcRule(defaultRule)
}

// buildCalcRule 将规则模型装配为计算引擎的规则（阶梯规则附带档位）
func (l *RuleLogic) buildCalcRule(rule *model.CommissionRuleModel) (*calc.Rule, error) {
	result := &calc.Rule{
		Id:         rule.Id,
		Kind:       rule.Kind,
		Percentage: rule.Percentage,
	}

	if rule.Kind == string(model.RuleKindTiered) {
		tiers, err := l.ruleRepo.FindTiersByRuleId(rule.Id)
		if err != nil {
			return nil, err
		}
		for _, tier := range tiers {
			result.Tiers = append(result.Tiers, calc.Tier{
				Min:        tier.MinAmount,
				Max:        tier.MaxAmount,
				Percentage: tier.Percentage,
			})
		}
	}

	return result, nil
}

// ValidateTiers 校验档位定义（供规则保存前调用）
func (l *RuleLogic) ValidateTiers(tiers []model.CommissionTierModel) []string {
	return calc.ValidateTiers(toCalcTiers(tiers))
}

// CreateRule 创建规则。返回的违规列表非空表示档位校验失败，规则未保存
func (l *RuleLogic) CreateRule(rule *model.CommissionRuleModel, tiers []model.CommissionTierModel) ([]string, error) {
	if violations, err := l.validateRule(rule, tiers); violations != nil || err != nil {
		return violations, err
	}

	// 保证组织的默认规则唯一
	if rule.IsDefault {
		if err := l.ruleRepo.ClearDefault(rule.OrganizationId); err != nil {
			return nil, err
		}
	}

	if err := l.ruleRepo.Create(rule, tiers); err != nil {
		return nil, err
	}
	return nil, nil
}

// UpdateRule 更新规则及其档位。调用方需在更新后触发规则级重算
func (l *RuleLogic) UpdateRule(rule *model.CommissionRuleModel, tiers []model.CommissionTierModel) ([]string, error) {
	existing, err := l.ruleRepo.FindById(rule.Id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors.New("佣金规则不存在")
	}

	if violations, err := l.validateRule(rule, tiers); violations != nil || err != nil {
		return violations, err
	}

	if rule.IsDefault && !existing.IsDefault {
		if err := l.ruleRepo.ClearDefault(rule.OrganizationId); err != nil {
			return nil, err
		}
	}

	if err := l.ruleRepo.Update(rule, tiers); err != nil {
		return nil, err
	}
	return nil, nil
}

// GetRule 查询规则详情（含档位）
func (l *RuleLogic) GetRule(id int64) (*model.CommissionRuleModel, []model.CommissionTierModel, error) {
	rule, err := l.ruleRepo.FindById(id)
	if err != nil {
		return nil, nil, err
	}
	if rule == nil {
		return nil, nil, errors.New("佣金规则不存在")
	}

	var tiers []model.CommissionTierModel
	if rule.Kind == string(model.RuleKindTiered) {
		tiers, err = l.ruleRepo.FindTiersByRuleId(rule.Id)
		if err != nil {
			return nil, nil, err
		}
	}
	return rule, tiers, nil
}

// GetRules 查询组织的规则列表
func (l *RuleLogic) GetRules(organizationId int64) ([]model.CommissionRuleModel, error) {
	return l.ruleRepo.FindByOrganization(organizationId)
}

// AssignSellerRule 设置或清除销售员的专属规则关联。调用方需在变更后触发销售员级重算
func (l *RuleLogic) AssignSellerRule(sellerId int64, ruleId *int64) error {
	seller, err := l.sellerRepo.FindById(sellerId)
	if err != nil {
		return err
	}
	if seller == nil {
		return errors.New("销售员不存在")
	}

	if ruleId != nil {
		rule, err := l.ruleRepo.FindById(*ruleId)
		if err != nil {
			return err
		}
		if rule == nil {
			return errors.New("佣金规则不存在")
		}
		if rule.OrganizationId != seller.OrganizationId {
			return errors.New("规则与销售员不属于同一组织")
		}
		if !rule.IsActive {
			return errors.New("不能关联已停用的规则")
		}
	}

	return l.sellerRepo.UpdateRuleLink(sellerId, ruleId)
}

// validateRule 规则数据校验
func (l *RuleLogic) validateRule(rule *model.CommissionRuleModel, tiers []model.CommissionTierModel) ([]string, error) {
	switch rule.Kind {
	case string(model.RuleKindFixed):
		if rule.Percentage.IsNegative() {
			return nil, errors.New("固定比例不能为负数")
		}
	case string(model.RuleKindTiered):
		if violations := calc.ValidateTiers(toCalcTiers(tiers)); len(violations) > 0 {
			return violations, nil
		}
	default:
		return nil, fmt.Errorf("未知的规则类型: %s", rule.Kind)
	}
	return nil, nil
}

// toCalcTiers 档位模型转换为计算引擎档位
func toCalcTiers(tiers []model.CommissionTierModel) []calc.Tier {
	result := make([]calc.Tier, 0, len(tiers))
	for _, tier := range tiers {
		result = append(result, calc.Tier{
			Min:        tier.MinAmount,
			Max:        tier.MaxAmount,
			Percentage: tier.Percentage,
		})
	}
	return result
}
