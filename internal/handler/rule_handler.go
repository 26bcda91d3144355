package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/ccs/internal/calc"
	"github.com/blues/ccs/internal/logic"
	"github.com/blues/ccs/internal/model"
	"github.com/gin-gonic/gin"
)

// RuleHandler 佣金规则处理器
type RuleHandler struct {
	ruleLogic       *logic.RuleLogic
	commissionLogic *logic.CommissionLogic
}

// NewRuleHandler 创建佣金规则处理器
func NewRuleHandler(ruleLogic *logic.RuleLogic, commissionLogic *logic.CommissionLogic) *RuleHandler {
	return &RuleHandler{
		ruleLogic:       ruleLogic,
		commissionLogic: commissionLogic,
	}
}

// CreateRule 创建佣金规则
func (h *RuleHandler) CreateRule(c *gin.Context) {
	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule := &model.CommissionRuleModel{
		OrganizationId: req.OrganizationId,
		Name:           req.Name,
		Kind:           req.Kind,
		Percentage:     req.Percentage,
		IsDefault:      req.IsDefault,
		IsActive:       true,
	}

	violations, err := h.ruleLogic.CreateRule(rule, toTierModels(req.Tiers))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(violations) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "档位定义无效", "violations": violations})
		return
	}

	response := gin.H{"rule": rule}

	// 新默认规则立即接管未绑定销售员的历史销售，已入账佣金需要重算
	if rule.IsDefault {
		counters, err := h.commissionLogic.RecalculateForRule(rule.Id, rule.OrganizationId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		response["recalculation"] = counters
	}

	c.JSON(http.StatusCreated, gin.H{"data": response})
}

// GetRules 获取组织的规则列表
func (h *RuleHandler) GetRules(c *gin.Context) {
	organizationId, err := strconv.ParseInt(c.Query("organization_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的组织ID"})
		return
	}

	rules, err := h.ruleLogic.GetRules(organizationId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rules})
}

// GetRule 获取规则详情（含档位）
func (h *RuleHandler) GetRule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的规则ID"})
		return
	}

	rule, tiers, err := h.ruleLogic.GetRule(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"rule": rule, "tiers": tiers}})
}

// UpdateRule 更新规则并触发规则级重算
func (h *RuleHandler) UpdateRule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的规则ID"})
		return
	}

	var req UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, _, err := h.ruleLogic.GetRule(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rule := mergeRuleUpdate(existing, req)

	violations, err := h.ruleLogic.UpdateRule(rule, toTierModels(req.Tiers))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(violations) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "档位定义无效", "violations": violations})
		return
	}

	// 规则变更影响既有佣金，触发级联重算；重放范围由编辑前的默认标记决定
	counters, err := h.commissionLogic.RecalculateAfterRuleChange(id, rule.OrganizationId, existing.IsDefault)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"rule": rule, "recalculation": counters}})
}

// ValidateTiers 档位校验（规则保存前由规则编辑方调用）
func (h *RuleHandler) ValidateTiers(c *gin.Context) {
	var req ValidateTiersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	violations := calc.ValidateTiers(toCalcTiers(req.Tiers))
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"valid":      len(violations) == 0,
		"violations": violations,
	}})
}

// AssignSellerRule 设置或清除销售员的专属规则并触发销售员级重算
func (h *RuleHandler) AssignSellerRule(c *gin.Context) {
	sellerId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的销售员ID"})
		return
	}

	var req AssignSellerRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.ruleLogic.AssignSellerRule(sellerId, req.RuleId); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 规则关联变更后历史佣金已过期，立即重算
	counters, err := h.commissionLogic.RecalculateForSeller(sellerId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"recalculation": counters}})
}

// mergeRuleUpdate 合并更新请求与现有规则，未提交的字段保持原值
func mergeRuleUpdate(existing *model.CommissionRuleModel, req UpdateRuleRequest) *model.CommissionRuleModel {
	rule := &model.CommissionRuleModel{
		Id:             existing.Id,
		CreatedAt:      existing.CreatedAt,
		OrganizationId: existing.OrganizationId,
		Name:           req.Name,
		Kind:           req.Kind,
		Percentage:     req.Percentage,
		IsDefault:      existing.IsDefault,
		IsActive:       existing.IsActive,
	}
	if rule.Name == "" {
		rule.Name = existing.Name
	}
	if req.IsDefault != nil {
		rule.IsDefault = *req.IsDefault
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	return rule
}

// toTierModels 档位请求转换为档位模型
func toTierModels(tiers []TierRequest) []model.CommissionTierModel {
	result := make([]model.CommissionTierModel, 0, len(tiers))
	for _, tier := range tiers {
		result = append(result, model.CommissionTierModel{
			MinAmount:  tier.Min,
			MaxAmount:  tier.Max,
			Percentage: tier.Percentage,
		})
	}
	return result
}

// toCalcTiers 档位请求转换为计算引擎档位
func toCalcTiers(tiers []TierRequest) []calc.Tier {
	result := make([]calc.Tier, 0, len(tiers))
	for _, tier := range tiers {
		result = append(result, calc.Tier{
			Min:        tier.Min,
			Max:        tier.Max,
			Percentage: tier.Percentage,
		})
	}
	return result
}
