package handler

import (
	"time"

	"github.com/shopspring/decimal"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// TierRequest 阶梯档位请求模型
type TierRequest struct {
	Min        decimal.Decimal  `json:"min"`
	Max        *decimal.Decimal `json:"max"`
	Percentage decimal.Decimal  `json:"percentage"`
}

// CreateRuleRequest 创建规则请求
type CreateRuleRequest struct {
	OrganizationId int64           `json:"organization_id" binding:"required"`
	Name           string          `json:"name" binding:"required"`
	Kind           string          `json:"kind" binding:"required"`
	Percentage     decimal.Decimal `json:"percentage"`
	IsDefault      bool            `json:"is_default"`
	Tiers          []TierRequest   `json:"tiers"`
}

// UpdateRuleRequest 更新规则请求（is_default/is_active未提交时保持原值）
type UpdateRuleRequest struct {
	Name       string          `json:"name"`
	Kind       string          `json:"kind" binding:"required"`
	Percentage decimal.Decimal `json:"percentage"`
	IsDefault  *bool           `json:"is_default"`
	IsActive   *bool           `json:"is_active"`
	Tiers      []TierRequest   `json:"tiers"`
}

// ValidateTiersRequest 档位校验请求
type ValidateTiersRequest struct {
	Tiers []TierRequest `json:"tiers"`
}

// AssignSellerRuleRequest 销售员规则关联请求（rule_id为空表示清除关联）
type AssignSellerRuleRequest struct {
	RuleId *int64 `json:"rule_id"`
}

// CreateSaleRequest 创建销售记录请求
type CreateSaleRequest struct {
	OrganizationId int64           `json:"organization_id" binding:"required"`
	SellerId       int64           `json:"seller_id" binding:"required"`
	GrossValue     decimal.Decimal `json:"gross_value"`
	SaleDate       time.Time       `json:"sale_date" binding:"required"`
}

// PeriodRequest 期间批量操作请求
type PeriodRequest struct {
	OrganizationId int64  `json:"organization_id" binding:"required"`
	Period         string `json:"period" binding:"required"`
}
