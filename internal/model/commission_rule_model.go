package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionRuleModel 佣金规则
type CommissionRuleModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OrganizationId int64           `json:"organization_id" gorm:"not null;index"`
	Name           string          `json:"name" gorm:"not null"`
	Kind           string          `json:"kind" gorm:"not null"`                       // fixed, tiered
	Percentage     decimal.Decimal `json:"percentage" gorm:"type:decimal(10,4)"`       // 固定比例（仅fixed规则使用）
	IsDefault      bool            `json:"is_default" gorm:"default:false;index"`      // 是否为组织默认规则
	IsActive       bool            `json:"is_active" gorm:"default:true"`
}

// RuleKind 规则类型
type RuleKind string

const (
	RuleKindFixed  RuleKind = "fixed"  // 固定比例
	RuleKindTiered RuleKind = "tiered" // 阶梯比例
)

// TableName 自定义表名
func (CommissionRuleModel) TableName() string {
	return "commission_rule"
}

// CommissionTierModel 佣金阶梯档位
type CommissionTierModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RuleId     int64            `json:"rule_id" gorm:"not null;index"`
	MinAmount  decimal.Decimal  `json:"min_amount" gorm:"type:decimal(20,2);not null"` // 档位下限（含）
	MaxAmount  *decimal.Decimal `json:"max_amount" gorm:"type:decimal(20,2)"`          // 档位上限（不含），为空表示无上限
	Percentage decimal.Decimal  `json:"percentage" gorm:"type:decimal(10,4);not null"` // 该档位比例
}

// TableName 自定义表名
func (CommissionTierModel) TableName() string {
	return "commission_tier"
}
