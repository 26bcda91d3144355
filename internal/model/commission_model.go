package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionModel 佣金记录（每笔销售至多一条，由计算引擎生成）
type CommissionModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SaleId            int64           `json:"sale_id" gorm:"not null;uniqueIndex"`
	RuleId            int64           `json:"rule_id" gorm:"not null;index"`
	OrganizationId    int64           `json:"organization_id" gorm:"not null;index"`
	SellerId          int64           `json:"seller_id" gorm:"not null;index"`
	Period            string          `json:"period" gorm:"type:varchar(7);not null;index"`          // 所属期间 YYYY-MM
	BaseValue         decimal.Decimal `json:"base_value" gorm:"type:decimal(20,2);not null"`         // 计算基数（销售净额）
	PercentageApplied decimal.Decimal `json:"percentage_applied" gorm:"type:decimal(10,4);not null"` // 实际生效比例
	Amount            decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`             // 佣金金额
}

// TableName 自定义表名
func (CommissionModel) TableName() string {
	return "commission"
}
