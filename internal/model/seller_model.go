package model

import (
	"time"
)

// SellerModel 销售员
type SellerModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OrganizationId   int64  `json:"organization_id" gorm:"not null;index"`
	Name             string `json:"name" gorm:"not null"`
	Email            string `json:"email" gorm:"index"`
	CommissionRuleId *int64 `json:"commission_rule_id" gorm:"index"` // 专属规则ID（为空时使用组织默认规则）
	IsActive         bool   `json:"is_active" gorm:"default:true"`
}

// TableName 自定义表名
func (SellerModel) TableName() string {
	return "seller"
}
