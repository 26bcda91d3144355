package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleModel 销售记录
type SaleModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OrganizationId int64           `json:"organization_id" gorm:"not null;index"`
	SellerId       int64           `json:"seller_id" gorm:"not null;index"`
	GrossValue     decimal.Decimal `json:"gross_value" gorm:"type:decimal(20,2);not null"` // 销售总额
	NetValue       decimal.Decimal `json:"net_value" gorm:"type:decimal(20,2);not null"`   // 扣税后净额（佣金计算基数）
	SaleDate       time.Time       `json:"sale_date" gorm:"not null;index"`
}

// TableName 自定义表名
func (SaleModel) TableName() string {
	return "sale"
}
