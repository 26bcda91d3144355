package model

import (
	"github.com/shopspring/decimal"
)

// SellerSummary 销售员期间佣金汇总（只读聚合，无对应表）
type SellerSummary struct {
	SellerId        int64           `json:"seller_id"`
	SellerName      string          `json:"seller_name"`
	SalesCount      int64           `json:"sales_count"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalNet        decimal.Decimal `json:"total_net"`
	TotalCommission decimal.Decimal `json:"total_commission"`
}
