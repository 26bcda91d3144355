package calc

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Tier 阶梯档位
type Tier struct {
	Min        decimal.Decimal  `json:"min"`
	Max        *decimal.Decimal `json:"max"`        // 为空表示无上限（最后一档）
	Percentage decimal.Decimal  `json:"percentage"` // 该档位比例（0-100）
}

// Rule 生效的佣金规则
type Rule struct {
	Id         int64           `json:"id"`
	Kind       string          `json:"kind"`       // fixed, tiered
	Percentage decimal.Decimal `json:"percentage"` // 固定比例（仅fixed规则使用）
	Tiers      []Tier          `json:"tiers"`      // 阶梯档位（仅tiered规则使用）
}

// RuleKindFixed 固定比例规则
const RuleKindFixed = "fixed"

// RuleKindTiered 阶梯比例规则
const RuleKindTiered = "tiered"

// TierAmount 单档计算明细
type TierAmount struct {
	Min        decimal.Decimal  `json:"min"`
	Max        *decimal.Decimal `json:"max"`
	Portion    decimal.Decimal  `json:"portion"`    // 落入该档位的金额
	Percentage decimal.Decimal  `json:"percentage"` // 该档位比例
	Amount     decimal.Decimal  `json:"amount"`     // 该档位佣金
}

// Result 佣金计算结果
type Result struct {
	Amount            decimal.Decimal `json:"amount"`             // 佣金总额
	PercentageApplied decimal.Decimal `json:"percentage_applied"` // 实际生效比例
	Breakdown         []TierAmount    `json:"breakdown,omitempty"`
}

// round2 金额统一保留两位小数，四舍五入
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CalculateFixed 按固定比例计算佣金
func CalculateFixed(netValue, percentage decimal.Decimal) Result {
	return Result{
		Amount:            round2(netValue.Mul(percentage).Div(hundred)),
		PercentageApplied: percentage,
	}
}

// CalculateTiered 按阶梯比例计算佣金（累进算法，每档只对落入该档的部分计提）
func CalculateTiered(netValue decimal.Decimal, tiers []Tier) Result {
	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Min.Cmp(sorted[j].Min) < 0
	})

	result := Result{
		Amount:            decimal.Zero,
		PercentageApplied: decimal.Zero,
	}

	for _, tier := range sorted {
		// 净额未达到该档位下限，跳过
		if netValue.Cmp(tier.Min) <= 0 {
			continue
		}

		// 计算落入 [min, max) 区间的金额
		var portion decimal.Decimal
		if tier.Max == nil {
			portion = netValue.Sub(tier.Min)
		} else {
			upper := netValue
			if upper.Cmp(*tier.Max) > 0 {
				upper = *tier.Max
			}
			portion = upper.Sub(tier.Min)
		}

		amount := round2(portion.Mul(tier.Percentage).Div(hundred))
		result.Amount = result.Amount.Add(amount)
		result.Breakdown = append(result.Breakdown, TierAmount{
			Min:        tier.Min,
			Max:        tier.Max,
			Portion:    portion,
			Percentage: tier.Percentage,
			Amount:     amount,
		})
	}

	// 实际生效比例 = 佣金总额 / 净额 * 100（净额为0时为0）
	if netValue.IsPositive() {
		result.PercentageApplied = round2(result.Amount.Div(netValue).Mul(hundred))
	}

	return result
}

// Calculate 按规则类型分派计算。规则缺失或阶梯数据无效时返回零结果，不会panic
func Calculate(netValue decimal.Decimal, rule *Rule) Result {
	if rule == nil {
		return Result{Amount: decimal.Zero, PercentageApplied: decimal.Zero}
	}

	switch rule.Kind {
	case RuleKindFixed:
		return CalculateFixed(netValue, rule.Percentage)
	case RuleKindTiered:
		if len(rule.Tiers) == 0 || len(ValidateTiers(rule.Tiers)) > 0 {
			return Result{Amount: decimal.Zero, PercentageApplied: decimal.Zero}
		}
		return CalculateTiered(netValue, rule.Tiers)
	default:
		return Result{Amount: decimal.Zero, PercentageApplied: decimal.Zero}
	}
}

// ApplyTaxDeduction 按统一扣税比例从总额计算净额
func ApplyTaxDeduction(grossValue, rate decimal.Decimal) decimal.Decimal {
	return round2(grossValue.Sub(grossValue.Mul(rate).Div(hundred)))
}

// ExtractPeriod 提取销售日期所属期间（YYYY-MM）
func ExtractPeriod(date time.Time) string {
	return date.Format("2006-01")
}
