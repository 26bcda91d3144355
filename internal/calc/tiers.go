package calc

import (
	"fmt"
	"sort"
)

// ValidateTiers 校验阶梯档位定义，返回全部违规信息（为空表示有效）。
// 档位按下限排序后必须从0开始、首尾相接、且仅最后一档无上限。
func ValidateTiers(tiers []Tier) []string {
	var violations []string

	if len(tiers) == 0 {
		violations = append(violations, "至少需要一个档位")
		return violations
	}

	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Min.Cmp(sorted[j].Min) < 0
	})

	// 第一档必须从0开始
	if !sorted[0].Min.IsZero() {
		violations = append(violations, fmt.Sprintf("第一个档位的下限必须为0，当前为%s", sorted[0].Min))
	}

	// 相邻档位必须首尾相接（上一档上限 = 下一档下限）
	for i := 0; i < len(sorted)-1; i++ {
		cur := sorted[i]
		next := sorted[i+1]

		if cur.Max == nil {
			violations = append(violations, fmt.Sprintf("无上限的档位必须是最后一档（第%d档）", i+1))
			continue
		}

		cmp := cur.Max.Cmp(next.Min)
		if cmp < 0 {
			violations = append(violations, fmt.Sprintf("第%d档与第%d档之间存在空隙：%s 至 %s", i+1, i+2, cur.Max, next.Min))
		} else if cmp > 0 {
			violations = append(violations, fmt.Sprintf("第%d档与第%d档之间存在重叠：%s 至 %s", i+1, i+2, next.Min, cur.Max))
		}
	}

	// 最后一档必须无上限
	last := sorted[len(sorted)-1]
	if last.Max != nil {
		violations = append(violations, fmt.Sprintf("最后一档必须无上限，当前上限为%s", last.Max))
	}

	// 比例不能为负数
	for i, tier := range sorted {
		if tier.Percentage.IsNegative() {
			violations = append(violations, fmt.Sprintf("第%d档的比例不能为负数，当前为%s", i+1, tier.Percentage))
		}
	}

	return violations
}
