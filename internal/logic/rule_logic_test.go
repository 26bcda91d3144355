package logic

import (
	"testing"

	"github.com/blues/ccs/internal/model"
)

func TestGetEffectiveRuleSpecificWins(t *testing.T) {
	sellerRepo := &fakeSellerRepo{sellers: []model.SellerModel{
		{Id: 1, OrganizationId: 1, Name: "张三", CommissionRuleId: int64Ptr(20)},
	}}
	ruleRepo := newFakeRuleRepo(sellerRepo)
	ruleRepo.rules[10] = model.CommissionRuleModel{
		Id: 10, OrganizationId: 1, Kind: "fixed", Percentage: dec("10"),
		IsDefault: true, IsActive: true,
	}
	ruleRepo.rules[20] = model.CommissionRuleModel{
		Id: 20, OrganizationId: 1, Kind: "fixed", Percentage: dec("5"), IsActive: true,
	}
	l := NewRuleLogic(ruleRepo, sellerRepo)

	rule, err := l.GetEffectiveRule(1, 1)
	if err != nil {
		t.Fatalf("get effective rule: %v", err)
	}
	if rule == nil || rule.Id != 20 {
		t.Fatalf("expected seller-specific rule 20, got %+v", rule)
	}
}

func TestGetEffectiveRuleInactiveSpecificFallsBack(t *testing.T) {
	sellerRepo := &fakeSellerRepo{sellers: []model.SellerModel{
		{Id: 1, OrganizationId: 1, Name: "张三", CommissionRuleId: int64Ptr(20)},
	}}
	ruleRepo := newFakeRuleRepo(sellerRepo)
	ruleRepo.rules[10] = model.CommissionRuleModel{
		Id: 10, OrganizationId: 1, Kind: "fixed", Percentage: dec("10"),
		IsDefault: true, IsActive: true,
	}
	ruleRepo.rules[20] = model.CommissionRuleModel{
		Id: 20, OrganizationId: 1, Kind: "fixed", Percentage: dec("5"), IsActive: false,
	}
	l := NewRuleLogic(ruleRepo, sellerRepo)

	rule, err := l.GetEffectiveRule(1, 1)
	if err != nil {
		t.Fatalf("get effective rule: %v", err)
	}
	if rule == nil || rule.Id != 10 {
		t.Fatalf("expected fallback to default rule 10, got %+v", rule)
	}
}

func TestGetEffectiveRuleDefault(t *testing.T) {
	sellerRepo := &fakeSellerRepo{sellers: []model.SellerModel{
		{Id: 1, OrganizationId: 1, Name: "张三"},
	}}
	ruleRepo := newFakeRuleRepo(sellerRepo)
	ruleRepo.rules[10] = model.CommissionRuleModel{
		Id: 10, OrganizationId: 1, Kind: "fixed", Percentage: dec("10"),
		IsDefault: true, IsActive: true,
	}
	l := NewRuleLogic(ruleRepo, sellerRepo)

	rule, err := l.GetEffectiveRule(1, 1)
	if err != nil {
		t.Fatalf("get effective rule: %v", err)
	}
	if rule == nil || rule.Id != 10 {
		t.Fatalf("expected default rule 10, got %+v", rule)
	}
}

func TestGetEffectiveRuleNone(t *testing.T) {
	sellerRepo := &fakeSellerRepo{sellers: []model.SellerModel{
		{Id: 1, OrganizationId: 1, Name: "张三"},
	}}
	ruleRepo := newFakeRuleRepo(sellerRepo)
	l := NewRuleLogic(ruleRepo, sellerRepo)

	rule, err := l.GetEffectiveRule(1, 1)
	if err != nil {
		t.Fatalf("get effective rule: %v", err)
	}
	if rule != nil {
		t.Fatalf("expected nil rule, got %+v", rule)
	}
}

func TestGetEffectiveRuleLoadsTiers(t *testing.T) {
	sellerRepo := &fakeSellerRepo{sellers: []model.SellerModel{
		{Id: 1, OrganizationId: 1, Name: "张三"},
	}}
	ruleRepo := newFakeRuleRepo(sellerRepo)
	ruleRepo.rules[30] = model.CommissionRuleModel{
		Id: 30, OrganizationId: 1, Kind: "tiered", IsDefault: true, IsActive: true,
	}
	ruleRepo.tiers[30] = []model.CommissionTierModel{
		{RuleId: 30, MinAmount: dec("0"), MaxAmount: decPtr("1000"), Percentage: dec("5")},
		{RuleId: 30, MinAmount: dec("1000"), MaxAmount: nil, Percentage: dec("10")},
	}
	l := NewRuleLogic(ruleRepo, sellerRepo)

	rule, err := l.GetEffectiveRule(1, 1)
	if err != nil {
		t.Fatalf("get effective rule: %v", err)
	}
	if rule == nil || len(rule.Tiers) != 2 {
		t.Fatalf("expected tiered rule with 2 tiers, got %+v", rule)
	}
}

func TestCreateRuleTieredInvalid(t *testing.T) {
	sellerRepo := &fakeSellerRepo{}
	ruleRepo := newFakeRuleRepo(sellerRepo)
	l := NewRuleLogic(ruleRepo, sellerRepo)

	rule := &model.CommissionRuleModel{OrganizationId: 1, Name: "阶梯规则", Kind: "tiered", IsActive: true}
	tiers := []model.CommissionTierModel{
		{MinAmount: dec("0"), MaxAmount: decPtr("500"), Percentage: dec("5")},
		{MinAmount: dec("600"), MaxAmount: nil, Percentage: dec("10")},
	}

	violations, err := l.CreateRule(rule, tiers)
	if err != nil {
		t.Fatalf("create rule: %v", err)
	}
	if len(violations) == 0 {
		t.Fatal("expected tier violations")
	}
	if len(ruleRepo.rules) != 0 {
		t.Fatal("expected rule not saved on validation failure")
	}
}

func TestCreateRuleClearsExistingDefault(t *testing.T) {
	sellerRepo := &fakeSellerRepo{}
	ruleRepo := newFakeRuleRepo(sellerRepo)
	ruleRepo.rules[10] = model.CommissionRuleModel{
		Id: 10, OrganizationId: 1, Kind: "fixed", Percentage: dec("10"),
		IsDefault: true, IsActive: true,
	}
	l := NewRuleLogic(ruleRepo, sellerRepo)

	rule := &model.CommissionRuleModel{
		OrganizationId: 1, Name: "新默认", Kind: "fixed",
		Percentage: dec("12"), IsDefault: true, IsActive: true,
	}
	if _, err := l.CreateRule(rule, nil); err != nil {
		t.Fatalf("create rule: %v", err)
	}

	if ruleRepo.rules[10].IsDefault {
		t.Fatal("expected previous default rule demoted")
	}
	if !ruleRepo.rules[rule.Id].IsDefault {
		t.Fatal("expected new rule to be default")
	}
}

func TestAssignSellerRuleOrganizationMismatch(t *testing.T) {
	sellerRepo := &fakeSellerRepo{sellers: []model.SellerModel{
		{Id: 1, OrganizationId: 1, Name: "张三"},
	}}
	ruleRepo := newFakeRuleRepo(sellerRepo)
	ruleRepo.rules[20] = model.CommissionRuleModel{
		Id: 20, OrganizationId: 2, Kind: "fixed", Percentage: dec("5"), IsActive: true,
	}
	l := NewRuleLogic(ruleRepo, sellerRepo)

	if err := l.AssignSellerRule(1, int64Ptr(20)); err == nil {
		t.Fatal("expected error for cross-organization rule assignment")
	}
}

func TestAssignSellerRuleClearLink(t *testing.T) {
	sellerRepo := &fakeSellerRepo{sellers: []model.SellerModel{
		{Id: 1, OrganizationId: 1, Name: "张三", CommissionRuleId: int64Ptr(20)},
	}}
	ruleRepo := newFakeRuleRepo(sellerRepo)
	l := NewRuleLogic(ruleRepo, sellerRepo)

	if err := l.AssignSellerRule(1, nil); err != nil {
		t.Fatalf("clear rule link: %v", err)
	}
	seller, _ := sellerRepo.FindById(1)
	if seller.CommissionRuleId != nil {
		t.Fatal("expected rule link cleared")
	}
}
