package logic

import (
	"testing"

	"github.com/blues/ccs/internal/model"
)

func newTestSaleLogic(
	saleRepo *fakeSaleRepo,
	ruleRepo *fakeRuleRepo,
	sellerRepo *fakeSellerRepo,
	commissionRepo *fakeCommissionRepo,
	taxRate string,
) *SaleLogic {
	ruleLogic := NewRuleLogic(ruleRepo, sellerRepo)
	commissionLogic := NewCommissionLogic(saleRepo, ruleRepo, sellerRepo, commissionRepo, ruleLogic, 1)
	return NewSaleLogic(saleRepo, sellerRepo, commissionRepo, commissionLogic, dec(taxRate))
}

func TestCreateSaleDerivesNetValueAndCommission(t *testing.T) {
	sellerRepo := &fakeSellerRepo{sellers: []model.SellerModel{
		{Id: 1, OrganizationId: 1, Name: "张三"},
	}}
	ruleRepo := newFakeRuleRepo(sellerRepo)
	ruleRepo.rules[10] = model.CommissionRuleModel{
		Id: 10, OrganizationId: 1, Kind: "fixed", Percentage: dec("10"),
		IsDefault: true, IsActive: true,
	}
	saleRepo := &fakeSaleRepo{}
	commissionRepo := newFakeCommissionRepo()
	l := newTestSaleLogic(saleRepo, ruleRepo, sellerRepo, commissionRepo, "10")

	sale := &model.SaleModel{
		OrganizationId: 1,
		SellerId:       1,
		GrossValue:     dec("1000"),
		SaleDate:       january,
	}
	outcome, err := l.CreateSale(sale)
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}

	if !sale.NetValue.Equal(dec("900.00")) {
		t.Fatalf("expected net value 900.00, got %s", sale.NetValue)
	}
	if outcome.Status != OutcomeCalculated {
		t.Fatalf("expected commission calculated, got %s (%s)", outcome.Status, outcome.Reason)
	}
	if !outcome.Commission.Amount.Equal(dec("90.00")) {
		t.Fatalf("expected commission 90.00, got %s", outcome.Commission.Amount)
	}
}

func TestCreateSaleWithoutRuleIsSkipped(t *testing.T) {
	sellerRepo := &fakeSellerRepo{sellers: []model.SellerModel{
		{Id: 1, OrganizationId: 1, Name: "张三"},
	}}
	ruleRepo := newFakeRuleRepo(sellerRepo)
	saleRepo := &fakeSaleRepo{}
	l := newTestSaleLogic(saleRepo, ruleRepo, sellerRepo, newFakeCommissionRepo(), "0")

	sale := &model.SaleModel{
		OrganizationId: 1,
		SellerId:       1,
		GrossValue:     dec("1000"),
		SaleDate:       january,
	}
	outcome, err := l.CreateSale(sale)
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}
	if outcome.Status != OutcomeSkipped {
		t.Fatalf("expected skipped outcome, got %s", outcome.Status)
	}
	if len(saleRepo.sales) != 1 {
		t.Fatal("expected sale saved even without commission")
	}
}

func TestCreateSaleUnknownSeller(t *testing.T) {
	sellerRepo := &fakeSellerRepo{}
	ruleRepo := newFakeRuleRepo(sellerRepo)
	l := newTestSaleLogic(&fakeSaleRepo{}, ruleRepo, sellerRepo, newFakeCommissionRepo(), "0")

	sale := &model.SaleModel{
		OrganizationId: 1,
		SellerId:       42,
		GrossValue:     dec("1000"),
		SaleDate:       january,
	}
	if _, err := l.CreateSale(sale); err == nil {
		t.Fatal("expected error for unknown seller")
	}
}

func TestDeleteSaleRemovesCommission(t *testing.T) {
	sellerRepo := &fakeSellerRepo{sellers: []model.SellerModel{
		{Id: 1, OrganizationId: 1, Name: "张三"},
	}}
	ruleRepo := newFakeRuleRepo(sellerRepo)
	ruleRepo.rules[10] = model.CommissionRuleModel{
		Id: 10, OrganizationId: 1, Kind: "fixed", Percentage: dec("10"),
		IsDefault: true, IsActive: true,
	}
	saleRepo := &fakeSaleRepo{}
	commissionRepo := newFakeCommissionRepo()
	l := newTestSaleLogic(saleRepo, ruleRepo, sellerRepo, commissionRepo, "0")

	sale := &model.SaleModel{
		OrganizationId: 1,
		SellerId:       1,
		GrossValue:     dec("1000"),
		SaleDate:       january,
	}
	if _, err := l.CreateSale(sale); err != nil {
		t.Fatalf("create sale: %v", err)
	}
	if record, _ := commissionRepo.FindBySaleId(sale.Id); record == nil {
		t.Fatal("expected commission created")
	}

	if err := l.DeleteSale(sale.Id); err != nil {
		t.Fatalf("delete sale: %v", err)
	}
	if record, _ := commissionRepo.FindBySaleId(sale.Id); record != nil {
		t.Fatal("expected commission removed with sale")
	}
	if len(saleRepo.sales) != 0 {
		t.Fatal("expected sale removed")
	}
}
