package logic

import (
	"errors"
	"sync"

	"github.com/blues/ccs/internal/calc"
	"github.com/blues/ccs/internal/model"
)

type fakeSaleRepo struct {
	sales  []model.SaleModel
	nextId int64
	err    error
}

func (r *fakeSaleRepo) FindById(id int64) (*model.SaleModel, error) {
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.sales {
		if r.sales[i].Id == id {
			sale := r.sales[i]
			return &sale, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) FindByPeriod(organizationId int64, period string) ([]model.SaleModel, error) {
	if r.err != nil {
		return nil, r.err
	}
	var result []model.SaleModel
	for _, sale := range r.sales {
		if sale.OrganizationId == organizationId && calc.ExtractPeriod(sale.SaleDate) == period {
			result = append(result, sale)
		}
	}
	return result, nil
}

func (r *fakeSaleRepo) FindBySeller(sellerId int64) ([]model.SaleModel, error) {
	if r.err != nil {
		return nil, r.err
	}
	var result []model.SaleModel
	for _, sale := range r.sales {
		if sale.SellerId == sellerId {
			result = append(result, sale)
		}
	}
	return result, nil
}

func (r *fakeSaleRepo) FindByOrganization(organizationId int64) ([]model.SaleModel, error) {
	if r.err != nil {
		return nil, r.err
	}
	var result []model.SaleModel
	for _, sale := range r.sales {
		if sale.OrganizationId == organizationId {
			result = append(result, sale)
		}
	}
	return result, nil
}

func (r *fakeSaleRepo) FindOrganizationIdsByPeriod(period string) ([]int64, error) {
	seen := map[int64]bool{}
	var ids []int64
	for _, sale := range r.sales {
		if calc.ExtractPeriod(sale.SaleDate) == period && !seen[sale.OrganizationId] {
			seen[sale.OrganizationId] = true
			ids = append(ids, sale.OrganizationId)
		}
	}
	return ids, nil
}

func (r *fakeSaleRepo) Create(sale *model.SaleModel) error {
	if r.err != nil {
		return r.err
	}
	r.nextId++
	sale.Id = r.nextId
	r.sales = append(r.sales, *sale)
	return nil
}

func (r *fakeSaleRepo) Delete(id int64) error {
	for i := range r.sales {
		if r.sales[i].Id == id {
			r.sales = append(r.sales[:i], r.sales[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeRuleRepo struct {
	rules      map[int64]model.CommissionRuleModel
	tiers      map[int64][]model.CommissionTierModel
	sellerRepo *fakeSellerRepo
}

func newFakeRuleRepo(sellerRepo *fakeSellerRepo) *fakeRuleRepo {
	return &fakeRuleRepo{
		rules:      map[int64]model.CommissionRuleModel{},
		tiers:      map[int64][]model.CommissionTierModel{},
		sellerRepo: sellerRepo,
	}
}

func (r *fakeRuleRepo) FindById(id int64) (*model.CommissionRuleModel, error) {
	if rule, ok := r.rules[id]; ok {
		return &rule, nil
	}
	return nil, nil
}

func (r *fakeRuleRepo) FindByOrganization(organizationId int64) ([]model.CommissionRuleModel, error) {
	var result []model.CommissionRuleModel
	for _, rule := range r.rules {
		if rule.OrganizationId == organizationId {
			result = append(result, rule)
		}
	}
	return result, nil
}

func (r *fakeRuleRepo) FindDefaultByOrganization(organizationId int64) (*model.CommissionRuleModel, error) {
	for _, rule := range r.rules {
		if rule.OrganizationId == organizationId && rule.IsDefault && rule.IsActive {
			found := rule
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeRuleRepo) FindTiersByRuleId(ruleId int64) ([]model.CommissionTierModel, error) {
	return r.tiers[ruleId], nil
}

func (r *fakeRuleRepo) FindSellersLinkedToRule(ruleId int64) ([]int64, error) {
	var ids []int64
	for _, seller := range r.sellerRepo.sellers {
		if seller.CommissionRuleId != nil && *seller.CommissionRuleId == ruleId {
			ids = append(ids, seller.Id)
		}
	}
	return ids, nil
}

func (r *fakeRuleRepo) Create(rule *model.CommissionRuleModel, tiers []model.CommissionTierModel) error {
	if rule.Id == 0 {
		rule.Id = int64(len(r.rules) + 1)
	}
	r.rules[rule.Id] = *rule
	r.tiers[rule.Id] = tiers
	return nil
}

func (r *fakeRuleRepo) Update(rule *model.CommissionRuleModel, tiers []model.CommissionTierModel) error {
	r.rules[rule.Id] = *rule
	r.tiers[rule.Id] = tiers
	return nil
}

func (r *fakeRuleRepo) ClearDefault(organizationId int64) error {
	for id, rule := range r.rules {
		if rule.OrganizationId == organizationId && rule.IsDefault {
			rule.IsDefault = false
			r.rules[id] = rule
		}
	}
	return nil
}

type fakeSellerRepo struct {
	sellers []model.SellerModel
}

func (r *fakeSellerRepo) FindById(id int64) (*model.SellerModel, error) {
	for i := range r.sellers {
		if r.sellers[i].Id == id {
			seller := r.sellers[i]
			return &seller, nil
		}
	}
	return nil, nil
}

func (r *fakeSellerRepo) FindByOrganization(organizationId int64) ([]model.SellerModel, error) {
	var result []model.SellerModel
	for _, seller := range r.sellers {
		if seller.OrganizationId == organizationId {
			result = append(result, seller)
		}
	}
	return result, nil
}

func (r *fakeSellerRepo) Create(seller *model.SellerModel) error {
	seller.Id = int64(len(r.sellers) + 1)
	r.sellers = append(r.sellers, *seller)
	return nil
}

func (r *fakeSellerRepo) UpdateRuleLink(sellerId int64, ruleId *int64) error {
	for i := range r.sellers {
		if r.sellers[i].Id == sellerId {
			r.sellers[i].CommissionRuleId = ruleId
			return nil
		}
	}
	return errors.New("seller not found")
}

type fakeCommissionRepo struct {
	mu          sync.Mutex
	records     map[int64]model.CommissionModel // 以销售ID为键
	nextId      int64
	upsertCalls int
	upsertErr   error
}

func newFakeCommissionRepo() *fakeCommissionRepo {
	return &fakeCommissionRepo{records: map[int64]model.CommissionModel{}}
}

func (r *fakeCommissionRepo) UpsertBySaleId(commission *model.CommissionModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.upsertCalls++
	if r.upsertErr != nil {
		return r.upsertErr
	}
	if existing, ok := r.records[commission.SaleId]; ok {
		commission.Id = existing.Id
	} else {
		r.nextId++
		commission.Id = r.nextId
	}
	r.records[commission.SaleId] = *commission
	return nil
}

func (r *fakeCommissionRepo) FindBySaleId(saleId int64) (*model.CommissionModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record, ok := r.records[saleId]; ok {
		return &record, nil
	}
	return nil, nil
}

func (r *fakeCommissionRepo) FindByPeriod(organizationId int64, period string) ([]model.CommissionModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []model.CommissionModel
	for _, record := range r.records {
		if record.OrganizationId == organizationId && record.Period == period {
			result = append(result, record)
		}
	}
	return result, nil
}

func (r *fakeCommissionRepo) DeleteBySaleId(saleId int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, saleId)
	return nil
}

func (r *fakeCommissionRepo) DeleteByPeriod(organizationId int64, period string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for saleId, record := range r.records {
		if record.OrganizationId == organizationId && record.Period == period {
			delete(r.records, saleId)
		}
	}
	return nil
}

func (r *fakeCommissionRepo) GetSellerSummary(organizationId int64, period string) ([]model.SellerSummary, error) {
	return nil, nil
}
