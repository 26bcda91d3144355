package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/ccs/internal/logic"
	"github.com/gin-gonic/gin"
)

// CommissionHandler 佣金计算处理器
type CommissionHandler struct {
	commissionLogic *logic.CommissionLogic
}

// NewCommissionHandler 创建佣金计算处理器
func NewCommissionHandler(commissionLogic *logic.CommissionLogic) *CommissionHandler {
	return &CommissionHandler{commissionLogic: commissionLogic}
}

// CalculateForSale 计算单笔销售的佣金
func (h *CommissionHandler) CalculateForSale(c *gin.Context) {
	saleId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的销售ID")
		return
	}

	outcome, err := h.commissionLogic.CalculateForSaleId(saleId)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "佣金计算完成", outcome)
}

// CalculateForPeriod 计算组织在指定期间的全部佣金
func (h *CommissionHandler) CalculateForPeriod(c *gin.Context) {
	var req PeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	counters, err := h.commissionLogic.CalculateForPeriod(req.OrganizationId, req.Period)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "期间佣金计算完成", counters)
}

// RecalculateForSeller 重算销售员的全部历史佣金
func (h *CommissionHandler) RecalculateForSeller(c *gin.Context) {
	sellerId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的销售员ID")
		return
	}

	counters, err := h.commissionLogic.RecalculateForSeller(sellerId)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "销售员佣金重算完成", counters)
}

// RecalculateForRule 规则变更后的级联重算
func (h *CommissionHandler) RecalculateForRule(c *gin.Context) {
	ruleId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的规则ID")
		return
	}

	organizationId, err := strconv.ParseInt(c.Query("organization_id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的组织ID")
		return
	}

	counters, err := h.commissionLogic.RecalculateForRule(ruleId, organizationId)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "规则佣金重算完成", counters)
}

// DeletePeriod 批量清除组织在指定期间的佣金记录
func (h *CommissionHandler) DeletePeriod(c *gin.Context) {
	var req PeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.commissionLogic.DeletePeriod(req.OrganizationId, req.Period); err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "期间佣金记录已清除", nil)
}

// GetSellerSummary 获取销售员期间佣金汇总
func (h *CommissionHandler) GetSellerSummary(c *gin.Context) {
	organizationId, err := strconv.ParseInt(c.Query("organization_id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的组织ID")
		return
	}

	period := c.Query("period")
	if period == "" {
		ErrorResponse(c, http.StatusBadRequest, "期间不能为空")
		return
	}

	summaries, err := h.commissionLogic.GetSellerSummary(organizationId, period)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取销售员佣金汇总成功", summaries)
}
