package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/ccs/internal/logic"
	"github.com/blues/ccs/internal/model"
	"github.com/gin-gonic/gin"
)

// SaleHandler 销售记录处理器
type SaleHandler struct {
	saleLogic *logic.SaleLogic
}

// NewSaleHandler 创建销售记录处理器
func NewSaleHandler(saleLogic *logic.SaleLogic) *SaleHandler {
	return &SaleHandler{saleLogic: saleLogic}
}

// CreateSale 创建销售记录并立即计算佣金
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sale := &model.SaleModel{
		OrganizationId: req.OrganizationId,
		SellerId:       req.SellerId,
		GrossValue:     req.GrossValue,
		SaleDate:       req.SaleDate,
	}

	outcome, err := h.saleLogic.CreateSale(sale)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"sale": sale, "commission": outcome}})
}

// GetSales 查询销售记录，支持按期间或销售员过滤
func (h *SaleHandler) GetSales(c *gin.Context) {
	organizationId, err := strconv.ParseInt(c.Query("organization_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的组织ID"})
		return
	}

	var sellerId int64
	if raw := c.Query("seller_id"); raw != "" {
		sellerId, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的销售员ID"})
			return
		}
	}

	sales, err := h.saleLogic.GetSales(organizationId, c.Query("period"), sellerId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sales})
}

// DeleteSale 删除销售记录及其佣金
func (h *SaleHandler) DeleteSale(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的销售ID"})
		return
	}

	if err := h.saleLogic.DeleteSale(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
