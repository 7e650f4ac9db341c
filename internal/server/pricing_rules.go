package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	ruledomain "github.com/printhauslabs/printhaus/internal/pricingrule/domain"
)

// @Summary      List Pricing Rules
// @Tags         pricing-rules
// @Produce      json
// @Param        calculation_type  query  string  false  "piece|area|page"
// @Param        is_active         query  bool    false  "Active filter"
// @Success      200  {object}  map[string]any
// @Router       /v1/pricing-rules [get]
func (s *Server) ListPricingRules(c *gin.Context) {
	var opts ruledomain.ListOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	rules, err := s.ruleSvc.List(c.Request.Context(), opts)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, rules)
}

// @Summary      Create Pricing Rule
// @Tags         pricing-rules
// @Accept       json
// @Produce      json
// @Param        request body ruledomain.CreateRequest true "Create Pricing Rule Request"
// @Success      200  {object}  map[string]any
// @Router       /v1/pricing-rules [post]
func (s *Server) CreatePricingRule(c *gin.Context) {
	var req ruledomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	rule, err := s.ruleSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, rule)
}

// @Summary      Get Pricing Rule
// @Tags         pricing-rules
// @Produce      json
// @Param        id   path  string  true  "Rule ID"
// @Success      200  {object}  map[string]any
// @Router       /v1/pricing-rules/{id} [get]
func (s *Server) GetPricingRule(c *gin.Context) {
	rule, err := s.ruleSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, rule)
}

// @Summary      Update Pricing Rule
// @Tags         pricing-rules
// @Accept       json
// @Produce      json
// @Param        id      path  string                   true  "Rule ID"
// @Param        request body  ruledomain.UpdateRequest true  "Update Pricing Rule Request"
// @Success      200  {object}  map[string]any
// @Router       /v1/pricing-rules/{id} [patch]
func (s *Server) UpdatePricingRule(c *gin.Context) {
	var req ruledomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	rule, err := s.ruleSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, rule)
}

// @Summary      Deactivate Pricing Rule
// @Tags         pricing-rules
// @Produce      json
// @Param        id   path  string  true  "Rule ID"
// @Success      200  {object}  map[string]any
// @Router       /v1/pricing-rules/{id} [delete]
func (s *Server) DeactivatePricingRule(c *gin.Context) {
	rule, err := s.ruleSvc.Deactivate(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, rule)
}

// @Summary      Bulk Reprice
// @Description  Apply a uniform percentage change to all matching rules
// @Tags         pricing-rules
// @Accept       json
// @Produce      json
// @Param        request body ruledomain.BulkRepriceRequest true "Bulk Reprice Request"
// @Success      200  {object}  map[string]any
// @Router       /v1/pricing-rules/bulk-reprice [post]
func (s *Server) BulkReprice(c *gin.Context) {
	var req ruledomain.BulkRepriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.ruleSvc.BulkReprice(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, result)
}
