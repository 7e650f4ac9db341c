package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/printhauslabs/printhaus/internal/order/domain"
)

// @Summary      Create Order Line
// @Description  Price a request through the engine and persist the line
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body orderdomain.CreateRequest true "Create Order Line Request"
// @Success      200  {object}  map[string]any
// @Router       /v1/orders [post]
func (s *Server) CreateOrderLine(c *gin.Context) {
	var req orderdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	line, err := s.orderSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, line)
}

// @Summary      List Order Lines
// @Tags         orders
// @Produce      json
// @Param        status        query  string  false  "priced|pending_pricing"
// @Param        order_number  query  string  false  "Order number"
// @Success      200  {object}  map[string]any
// @Router       /v1/orders [get]
func (s *Server) ListOrderLines(c *gin.Context) {
	var opts orderdomain.ListOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	lines, err := s.orderSvc.List(c.Request.Context(), opts)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, lines)
}

// @Summary      Get Order Line
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "Order Line ID"
// @Success      200  {object}  map[string]any
// @Router       /v1/orders/{id} [get]
func (s *Server) GetOrderLine(c *gin.Context) {
	line, err := s.orderSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, line)
}
