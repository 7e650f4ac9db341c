package server

import (
	"github.com/gin-gonic/gin"
	pricingdomain "github.com/printhauslabs/printhaus/internal/pricing/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var quotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "printhaus_quotes_total",
	Help: "Price quotes served, by outcome.",
}, []string{"outcome"})

// @Summary      Create Quote
// @Description  Price a query without persisting anything
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        request body pricingdomain.PriceQuery true "Price Query"
// @Success      200  {object}  map[string]any
// @Router       /v1/quotes [post]
func (s *Server) CreateQuote(c *gin.Context) {
	var query pricingdomain.PriceQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.pricingSvc.Quote(c.Request.Context(), query)
	if err != nil {
		quotesTotal.WithLabelValues("rejected").Inc()
		AbortWithError(c, err)
		return
	}

	if result.Matched {
		quotesTotal.WithLabelValues("matched").Inc()
	} else {
		quotesTotal.WithLabelValues("no_rule").Inc()
	}
	respondData(c, result)
}
