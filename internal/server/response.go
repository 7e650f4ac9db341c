package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/printhauslabs/printhaus/internal/order/domain"
	pricingdomain "github.com/printhauslabs/printhaus/internal/pricing/domain"
	ruledomain "github.com/printhauslabs/printhaus/internal/pricingrule/domain"
)

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func invalidRequestError() error {
	return errBadRequestBody
}

var errBadRequestBody = errors.New("invalid_request_body")

// AbortWithError maps domain errors onto HTTP status codes. Unknown
// errors are internal.
func AbortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errBadRequestBody),
		errors.Is(err, ruledomain.ErrInvalidID),
		errors.Is(err, ruledomain.ErrInvalidDisplayName),
		errors.Is(err, ruledomain.ErrInvalidCalculationType),
		errors.Is(err, ruledomain.ErrCalculationTypeImmutable),
		errors.Is(err, ruledomain.ErrNegativeBasePrice),
		errors.Is(err, ruledomain.ErrInvalidPercentage),
		errors.Is(err, ruledomain.ErrInvalidOperation),
		errors.Is(err, pricingdomain.ErrInvalidQuantity),
		errors.Is(err, pricingdomain.ErrInvalidDimension),
		errors.Is(err, pricingdomain.ErrInvalidCalculationType),
		errors.Is(err, orderdomain.ErrInvalidID):
		status = http.StatusBadRequest
	case errors.Is(err, ruledomain.ErrRuleNotFound),
		errors.Is(err, orderdomain.ErrLineNotFound):
		status = http.StatusNotFound
	case errors.Is(err, pricingdomain.ErrInvalidRuleState):
		status = http.StatusConflict
	}

	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
