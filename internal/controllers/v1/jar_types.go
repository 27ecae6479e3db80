package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/six-jars/backend/internal/httputil"
	"github.com/six-jars/backend/internal/models"
)

type JarLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/jars?user=3"` // The jar collection of the user
}

// Jar is the representation of a Jar in API v1.
type Jar struct {
	models.Model
	UserID     uint64          `json:"userId" example:"3"`
	Name       string          `json:"name" example:"NEC"`
	FullName   string          `json:"fullName" example:"Necessities"`
	Percentage decimal.Decimal `json:"percentage" example:"55"`
	Balance    decimal.Decimal `json:"balance" example:"1034.25"`
	Links      JarLinks        `json:"links"`
}

// newJar returns the API v1 representation of the resource.
func newJar(c *gin.Context, model models.Jar) Jar {
	url := httputil.RequestHost(c)

	fullName, ok := models.JarNames[model.Name]
	if !ok {
		fullName = model.Name
	}

	return Jar{
		Model:      model.Model,
		UserID:     model.UserID,
		Name:       model.Name,
		FullName:   fullName,
		Percentage: model.Percentage,
		Balance:    model.Balance,
		Links: JarLinks{
			Self: fmt.Sprintf("%s/v1/jars?user=%d", url, model.UserID),
		},
	}
}

type JarListResponse struct {
	Error *string `json:"error"` // The error, if any occurred
	Data  []Jar   `json:"data"`  // List of jars

	// Warning set when the percentages do not sum to 100. Reads are not
	// blocked by this, but allocations will be skewed until it is fixed.
	PercentageWarning *string `json:"percentageWarning"`
}

// JarPercentageUpdate is the request body for the bulk percentage update.
//
// Percentages is keyed by jar ID. JSON object keys are always strings, the
// controller parses them back into IDs.
type JarPercentageUpdate struct {
	UserID      uint64                     `json:"userId" binding:"required" example:"3"`
	Percentages map[string]decimal.Decimal `json:"percentages" binding:"required"`
}

type JarUserRequest struct {
	UserID uint64 `json:"userId" binding:"required" example:"3"`
}
