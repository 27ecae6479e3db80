package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/six-jars/backend/internal/httputil"
	"github.com/six-jars/backend/internal/models"
)

type OutcomeEditable struct {
	UserID uint64    `json:"userId" example:"3"`
	JarID  *uint64   `json:"jarId" example:"1"` // The jar to debit. May be null for outcomes that touch no jar.
	Date   time.Time `json:"date" example:"2024-01-15T00:00:00Z"`

	// The amount is rounded to whole currency units before it is persisted
	Amount decimal.Decimal `json:"amount" example:"250000" minimum:"0"`

	Category    string `json:"category" example:"Food" default:""`
	Description string `json:"description" example:"Groceries" default:""`
}

// model returns the database resource for the API representation of the
// editable fields. The amount is rounded to whole units here.
func (editable OutcomeEditable) model() models.Outcome {
	return models.Outcome{
		UserID:      editable.UserID,
		JarID:       editable.JarID,
		Date:        editable.Date,
		Category:    editable.Category,
		Description: editable.Description,
		Amount:      editable.Amount.Round(0).IntPart(),
	}
}

type OutcomeLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/outcomes/23"` // The outcome itself
}

// Outcome is the representation of an Outcome in API v1.
type Outcome struct {
	models.Model
	OutcomeEditable
	JarName string       `json:"jarName" example:"NEC"` // Name of the debited jar, empty if none
	Links   OutcomeLinks `json:"links"`
}

// newOutcome returns the API v1 representation of the resource.
func newOutcome(c *gin.Context, model models.Outcome) Outcome {
	url := httputil.RequestHost(c)

	var jarName string
	if model.JarID != nil {
		var jar models.Jar
		if err := models.DB.First(&jar, *model.JarID).Error; err == nil {
			jarName = jar.Name
		}
	}

	return Outcome{
		Model: model.Model,
		OutcomeEditable: OutcomeEditable{
			UserID:      model.UserID,
			JarID:       model.JarID,
			Date:        model.Date,
			Category:    model.Category,
			Description: model.Description,
			Amount:      decimal.NewFromInt(model.Amount),
		},
		JarName: jarName,
		Links: OutcomeLinks{
			Self: fmt.Sprintf("%s/v1/outcomes/%d", url, model.ID),
		},
	}
}

type OutcomeResponse struct {
	Error *string  `json:"error"` // The error, if any occurred
	Data  *Outcome `json:"data"`  // The Outcome data, if the request was successful
}

type OutcomeListResponse struct {
	Error      *string     `json:"error"`      // The error, if any occurred
	Data       []Outcome   `json:"data"`       // List of outcomes
	Pagination *Pagination `json:"pagination"` // Pagination information
}

type OutcomeQueryFilter struct {
	UserID            uint64          `form:"user" filterField:"false"`              // ID of the user
	JarID             uint64          `form:"jar" filterField:"false"`               // ID of the debited jar
	Date              time.Time       `form:"date" filterField:"false"`              // Exact date. Time is ignored.
	FromDate          time.Time       `form:"fromDate" filterField:"false"`          // Outcomes at and after this date
	UntilDate         time.Time       `form:"untilDate" filterField:"false"`         // Outcomes before and at this date
	Search            string          `form:"search" filterField:"false"`            // Search in category and description
	AmountMoreOrEqual decimal.Decimal `form:"amountMoreOrEqual" filterField:"false"` // Amount more than or equal to this
	AmountLessOrEqual decimal.Decimal `form:"amountLessOrEqual" filterField:"false"` // Amount less than or equal to this
	Offset            uint            `form:"offset" filterField:"false"`            // The offset of the first Outcome returned. Defaults to 0.
	Limit             int             `form:"limit" filterField:"false"`             // Maximum number of Outcomes to return. Defaults to 50.
}
