package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/six-jars/backend/internal/httputil"
	"github.com/six-jars/backend/internal/models"
)

type IncomeEditable struct {
	UserID uint64    `json:"userId" example:"3"`
	Date   time.Time `json:"date" example:"2024-01-15T00:00:00Z"`

	// The amount is rounded to whole currency units before it is persisted
	Amount decimal.Decimal `json:"amount" example:"1000007" minimum:"0"`

	Source      string `json:"source" example:"Salary" default:""`
	Description string `json:"description" example:"January payout" default:""`
}

// model returns the database resource for the API representation of the
// editable fields. The amount is rounded to whole units here.
func (editable IncomeEditable) model() models.Income {
	return models.Income{
		UserID:      editable.UserID,
		Date:        editable.Date,
		Source:      editable.Source,
		Description: editable.Description,
		Amount:      editable.Amount.Round(0).IntPart(),
	}
}

type IncomeLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/incomes/17"` // The income itself
}

// Income is the representation of an Income in API v1.
type Income struct {
	models.Model
	IncomeEditable
	Links IncomeLinks `json:"links"`
}

// IncomeSplit is one recorded share of an income in the detail view.
type IncomeSplit struct {
	JarID   uint64 `json:"jarId" example:"1"`
	JarName string `json:"jarName" example:"NEC"`
	Amount  int64  `json:"amount" example:"550007"`
}

// IncomeDetail is the detail representation of an Income, including its
// splits.
type IncomeDetail struct {
	Income
	Splits []IncomeSplit `json:"splits"`
}

// newIncome returns the API v1 representation of the resource.
func newIncome(c *gin.Context, model models.Income) Income {
	url := httputil.RequestHost(c)

	return Income{
		Model: model.Model,
		IncomeEditable: IncomeEditable{
			UserID:      model.UserID,
			Date:        model.Date,
			Source:      model.Source,
			Description: model.Description,
			Amount:      decimal.NewFromInt(model.Amount),
		},
		Links: IncomeLinks{
			Self: fmt.Sprintf("%s/v1/incomes/%d", url, model.ID),
		},
	}
}

// newIncomeDetail returns the detail representation including splits.
func newIncomeDetail(c *gin.Context, model models.Income, splits []models.IncomeJarSplit) IncomeDetail {
	detail := IncomeDetail{
		Income: newIncome(c, model),
		Splits: make([]IncomeSplit, 0, len(splits)),
	}

	for _, split := range splits {
		detail.Splits = append(detail.Splits, IncomeSplit{
			JarID:   split.JarID,
			JarName: split.Jar.Name,
			Amount:  split.Amount,
		})
	}

	return detail
}

type IncomeResponse struct {
	Error *string `json:"error"` // The error, if any occurred
	Data  *Income `json:"data"`  // The Income data, if the request was successful
}

type IncomeDetailResponse struct {
	Error *string       `json:"error"` // The error, if any occurred
	Data  *IncomeDetail `json:"data"`  // The Income data including its splits
}

type IncomeListResponse struct {
	Error      *string     `json:"error"`      // The error, if any occurred
	Data       []Income    `json:"data"`       // List of incomes
	Pagination *Pagination `json:"pagination"` // Pagination information
}

type IncomeQueryFilter struct {
	UserID            uint64          `form:"user" filterField:"false"`              // ID of the user
	Date              time.Time       `form:"date" filterField:"false"`              // Exact date. Time is ignored.
	FromDate          time.Time       `form:"fromDate" filterField:"false"`          // Incomes at and after this date
	UntilDate         time.Time       `form:"untilDate" filterField:"false"`         // Incomes before and at this date
	Search            string          `form:"search" filterField:"false"`            // Search in source and description
	AmountMoreOrEqual decimal.Decimal `form:"amountMoreOrEqual" filterField:"false"` // Amount more than or equal to this
	AmountLessOrEqual decimal.Decimal `form:"amountLessOrEqual" filterField:"false"` // Amount less than or equal to this
	Offset            uint            `form:"offset" filterField:"false"`            // The offset of the first Income returned. Defaults to 0.
	Limit             int             `form:"limit" filterField:"false"`             // Maximum number of Incomes to return. Defaults to 50.
}
