package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/six-jars/backend/internal/httputil"
	"github.com/six-jars/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterIncomeRoutes registers the routes for incomes with
// the RouterGroup that is passed.
func RegisterIncomeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsIncomes)
		r.GET("", GetIncomes)
		r.POST("", CreateIncome)
	}

	// Income with ID
	{
		r.OPTIONS("/:id", OptionsIncomeDetail)
		r.GET("/:id", GetIncome)
		r.PATCH("/:id", UpdateIncome)
		r.DELETE("/:id", DeleteIncome)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Incomes
// @Success		204
// @Router			/v1/incomes [options]
func OptionsIncomes(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Incomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the income"
// @Router			/v1/incomes/{id} [options]
func OptionsIncomeDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var income models.Income
	if err := models.DB.First(&income, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create income
// @Description	Creates an income and distributes its amount across the user's jars
// @Tags			Incomes
// @Accept			json
// @Produce		json
// @Success		201		{object}	IncomeResponse
// @Failure		400		{object}	IncomeResponse
// @Failure		404		{object}	IncomeResponse
// @Failure		500		{object}	IncomeResponse
// @Param			income	body		IncomeEditable	true	"Income"
// @Router			/v1/incomes [post]
func CreateIncome(c *gin.Context) {
	var editable IncomeEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &e})
		return
	}

	if editable.Amount.IsNegative() {
		e := errAmountNegative.Error()
		c.JSON(http.StatusBadRequest, IncomeResponse{Error: &e})
		return
	}

	income := editable.model()
	if err := models.CreateIncome(&income); err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &e})
		return
	}

	data := newIncome(c, income)
	c.JSON(http.StatusCreated, IncomeResponse{Data: &data})
}

// @Summary		Get incomes
// @Description	Returns a list of incomes
// @Tags			Incomes
// @Produce		json
// @Success		200	{object}	IncomeListResponse
// @Failure		400	{object}	IncomeListResponse
// @Router			/v1/incomes [get]
// @Param			user				query	uint64	true	"ID of the user"
// @Param			date				query	string	false	"Date of the income. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
// @Param			fromDate			query	string	false	"Incomes at and after this date"
// @Param			untilDate			query	string	false	"Incomes before and at this date"
// @Param			search				query	string	false	"Search in source and description"
// @Param			amountMoreOrEqual	query	string	false	"Amount more than or equal to this"
// @Param			amountLessOrEqual	query	string	false	"Amount less than or equal to this"
// @Param			offset				query	uint	false	"The offset of the first Income returned. Defaults to 0."
// @Param			limit				query	int		false	"Maximum number of Incomes to return. Defaults to 50."
func GetIncomes(c *gin.Context) {
	var filter IncomeQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, IncomeListResponse{Error: &e})
		return
	}

	if filter.UserID == 0 {
		e := errUserIDParameter.Error()
		c.JSON(http.StatusBadRequest, IncomeListResponse{Error: &e})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("datetime(incomes.date) DESC, datetime(incomes.created_at) DESC").
		Where(&models.Income{UserID: filter.UserID})

	q = dateFilters(q, "incomes", filter.Date, filter.FromDate, filter.UntilDate)

	if filter.Search != "" {
		search := fmt.Sprintf("%%%s%%", filter.Search)
		q = q.Where(models.DB.Where("incomes.source LIKE ?", search).Or("incomes.description LIKE ?", search))
	}

	if !filter.AmountMoreOrEqual.IsZero() {
		q = q.Where("incomes.amount >= ?", filter.AmountMoreOrEqual)
	}

	if !filter.AmountLessOrEqual.IsZero() {
		q = q.Where("incomes.amount <= ?", filter.AmountLessOrEqual)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 incomes and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var incomes []models.Income
	if err := q.Find(&incomes).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeListResponse{Error: &e})
		return
	}

	var count int64
	if err := q.Limit(-1).Offset(-1).Count(&count).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeListResponse{Error: &e})
		return
	}

	data := make([]Income, 0, len(incomes))
	for _, income := range incomes {
		data = append(data, newIncome(c, income))
	}

	c.JSON(http.StatusOK, IncomeListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get income
// @Description	Returns a specific income with its jar splits
// @Tags			Incomes
// @Produce		json
// @Success		200	{object}	IncomeDetailResponse
// @Failure		400	{object}	IncomeDetailResponse
// @Failure		404	{object}	IncomeDetailResponse
// @Param			id	path		URIID	true	"ID of the income"
// @Router			/v1/incomes/{id} [get]
func GetIncome(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeDetailResponse{Error: &e})
		return
	}

	var income models.Income
	if err := models.DB.First(&income, uri.ID).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeDetailResponse{Error: &e})
		return
	}

	splits, err := models.SplitsFor(income.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeDetailResponse{Error: &e})
		return
	}

	data := newIncomeDetail(c, income, splits)
	c.JSON(http.StatusOK, IncomeDetailResponse{Data: &data})
}

// @Summary		Update income
// @Description	Updates an existing income. Only values to be updated need to be specified. The recorded jar splits are not changed.
// @Tags			Incomes
// @Accept			json
// @Produce		json
// @Success		200		{object}	IncomeResponse
// @Failure		400		{object}	IncomeResponse
// @Failure		404		{object}	IncomeResponse
// @Param			id		path		URIID			true	"ID of the income"
// @Param			income	body		IncomeEditable	true	"Income"
// @Router			/v1/incomes/{id} [patch]
func UpdateIncome(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &e})
		return
	}

	var income models.Income
	if err := models.DB.First(&income, uri.ID).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &e})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, IncomeEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &e})
		return
	}

	var update IncomeEditable
	if err := httputil.BindData(c, &update); err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &e})
		return
	}

	if update.Amount.IsNegative() {
		e := errAmountNegative.Error()
		c.JSON(http.StatusBadRequest, IncomeResponse{Error: &e})
		return
	}

	// The user an income belongs to can not be changed
	updateFields = slices.DeleteFunc(updateFields, func(field any) bool {
		return field == "UserID"
	})
	update.UserID = income.UserID

	err = models.DB.Model(&income).Select("", updateFields...).Updates(update.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &e})
		return
	}

	data := newIncome(c, income)
	c.JSON(http.StatusOK, IncomeResponse{Data: &data})
}

// @Summary		Delete income
// @Description	Deletes an income, reversing its jar splits. Fails if any jar no longer holds its share.
// @Tags			Incomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the income"
// @Router			/v1/incomes/{id} [delete]
func DeleteIncome(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var income models.Income
	if err := models.DB.First(&income, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DeleteIncome(&income); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// dateFilters adds day-granularity date conditions for the given table.
func dateFilters(q *gorm.DB, table string, date, fromDate, untilDate time.Time) *gorm.DB {
	if !date.IsZero() {
		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		q = q.Where(fmt.Sprintf("%s.date >= date(?)", table), day).
			Where(fmt.Sprintf("%s.date < date(?)", table), day.AddDate(0, 0, 1))
	}

	if !fromDate.IsZero() {
		q = q.Where(fmt.Sprintf("%s.date >= date(?)", table),
			time.Date(fromDate.Year(), fromDate.Month(), fromDate.Day(), 0, 0, 0, 0, time.UTC))
	}

	if !untilDate.IsZero() {
		q = q.Where(fmt.Sprintf("%s.date < date(?)", table),
			time.Date(untilDate.Year(), untilDate.Month(), untilDate.Day()+1, 0, 0, 0, 0, time.UTC))
	}

	return q
}
