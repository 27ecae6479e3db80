package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/six-jars/backend/internal/httputil"
	"github.com/six-jars/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterOutcomeRoutes registers the routes for outcomes with
// the RouterGroup that is passed.
func RegisterOutcomeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsOutcomes)
		r.GET("", GetOutcomes)
		r.POST("", CreateOutcome)
	}

	// Outcome with ID
	{
		r.OPTIONS("/:id", OptionsOutcomeDetail)
		r.GET("/:id", GetOutcome)
		r.PATCH("/:id", UpdateOutcome)
		r.DELETE("/:id", DeleteOutcome)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Outcomes
// @Success		204
// @Router			/v1/outcomes [options]
func OptionsOutcomes(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Outcomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the outcome"
// @Router			/v1/outcomes/{id} [options]
func OptionsOutcomeDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var outcome models.Outcome
	if err := models.DB.First(&outcome, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create outcome
// @Description	Creates an outcome, debiting the referenced jar. Fails if the jar does not hold the amount.
// @Tags			Outcomes
// @Accept			json
// @Produce		json
// @Success		201		{object}	OutcomeResponse
// @Failure		400		{object}	OutcomeResponse
// @Failure		404		{object}	OutcomeResponse
// @Failure		500		{object}	OutcomeResponse
// @Param			outcome	body		OutcomeEditable	true	"Outcome"
// @Router			/v1/outcomes [post]
func CreateOutcome(c *gin.Context) {
	var editable OutcomeEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), OutcomeResponse{Error: &e})
		return
	}

	if editable.Amount.IsNegative() {
		e := errAmountNegative.Error()
		c.JSON(http.StatusBadRequest, OutcomeResponse{Error: &e})
		return
	}

	outcome := editable.model()
	if err := models.CreateOutcome(&outcome); err != nil {
		e := err.Error()
		c.JSON(status(err), OutcomeResponse{Error: &e})
		return
	}

	data := newOutcome(c, outcome)
	c.JSON(http.StatusCreated, OutcomeResponse{Data: &data})
}

// @Summary		Get outcomes
// @Description	Returns a list of outcomes
// @Tags			Outcomes
// @Produce		json
// @Success		200	{object}	OutcomeListResponse
// @Failure		400	{object}	OutcomeListResponse
// @Router			/v1/outcomes [get]
// @Param			user				query	uint64	true	"ID of the user"
// @Param			jar					query	uint64	false	"ID of the debited jar"
// @Param			date				query	string	false	"Date of the outcome. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
// @Param			fromDate			query	string	false	"Outcomes at and after this date"
// @Param			untilDate			query	string	false	"Outcomes before and at this date"
// @Param			search				query	string	false	"Search in category and description"
// @Param			amountMoreOrEqual	query	string	false	"Amount more than or equal to this"
// @Param			amountLessOrEqual	query	string	false	"Amount less than or equal to this"
// @Param			offset				query	uint	false	"The offset of the first Outcome returned. Defaults to 0."
// @Param			limit				query	int		false	"Maximum number of Outcomes to return. Defaults to 50."
func GetOutcomes(c *gin.Context) {
	var filter OutcomeQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, OutcomeListResponse{Error: &e})
		return
	}

	if filter.UserID == 0 {
		e := errUserIDParameter.Error()
		c.JSON(http.StatusBadRequest, OutcomeListResponse{Error: &e})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("datetime(outcomes.date) DESC, datetime(outcomes.created_at) DESC").
		Where(&models.Outcome{UserID: filter.UserID})

	if filter.JarID != 0 {
		q = q.Where("outcomes.jar_id = ?", filter.JarID)
	}

	q = dateFilters(q, "outcomes", filter.Date, filter.FromDate, filter.UntilDate)

	if filter.Search != "" {
		search := fmt.Sprintf("%%%s%%", filter.Search)
		q = q.Where(models.DB.Where("outcomes.category LIKE ?", search).Or("outcomes.description LIKE ?", search))
	}

	if !filter.AmountMoreOrEqual.IsZero() {
		q = q.Where("outcomes.amount >= ?", filter.AmountMoreOrEqual)
	}

	if !filter.AmountLessOrEqual.IsZero() {
		q = q.Where("outcomes.amount <= ?", filter.AmountLessOrEqual)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 outcomes and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var outcomes []models.Outcome
	if err := q.Find(&outcomes).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), OutcomeListResponse{Error: &e})
		return
	}

	var count int64
	if err := q.Limit(-1).Offset(-1).Count(&count).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), OutcomeListResponse{Error: &e})
		return
	}

	data := make([]Outcome, 0, len(outcomes))
	for _, outcome := range outcomes {
		data = append(data, newOutcome(c, outcome))
	}

	c.JSON(http.StatusOK, OutcomeListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get outcome
// @Description	Returns a specific outcome
// @Tags			Outcomes
// @Produce		json
// @Success		200	{object}	OutcomeResponse
// @Failure		400	{object}	OutcomeResponse
// @Failure		404	{object}	OutcomeResponse
// @Param			id	path		URIID	true	"ID of the outcome"
// @Router			/v1/outcomes/{id} [get]
func GetOutcome(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), OutcomeResponse{Error: &e})
		return
	}

	var outcome models.Outcome
	if err := models.DB.First(&outcome, uri.ID).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), OutcomeResponse{Error: &e})
		return
	}

	data := newOutcome(c, outcome)
	c.JSON(http.StatusOK, OutcomeResponse{Data: &data})
}

// @Summary		Update outcome
// @Description	Updates an existing outcome. The old jar is refunded and the new jar debited; if the new debit fails, nothing changes.
// @Tags			Outcomes
// @Accept			json
// @Produce		json
// @Success		200		{object}	OutcomeResponse
// @Failure		400		{object}	OutcomeResponse
// @Failure		404		{object}	OutcomeResponse
// @Param			id		path		URIID			true	"ID of the outcome"
// @Param			outcome	body		OutcomeEditable	true	"Outcome"
// @Router			/v1/outcomes/{id} [patch]
func UpdateOutcome(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), OutcomeResponse{Error: &e})
		return
	}

	var outcome models.Outcome
	if err := models.DB.First(&outcome, uri.ID).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), OutcomeResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, OutcomeEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OutcomeResponse{Error: &e})
		return
	}

	var update OutcomeEditable
	if err := httputil.BindData(c, &update); err != nil {
		e := err.Error()
		c.JSON(status(err), OutcomeResponse{Error: &e})
		return
	}

	if update.Amount.IsNegative() {
		e := errAmountNegative.Error()
		c.JSON(http.StatusBadRequest, OutcomeResponse{Error: &e})
		return
	}

	// Fields not present in the body keep their current values
	target := outcome
	if slices.Contains(updateFields, "Date") {
		target.Date = update.Date
	}
	if slices.Contains(updateFields, "Category") {
		target.Category = update.Category
	}
	if slices.Contains(updateFields, "Description") {
		target.Description = update.Description
	}
	if slices.Contains(updateFields, "Amount") {
		target.Amount = update.Amount.Round(0).IntPart()
	}
	if slices.Contains(updateFields, "JarID") {
		target.JarID = update.JarID
	}

	if err := models.UpdateOutcome(&outcome, target); err != nil {
		e := err.Error()
		c.JSON(status(err), OutcomeResponse{Error: &e})
		return
	}

	data := newOutcome(c, target)
	c.JSON(http.StatusOK, OutcomeResponse{Data: &data})
}

// @Summary		Delete outcome
// @Description	Deletes an outcome, refunding the debited jar
// @Tags			Outcomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the outcome"
// @Router			/v1/outcomes/{id} [delete]
func DeleteOutcome(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var outcome models.Outcome
	if err := models.DB.First(&outcome, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DeleteOutcome(&outcome); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
