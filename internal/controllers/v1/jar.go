package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/six-jars/backend/internal/httputil"
	"github.com/six-jars/backend/internal/models"
)

// percentageSumEpsilon is the maximum tolerated deviation of the percentage
// sum from 100 in a bulk update.
var percentageSumEpsilon = decimal.NewFromFloat(0.001)

// RegisterJarRoutes registers the routes for jars with
// the RouterGroup that is passed.
func RegisterJarRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsJars)
		r.GET("", GetJars)
		r.PATCH("", UpdateJarPercentages)
		r.DELETE("", DeleteAllJarData)
	}

	r.POST("/reset", ResetJars)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Jars
// @Success		204
// @Router			/v1/jars [options]
func OptionsJars(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get jars
// @Description	Returns the jars of a user, ordered by ID
// @Tags			Jars
// @Produce		json
// @Success		200		{object}	JarListResponse
// @Failure		400		{object}	JarListResponse
// @Failure		404		{object}	JarListResponse
// @Param			user	query		uint64	true	"ID of the user"
// @Router			/v1/jars [get]
func GetJars(c *gin.Context) {
	userID, err := userIDQuery(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), JarListResponse{Error: &e})
		return
	}

	jars, err := models.JarsForUser(userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), JarListResponse{Error: &e})
		return
	}

	data := make([]Jar, 0, len(jars))
	for _, jar := range jars {
		data = append(data, newJar(c, jar))
	}

	response := JarListResponse{Data: data}

	// Soft invariant: report it, do not block the read
	if sum := models.PercentageSum(jars); len(jars) > 0 && !sum.Equal(decimal.NewFromInt(100)) {
		w := "the jar percentages sum to " + sum.String() + " instead of 100"
		response.PercentageWarning = &w
	}

	c.JSON(http.StatusOK, response)
}

// @Summary		Update jar percentages
// @Description	Bulk-updates the percentages of the user's jars and redistributes all balances
// @Tags			Jars
// @Accept			json
// @Produce		json
// @Success		200		{object}	JarListResponse
// @Failure		400		{object}	JarListResponse
// @Failure		404		{object}	JarListResponse
// @Failure		422		{object}	JarListResponse
// @Param			update	body		JarPercentageUpdate	true	"Percentages keyed by jar ID"
// @Router			/v1/jars [patch]
func UpdateJarPercentages(c *gin.Context) {
	var update JarPercentageUpdate
	if err := httputil.BindData(c, &update); err != nil {
		e := err.Error()
		c.JSON(status(err), JarListResponse{Error: &e})
		return
	}

	percentages := make(map[uint64]decimal.Decimal, len(update.Percentages))
	sum := decimal.Zero
	for key, percentage := range update.Percentages {
		jarID, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			e := errJarIDInvalid.Error()
			c.JSON(http.StatusBadRequest, JarListResponse{Error: &e})
			return
		}

		if percentage.IsNegative() || percentage.GreaterThan(decimal.NewFromInt(100)) {
			e := errPercentageRange.Error()
			c.JSON(http.StatusUnprocessableEntity, JarListResponse{Error: &e})
			return
		}

		percentages[jarID] = percentage
		sum = sum.Add(percentage)
	}

	// The percentages must sum to 100 before anything is persisted
	if sum.Sub(decimal.NewFromInt(100)).Abs().GreaterThan(percentageSumEpsilon) {
		e := errPercentageSum.Error()
		c.JSON(http.StatusUnprocessableEntity, JarListResponse{Error: &e})
		return
	}

	if err := models.UpdateJarPercentages(update.UserID, percentages); err != nil {
		e := err.Error()
		c.JSON(status(err), JarListResponse{Error: &e})
		return
	}

	jarsResponse(c, update.UserID)
}

// @Summary		Reset jars
// @Description	Resets the jar percentages to the defaults and redistributes all balances
// @Tags			Jars
// @Accept			json
// @Produce		json
// @Success		200		{object}	JarListResponse
// @Failure		400		{object}	JarListResponse
// @Failure		404		{object}	JarListResponse
// @Param			request	body		JarUserRequest	true	"User whose jars to reset"
// @Router			/v1/jars/reset [post]
func ResetJars(c *gin.Context) {
	var request JarUserRequest
	if err := httputil.BindData(c, &request); err != nil {
		e := err.Error()
		c.JSON(status(err), JarListResponse{Error: &e})
		return
	}

	if err := models.ResetJars(request.UserID); err != nil {
		e := err.Error()
		c.JSON(status(err), JarListResponse{Error: &e})
		return
	}

	jarsResponse(c, request.UserID)
}

// @Summary		Delete all jar data
// @Description	Permanently deletes all incomes and outcomes of the user and resets the jars to defaults with zero balances
// @Tags			Jars
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Param			user	query		uint64	true	"ID of the user"
// @Param			confirm	query		string	false	"Confirmation to delete all data. Must have the value 'yes-please-delete-everything'"
// @Router			/v1/jars [delete]
func DeleteAllJarData(c *gin.Context) {
	var params struct {
		UserID  uint64 `form:"user"`
		Confirm string `form:"confirm"`
	}

	err := c.Bind(&params)
	if err != nil || params.Confirm != "yes-please-delete-everything" {
		c.JSON(http.StatusBadRequest, httpError{Error: errDeleteAllConfirmation.Error()})
		return
	}

	if params.UserID == 0 {
		c.JSON(http.StatusBadRequest, httpError{Error: errUserIDParameter.Error()})
		return
	}

	if err := models.DeleteAllJarData(params.UserID); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// jarsResponse writes the user's jars as a list response.
func jarsResponse(c *gin.Context, userID uint64) {
	jars, err := models.JarsForUser(userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), JarListResponse{Error: &e})
		return
	}

	data := make([]Jar, 0, len(jars))
	for _, jar := range jars {
		data = append(data, newJar(c, jar))
	}

	c.JSON(http.StatusOK, JarListResponse{Data: data})
}

// userIDQuery parses the mandatory user query parameter.
func userIDQuery(c *gin.Context) (uint64, error) {
	param := c.Query("user")
	if param == "" {
		return 0, errUserIDParameter
	}

	userID, err := strconv.ParseUint(param, 10, 64)
	if err != nil || userID == 0 {
		return 0, errUserIDParameter
	}

	return userID, nil
}
