package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/six-jars/backend/internal/httputil"
	"github.com/six-jars/backend/internal/models"
)

// RegisterUserRoutes registers the routes for users with
// the RouterGroup that is passed.
func RegisterUserRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsUsers)
		r.GET("", GetUsers)
		r.POST("", CreateUser)
	}

	{
		r.OPTIONS("/:id", OptionsUserDetail)
		r.GET("/:id", GetUser)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/users [options]
func OptionsUsers(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ID of the user"
// @Router			/v1/users/{id} [options]
func OptionsUserDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var user models.User
	if err := models.DB.First(&user, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Create user
// @Description	Creates a new user and provisions the default jars for it
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		201		{object}	UserResponse
// @Failure		400		{object}	UserResponse
// @Failure		500		{object}	UserResponse
// @Param			user	body		UserEditable	true	"User"
// @Router			/v1/users [post]
func CreateUser(c *gin.Context) {
	var editable UserEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	user := editable.model()
	if err := models.CreateUser(&user); err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	data := newUser(c, user)
	c.JSON(http.StatusCreated, UserResponse{Data: &data})
}

// @Summary		Get users
// @Description	Returns a list of users
// @Tags			Users
// @Produce		json
// @Success		200	{object}	UserListResponse
// @Failure		500	{object}	UserListResponse
// @Router			/v1/users [get]
func GetUsers(c *gin.Context) {
	var users []models.User
	if err := models.DB.Order("id ASC").Find(&users).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), UserListResponse{Error: &e})
		return
	}

	data := make([]User, 0, len(users))
	for _, user := range users {
		data = append(data, newUser(c, user))
	}

	c.JSON(http.StatusOK, UserListResponse{Data: data})
}

// @Summary		Get user
// @Description	Returns a specific user
// @Tags			Users
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		400	{object}	UserResponse
// @Failure		404	{object}	UserResponse
// @Param			id	path		URIID	true	"ID of the user"
// @Router			/v1/users/{id} [get]
func GetUser(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	var user models.User
	if err := models.DB.First(&user, uri.ID).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	data := newUser(c, user)
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}
