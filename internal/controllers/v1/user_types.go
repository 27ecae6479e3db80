package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/six-jars/backend/internal/httputil"
	"github.com/six-jars/backend/internal/models"
)

type UserEditable struct {
	Name string `json:"name" example:"Mai" binding:"required"` // Name of the user
}

func (editable UserEditable) model() models.User {
	return models.User{
		Name: editable.Name,
	}
}

type UserLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/users/3"`     // The user itself
	Jars string `json:"jars" example:"https://example.com/api/v1/jars?user=3"` // The user's jars
}

// User is the representation of a User in API v1.
type User struct {
	models.Model
	UserEditable
	Links UserLinks `json:"links"`
}

// newUser returns the API v1 representation of the resource.
func newUser(c *gin.Context, model models.User) User {
	url := httputil.RequestHost(c)

	return User{
		Model: model.Model,
		UserEditable: UserEditable{
			Name: model.Name,
		},
		Links: UserLinks{
			Self: fmt.Sprintf("%s/v1/users/%d", url, model.ID),
			Jars: fmt.Sprintf("%s/v1/jars?user=%d", url, model.ID),
		},
	}
}

type UserResponse struct {
	Error *string `json:"error"` // The error, if any occurred
	Data  *User   `json:"data"`  // The User data, if the request was successful
}

type UserListResponse struct {
	Error *string `json:"error"` // The error, if any occurred
	Data  []User  `json:"data"`  // List of users
}
