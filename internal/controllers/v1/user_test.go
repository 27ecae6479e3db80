package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/six-jars/backend/internal/controllers/v1"
	"github.com/six-jars/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestUsersOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "/v1/users", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestUsersDetailOptions() {
	tests := []struct {
		name   string // Name for the test
		status int    // Expected HTTP status
		id     string // String to use as ID
	}{
		{"Does not exist", http.StatusNotFound, "4096"},
		{"Invalid ID", http.StatusBadRequest, "NotAnInteger"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, fmt.Sprintf("/v1/users/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}

	user := createTestUser(suite.T(), v1.UserEditable{Name: "Options"})
	r := test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("/v1/users/%d", user.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateUser() {
	response := createTestUser(suite.T(), v1.UserEditable{Name: "Mai"})

	assert.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), "Mai", response.Data.Name)
	assert.NotZero(suite.T(), response.Data.ID)
	assert.Contains(suite.T(), response.Data.Links.Jars, fmt.Sprintf("/v1/jars?user=%d", response.Data.ID))

	// Creating a user provisions the six default jars
	jars := getTestJars(suite.T(), response.Data.ID)
	assert.Len(suite.T(), jars, 6)
	assert.Equal(suite.T(), "Necessities", jars["NEC"].FullName)
}

func (suite *TestSuiteStandard) TestCreateUserInvalidBody() {
	tests := []struct {
		name string // Name for the test
		body string // The request body
	}{
		{"Empty body", ""},
		{"Broken JSON", `{ "name": "`},
		{"Missing name", `{}`},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "/v1/users", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestGetUsers() {
	_ = createTestUser(suite.T(), v1.UserEditable{Name: "First"})
	_ = createTestUser(suite.T(), v1.UserEditable{Name: "Second"})

	r := test.Request(suite.T(), http.MethodGet, "/v1/users", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.UserListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), "First", response.Data[0].Name)
	assert.Equal(suite.T(), "Second", response.Data[1].Name)
}

func (suite *TestSuiteStandard) TestGetUser() {
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Solo"})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/users/%d", user.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Solo", response.Data.Name)
}

func (suite *TestSuiteStandard) TestGetUserNotFound() {
	r := test.Request(suite.T(), http.MethodGet, "/v1/users/4096", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUsersDatabaseError() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "/v1/users", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
