package models_test

import (
	"github.com/six-jars/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestClosedDBIsHandled() {
	user := suite.createTestUser(models.User{Name: "Closed"})

	suite.CloseDB()

	_, err := models.JarsForUser(user.ID)
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestNotFoundErrorNamesResource() {
	var user models.User
	err := models.DB.First(&user, 4096).Error

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Contains(suite.T(), err.Error(), "user")
}
