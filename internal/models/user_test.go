package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/six-jars/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCreateUserProvisionsJars() {
	user := suite.createTestUser(models.User{Name: "Testerine"})
	assert.NotZero(suite.T(), user.ID)

	jars, err := models.JarsForUser(user.ID)
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), jars, 6)

	for i, def := range models.DefaultJars() {
		assert.Equal(suite.T(), def.Name, jars[i].Name)
		assert.True(suite.T(), jars[i].Percentage.Equal(def.Percentage), "Percentage for %s is %s, not %s", def.Name, jars[i].Percentage, def.Percentage)
		assert.True(suite.T(), jars[i].Balance.IsZero(), "Balance for %s is %s, not zero", def.Name, jars[i].Balance)
	}
}

func (suite *TestSuiteStandard) TestCreateUserJarOrder() {
	// The jars of a later user must still come back in creation order
	_ = suite.createTestUser(models.User{Name: "First"})
	user := suite.createTestUser(models.User{Name: "Second"})

	jars, err := models.JarsForUser(user.ID)
	assert.Nil(suite.T(), err)

	names := make([]string, 0, len(jars))
	for _, jar := range jars {
		names = append(names, jar.Name)
	}
	assert.Equal(suite.T(), []string{"NEC", "FFA", "EDU", "LTSS", "PLAY", "GIVE"}, names)
}

func (suite *TestSuiteStandard) TestCreateUserPercentagesSumTo100() {
	user := suite.createTestUser(models.User{Name: "Sum"})

	jars, err := models.JarsForUser(user.ID)
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), models.PercentageSum(jars).Equal(decimal.NewFromInt(100)))
}
