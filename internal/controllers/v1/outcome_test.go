package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	v1 "github.com/six-jars/backend/internal/controllers/v1"
	"github.com/six-jars/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOutcomesOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "/v1/outcomes", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestOutcomesDetailOptions() {
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
			r := test.Request(t, http.MethodOptions, fmt.Sprintf("/v1/outcomes/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}

	user := createTestUser(suite.T(), v1.UserEditable{Name: "Options"})
	outcome := createTestOutcome(suite.T(), v1.OutcomeEditable{UserID: user.Data.ID, Category: "Cash", Amount: decimal.NewFromInt(10)})

	r := test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("/v1/outcomes/%d", outcome.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateOutcome() {
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Outcome"})
	_ = createTestIncome(suite.T(), v1.IncomeEditable{UserID: user.Data.ID, Source: "Salary", Amount: decimal.NewFromInt(1000)})

	nec := getTestJars(suite.T(), user.Data.ID)["NEC"]
	outcome := createTestOutcome(suite.T(), v1.OutcomeEditable{UserID: user.Data.ID, JarID: &nec.ID, Category: "Food", Amount: decimal.NewFromInt(100)})

	assert.Equal(suite.T(), "NEC", outcome.Data.JarName)
	assert.True(suite.T(), outcome.Data.Amount.Equal(decimal.NewFromInt(100)))

	jars := getTestJars(suite.T(), user.Data.ID)
	assert.True(suite.T(), jars["NEC"].Balance.Equal(decimal.NewFromInt(450)), "NEC balance is %s", jars["NEC"].Balance)
}

func (suite *TestSuiteStandard) TestCreateOutcomeWithoutJar() {
	user := createTestUser(suite.T(), v1.UserEditable{Name: "NoJar"})
	outcome := createTestOutcome(suite.T(), v1.OutcomeEditable{UserID: user.Data.ID, Category: "Cash", Amount: decimal.NewFromInt(10)})

	assert.Nil(suite.T(), outcome.Data.JarID)
	assert.Equal(suite.T(), "", outcome.Data.JarName)
}

func (suite *TestSuiteStandard) TestCreateOutcomeInsufficientBalance() {
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Broke"})
	_ = createTestIncome(suite.T(), v1.IncomeEditable{UserID: user.Data.ID, Source: "Salary", Amount: decimal.NewFromInt(1000)})

	give := getTestJars(suite.T(), user.Data.ID)["GIVE"]
	response := createTestOutcome(suite.T(), v1.OutcomeEditable{UserID: user.Data.ID, JarID: &give.ID, Category: "Charity", Amount: decimal.NewFromInt(100)}, http.StatusBadRequest)

	assert.NotNil(suite.T(), response.Error)
	assert.Contains(suite.T(), *response.Error, "GIVE")

	jars := getTestJars(suite.T(), user.Data.ID)
	assert.True(suite.T(), jars["GIVE"].Balance.Equal(decimal.NewFromInt(50)), "GIVE balance is %s", jars["GIVE"].Balance)
}

func (suite *TestSuiteStandard) TestCreateOutcomeNegativeAmount() {
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Negative"})

	_ = createTestOutcome(suite.T(), v1.OutcomeEditable{UserID: user.Data.ID, Category: "Food", Amount: decimal.NewFromInt(-1)}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCreateOutcomeForeignJar() {
	owner := createTestUser(suite.T(), v1.UserEditable{Name: "Owner"})
	other := createTestUser(suite.T(), v1.UserEditable{Name: "Other"})
	_ = createTestIncome(suite.T(), v1.IncomeEditable{UserID: other.Data.ID, Source: "Salary", Amount: decimal.NewFromInt(1000)})

	foreign := getTestJars(suite.T(), other.Data.ID)["NEC"]
	_ = createTestOutcome(suite.T(), v1.OutcomeEditable{UserID: owner.Data.ID, JarID: &foreign.ID, Category: "Food", Amount: decimal.NewFromInt(10)}, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetOutcomesRequiresUser() {
	r := test.Request(suite.T(), http.MethodGet, "/v1/outcomes", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetOutcomesJarFilter() {
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Filter"})
	_ = createTestIncome(suite.T(), v1.IncomeEditable{UserID: user.Data.ID, Source: "Salary", Amount: decimal.NewFromInt(1000)})

	jars := getTestJars(suite.T(), user.Data.ID)
	nec := jars["NEC"]
	ffa := jars["FFA"]

	_ = createTestOutcome(suite.T(), v1.OutcomeEditable{UserID: user.Data.ID, JarID: &nec.ID, Category: "Food", Amount: decimal.NewFromInt(100)})
	_ = createTestOutcome(suite.T(), v1.OutcomeEditable{UserID: user.Data.ID, JarID: &ffa.ID, Category: "Stocks", Amount: decimal.NewFromInt(50)})
	_ = createTestOutcome(suite.T(), v1.OutcomeEditable{UserID: user.Data.ID, Category: "Cash", Amount: decimal.NewFromInt(10)})

	tests := []struct {
		name  string // Name for the test
		query string // Query string to use
		count int    // Expected number of outcomes
	}{
		{"All for user", "", 3},
		{"By jar", fmt.Sprintf("&jar=%d", nec.ID), 1},
		{"Search category", "&search=stocks", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/outcomes?user=%d%s", user.Data.ID, tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.OutcomeListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestGetOutcome() {
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Single"})
	outcome := createTestOutcome(suite.T(), v1.OutcomeEditable{UserID: user.Data.ID, Category: "Cash", Amount: decimal.NewFromInt(10)})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/outcomes/%d", outcome.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.OutcomeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Cash", response.Data.Category)
}

func (suite *TestSuiteStandard) TestUpdateOutcomeMovesDebit() {
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Move"})
	_ = createTestIncome(suite.T(), v1.IncomeEditable{UserID: user.Data.ID, Source: "Salary", Amount: decimal.NewFromInt(1000)})

	jars := getTestJars(suite.T(), user.Data.ID)
	nec := jars["NEC"]
	ffa := jars["FFA"]

	outcome := createTestOutcome(suite.T(), v1.OutcomeEditable{UserID: user.Data.ID, JarID: &nec.ID, Category: "Food", Amount: decimal.NewFromInt(50)})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/outcomes/%d", outcome.Data.ID), map[string]any{
		"jarId": ffa.ID,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	jars = getTestJars(suite.T(), user.Data.ID)
	assert.True(suite.T(), jars["NEC"].Balance.Equal(decimal.NewFromInt(550)), "NEC balance is %s", jars["NEC"].Balance)
	assert.True(suite.T(), jars["FFA"].Balance.Equal(decimal.NewFromInt(50)), "FFA balance is %s", jars["FFA"].Balance)
}

func (suite *TestSuiteStandard) TestUpdateOutcomeInsufficientBalance() {
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Atomic"})
	_ = createTestIncome(suite.T(), v1.IncomeEditable{UserID: user.Data.ID, Source: "Salary", Amount: decimal.NewFromInt(1000)})

	jars := getTestJars(suite.T(), user.Data.ID)
	nec := jars["NEC"]
	ffa := jars["FFA"]

	outcome := createTestOutcome(suite.T(), v1.OutcomeEditable{UserID: user.Data.ID, JarID: &nec.ID, Category: "Food", Amount: decimal.NewFromInt(30)})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/outcomes/%d", outcome.Data.ID), map[string]any{
		"jarId":  ffa.ID,
		"amount": 200,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	// The refund of the old jar must have been rolled back
	jars = getTestJars(suite.T(), user.Data.ID)
	assert.True(suite.T(), jars["NEC"].Balance.Equal(decimal.NewFromInt(520)), "NEC balance is %s", jars["NEC"].Balance)
	assert.True(suite.T(), jars["FFA"].Balance.Equal(decimal.NewFromInt(100)), "FFA balance is %s", jars["FFA"].Balance)

	var response v1.OutcomeResponse
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/outcomes/%d", outcome.Data.ID), "")
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromInt(30)), "Amount is %s", response.Data.Amount)
	assert.Equal(suite.T(), nec.ID, *response.Data.JarID)
}

func (suite *TestSuiteStandard) TestUpdateOutcomeClearsJar() {
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Clear"})
	_ = createTestIncome(suite.T(), v1.IncomeEditable{UserID: user.Data.ID, Source: "Salary", Amount: decimal.NewFromInt(1000)})

	nec := getTestJars(suite.T(), user.Data.ID)["NEC"]
	outcome := createTestOutcome(suite.T(), v1.OutcomeEditable{UserID: user.Data.ID, JarID: &nec.ID, Category: "Food", Amount: decimal.NewFromInt(100)})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/outcomes/%d", outcome.Data.ID), map[string]any{
		"jarId": nil,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.OutcomeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Nil(suite.T(), response.Data.JarID)

	jars := getTestJars(suite.T(), user.Data.ID)
	assert.True(suite.T(), jars["NEC"].Balance.Equal(decimal.NewFromInt(550)), "NEC balance is %s", jars["NEC"].Balance)
}

func (suite *TestSuiteStandard) TestDeleteOutcome() {
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Delete"})
	_ = createTestIncome(suite.T(), v1.IncomeEditable{UserID: user.Data.ID, Source: "Salary", Amount: decimal.NewFromInt(1000)})

	nec := getTestJars(suite.T(), user.Data.ID)["NEC"]
	outcome := createTestOutcome(suite.T(), v1.OutcomeEditable{UserID: user.Data.ID, JarID: &nec.ID, Category: "Food", Amount: decimal.NewFromInt(100)})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/outcomes/%d", outcome.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	jars := getTestJars(suite.T(), user.Data.ID)
	assert.True(suite.T(), jars["NEC"].Balance.Equal(decimal.NewFromInt(550)), "NEC balance is %s", jars["NEC"].Balance)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/outcomes/%d", outcome.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDeleteOutcomeNotFound() {
	r := test.Request(suite.T(), http.MethodDelete, "/v1/outcomes/4096", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
