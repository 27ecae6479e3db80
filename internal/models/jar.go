package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/six-jars/backend/internal/allocation"
	"gorm.io/gorm"
)

// Jar is a named budget envelope holding a percentage share and a running
// balance for one user.
//
// Jars are provisioned once per user and are never deleted individually. The
// balance must never become negative, every debit verifies sufficiency first.
type Jar struct {
	Model
	UserID     uint64          `json:"userId" gorm:"uniqueIndex:jar_user_name"`
	User       User            `json:"-"`
	Name       string          `json:"name" gorm:"uniqueIndex:jar_user_name" example:"NEC"`
	Percentage decimal.Decimal `json:"percentage" gorm:"type:DECIMAL(5,2)" example:"55"`
	Balance    decimal.Decimal `json:"balance" gorm:"type:DECIMAL(20,2)" example:"1034.25"`
}

var hundredPercent = decimal.NewFromInt(100)

// decimalFromUnits converts whole currency units to a decimal amount.
func decimalFromUnits(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount)
}

// JarNames maps the jar codes to their long names in the six jars method.
var JarNames = map[string]string{
	"NEC":  "Necessities",
	"FFA":  "Financial Freedom Account",
	"EDU":  "Education",
	"LTSS": "Long Term Saving for Spending",
	"PLAY": "Play",
	"GIVE": "Give",
}

// JarDefault is one entry of the default percentage table.
type JarDefault struct {
	Name       string
	Percentage decimal.Decimal
}

// DefaultJars returns the default percentage table in creation order.
func DefaultJars() []JarDefault {
	return []JarDefault{
		{Name: "NEC", Percentage: decimal.NewFromInt(55)},
		{Name: "FFA", Percentage: decimal.NewFromInt(10)},
		{Name: "EDU", Percentage: decimal.NewFromInt(10)},
		{Name: "LTSS", Percentage: decimal.NewFromInt(10)},
		{Name: "PLAY", Percentage: decimal.NewFromInt(10)},
		{Name: "GIVE", Percentage: decimal.NewFromInt(5)},
	}
}

// createDefaultJars provisions one jar per default name with a zero balance.
func createDefaultJars(tx *gorm.DB, userID uint64) error {
	for _, def := range DefaultJars() {
		jar := Jar{
			UserID:     userID,
			Name:       def.Name,
			Percentage: def.Percentage,
			Balance:    decimal.Zero,
		}
		if err := tx.Create(&jar).Error; err != nil {
			return err
		}
	}

	return nil
}

// JarsForUser returns all jars of the user, ordered by ID so that results are
// deterministic for allocation and for API consumers.
func JarsForUser(userID uint64) ([]Jar, error) {
	return jarsForUser(DB, userID)
}

func jarsForUser(tx *gorm.DB, userID uint64) ([]Jar, error) {
	var jars []Jar
	err := tx.Where(&Jar{UserID: userID}).Order("id ASC").Find(&jars).Error
	return jars, err
}

// jarsForUserLocked loads the user's jars with exclusive row locks for the
// duration of the surrounding transaction.
func jarsForUserLocked(tx *gorm.DB, userID uint64) ([]Jar, error) {
	return jarsForUser(lockForUpdate(tx), userID)
}

// jarForUpdate locks and returns a single jar, verifying that it belongs to
// the user. Ownership mismatch returns the same error as absence.
func jarForUpdate(tx *gorm.DB, jarID, userID uint64) (Jar, error) {
	var jar Jar
	err := lockForUpdate(tx).Where(&Jar{UserID: userID}).First(&jar, jarID).Error
	return jar, err
}

// weights converts jars to the allocation engine's input.
func weights(jars []Jar) []allocation.Weight {
	w := make([]allocation.Weight, 0, len(jars))
	for _, jar := range jars {
		w = append(w, allocation.Weight{ID: jar.ID, Percentage: jar.Percentage})
	}

	return w
}

// PercentageSum returns the sum of the jars' percentages.
//
// A sum differing from 100 is a soft invariant violation: reads surface it as
// a warning, only the bulk percentage update enforces it.
func PercentageSum(jars []Jar) decimal.Decimal {
	sum := decimal.Zero
	for _, jar := range jars {
		sum = sum.Add(jar.Percentage)
	}

	return sum
}

// redistributeBalances replaces every jar balance with its share of the total
// balance according to the current percentages.
//
// The jars passed in must have been read fresh, with locks, inside the same
// transaction that changed the percentages. Redistributing against a stale
// total would create or destroy money.
func redistributeBalances(tx *gorm.DB, jars []Jar) error {
	if len(jars) == 0 {
		return nil
	}

	total := decimal.Zero
	for _, jar := range jars {
		total = total.Add(jar.Balance)
	}

	targets := allocation.Redistribute(total, weights(jars))
	for _, jar := range jars {
		err := tx.Model(&Jar{}).Where("id = ?", jar.ID).Update("balance", targets[jar.ID]).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// UpdateJarPercentages sets new percentages for the user's jars and
// redistributes all balances accordingly.
//
// Every key of percentages must reference a jar of this user. The caller is
// responsible for verifying that the percentages sum to 100; this function
// only rounds them to two decimal places and persists them.
func UpdateJarPercentages(userID uint64, percentages map[uint64]decimal.Decimal) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		jars, err := jarsForUserLocked(tx, userID)
		if err != nil {
			return err
		}

		byID := make(map[uint64]*Jar, len(jars))
		for i := range jars {
			byID[jars[i].ID] = &jars[i]
		}

		for jarID, percentage := range percentages {
			jar, ok := byID[jarID]
			if !ok {
				return fmt.Errorf("%w jar with ID %d for this user", ErrResourceNotFound, jarID)
			}

			jar.Percentage = percentage.Round(2)
			err := tx.Model(&Jar{}).Where("id = ?", jar.ID).Update("percentage", jar.Percentage).Error
			if err != nil {
				return err
			}
		}

		return redistributeBalances(tx, jars)
	})
}

// ResetJars sets the user's jar percentages back to the default table and
// redistributes the balances.
func ResetJars(userID uint64) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := userExists(tx, userID); err != nil {
			return err
		}

		if err := resetPercentages(tx, userID, false); err != nil {
			return err
		}

		jars, err := jarsForUserLocked(tx, userID)
		if err != nil {
			return err
		}

		return redistributeBalances(tx, jars)
	})
}

// DeleteAllJarData deletes all income and outcome records of the user and
// resets the jars to the default percentages with a zero balance.
//
// Balances are forced to zero directly, there is nothing left to
// redistribute once all transactions are gone.
func DeleteAllJarData(userID uint64) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := userExists(tx, userID); err != nil {
			return err
		}

		err := tx.Where("income_id IN (?)", tx.Model(&Income{}).Select("id").Where(&Income{UserID: userID})).Delete(&IncomeJarSplit{}).Error
		if err != nil {
			return err
		}

		if err := tx.Where(&Income{UserID: userID}).Delete(&Income{}).Error; err != nil {
			return err
		}

		if err := tx.Where(&Outcome{UserID: userID}).Delete(&Outcome{}).Error; err != nil {
			return err
		}

		return resetPercentages(tx, userID, true)
	})
}

// resetPercentages writes the default percentage table for the user, creating
// jars that are missing. With zeroBalances set, balances are reset as well.
func resetPercentages(tx *gorm.DB, userID uint64, zeroBalances bool) error {
	for _, def := range DefaultJars() {
		var jar Jar
		err := lockForUpdate(tx).Where(&Jar{UserID: userID, Name: def.Name}).First(&jar).Error
		if err != nil {
			if errors.Is(err, ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
				jar = Jar{UserID: userID, Name: def.Name, Percentage: def.Percentage, Balance: decimal.Zero}
				if err := tx.Create(&jar).Error; err != nil {
					return err
				}
				continue
			}
			return err
		}

		update := map[string]interface{}{"percentage": def.Percentage}
		if zeroBalances {
			update["balance"] = decimal.Zero
		}

		if err := tx.Model(&Jar{}).Where("id = ?", jar.ID).Updates(update).Error; err != nil {
			return err
		}
	}

	return nil
}
