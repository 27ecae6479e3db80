package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/six-jars/backend/internal/allocation"
	"gorm.io/gorm"
)

// Income represents money coming in, split across the user's jars at
// creation time.
//
// Amounts are whole currency units: the API rounds to integers before the
// income is persisted, which keeps the splits free of fractions.
type Income struct {
	Model
	UserID      uint64    `json:"userId"`
	User        User      `json:"-"`
	Date        time.Time `json:"date"`
	Source      string    `json:"source" example:"Salary"`
	Description string    `json:"description,omitempty"`
	Amount      int64     `json:"amount" example:"1000007"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (i *Income) AfterFind(tx *gorm.DB) (err error) {
	err = i.Model.AfterFind(tx)
	if err != nil {
		return err
	}

	i.Date = i.Date.In(time.UTC)
	return nil
}

// BeforeSave sets the timezone for the Date to UTC and trims string fields.
func (i *Income) BeforeSave(_ *gorm.DB) (err error) {
	i.Source = strings.TrimSpace(i.Source)
	i.Description = strings.TrimSpace(i.Description)

	if i.Date.IsZero() {
		i.Date = time.Now().In(time.UTC)
	} else {
		i.Date = i.Date.In(time.UTC)
	}

	return nil
}

// CreateIncome persists the income and distributes its amount across the
// user's jars, recording one split per jar with a non-zero share.
//
// A user without jars simply gets the income persisted with nothing
// distributed. Everything happens in one transaction: either the income, all
// splits and all balance increments exist afterwards, or none of them do.
func CreateIncome(income *Income) error {
	if income.Amount < 0 {
		return ErrAmountNegative
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		if err := userExists(tx, income.UserID); err != nil {
			return err
		}

		if err := tx.Create(income).Error; err != nil {
			return err
		}

		jars, err := jarsForUserLocked(tx, income.UserID)
		if err != nil {
			return err
		}

		if len(jars) == 0 {
			return nil
		}

		if sum := PercentageSum(jars); !sum.Equal(hundredPercent) {
			log.Warn().
				Uint64("user", income.UserID).
				Str("sum", sum.String()).
				Msg("jar percentages do not sum to 100, allocation proceeds anyway")
		}

		shares := allocation.Split(income.Amount, weights(jars))
		for _, jar := range jars {
			add := shares[jar.ID]
			if add <= 0 {
				continue
			}

			err := tx.Model(&Jar{}).Where("id = ?", jar.ID).
				Update("balance", gorm.Expr("balance + ?", add)).Error
			if err != nil {
				return err
			}

			split := IncomeJarSplit{IncomeID: income.ID, JarID: jar.ID, Amount: add}
			if err := tx.Create(&split).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteIncome reverses the income's splits and deletes the record.
//
// The reversal is two-phase: first every affected jar is checked for
// sufficient balance, aggregating all violations into one error, and only if
// the whole set is viable are any balances decremented. An income without
// splits is deleted directly.
func DeleteIncome(income *Income) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		splits, err := splitsFor(tx, income.ID)
		if err != nil {
			return err
		}

		if len(splits) == 0 {
			return tx.Delete(income).Error
		}

		jars, err := jarsForUserLocked(tx, income.UserID)
		if err != nil {
			return err
		}

		byID := make(map[uint64]Jar, len(jars))
		for _, jar := range jars {
			byID[jar.ID] = jar
		}

		// Pre-flight viability check across all splits before any mutation
		var violations []string
		for _, split := range splits {
			jar, ok := byID[split.JarID]
			if !ok {
				violations = append(violations, fmt.Sprintf("jar with ID %d not found", split.JarID))
				continue
			}

			if jar.Balance.LessThan(decimalFromUnits(split.Amount)) {
				violations = append(violations, fmt.Sprintf("jar %s has insufficient balance to reverse the allocation", jar.Name))
			}
		}

		if len(violations) > 0 {
			return fmt.Errorf("%w: %s", ErrJarInsufficientBalance, strings.Join(violations, ", "))
		}

		for _, split := range splits {
			err := tx.Model(&Jar{}).Where("id = ?", split.JarID).
				Update("balance", gorm.Expr("balance - ?", split.Amount)).Error
			if err != nil {
				return err
			}
		}

		if err := deleteSplitsFor(tx, income.ID); err != nil {
			return err
		}

		return tx.Delete(income).Error
	})
}
