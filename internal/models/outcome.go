package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Outcome represents money going out, debited from exactly one jar.
//
// The jar reference is optional: an outcome without a jar touches no balance.
type Outcome struct {
	Model
	UserID      uint64    `json:"userId"`
	User        User      `json:"-"`
	JarID       *uint64   `json:"jarId"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category" example:"Food"`
	Description string    `json:"description,omitempty"`
	Amount      int64     `json:"amount" example:"250000"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (o *Outcome) AfterFind(tx *gorm.DB) (err error) {
	err = o.Model.AfterFind(tx)
	if err != nil {
		return err
	}

	o.Date = o.Date.In(time.UTC)
	return nil
}

// BeforeSave sets the timezone for the Date to UTC and trims string fields.
func (o *Outcome) BeforeSave(_ *gorm.DB) (err error) {
	o.Category = strings.TrimSpace(o.Category)
	o.Description = strings.TrimSpace(o.Description)

	if o.Date.IsZero() {
		o.Date = time.Now().In(time.UTC)
	} else {
		o.Date = o.Date.In(time.UTC)
	}

	return nil
}

// CreateOutcome persists the outcome, debiting the referenced jar first.
//
// The jar is locked for the duration of the transaction and must belong to
// the outcome's user and hold at least the outcome's amount. Insufficient
// balance is a hard failure, the amount is never clamped to what is there.
func CreateOutcome(outcome *Outcome) error {
	if outcome.Amount < 0 {
		return ErrAmountNegative
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		if err := userExists(tx, outcome.UserID); err != nil {
			return err
		}

		if outcome.JarID != nil {
			if err := debitJar(tx, *outcome.JarID, outcome.UserID, outcome.Amount); err != nil {
				return err
			}
		}

		return tx.Create(outcome).Error
	})
}

// UpdateOutcome applies new values to an outcome, moving the debit between
// jars as needed.
//
// The old jar is refunded by the old amount, then the new jar is locked,
// checked and debited by the new amount. If the new debit fails the whole
// transaction rolls back, including the refund.
func UpdateOutcome(outcome *Outcome, update Outcome) error {
	if update.Amount < 0 {
		return ErrAmountNegative
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		if outcome.JarID != nil {
			if err := refundJar(tx, *outcome.JarID, outcome.Amount); err != nil {
				return err
			}
		}

		if update.JarID != nil {
			if err := debitJar(tx, *update.JarID, outcome.UserID, update.Amount); err != nil {
				return err
			}
		}

		// A map update also writes a nil jar_id, a struct update would not
		return tx.Model(outcome).
			Updates(map[string]interface{}{
				"date":        update.Date,
				"category":    update.Category,
				"description": update.Description,
				"amount":      update.Amount,
				"jar_id":      update.JarID,
			}).Error
	})
}

// DeleteOutcome refunds the referenced jar and deletes the record.
func DeleteOutcome(outcome *Outcome) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if outcome.JarID != nil {
			if err := refundJar(tx, *outcome.JarID, outcome.Amount); err != nil {
				return err
			}
		}

		return tx.Delete(outcome).Error
	})
}

// debitJar locks the jar, verifies ownership and sufficiency and subtracts
// the amount.
func debitJar(tx *gorm.DB, jarID, userID uint64, amount int64) error {
	jar, err := jarForUpdate(tx, jarID, userID)
	if err != nil {
		return err
	}

	if jar.Balance.LessThan(decimalFromUnits(amount)) {
		return fmt.Errorf("%w in jar %s", ErrJarInsufficientBalance, jar.Name)
	}

	return tx.Model(&Jar{}).Where("id = ?", jar.ID).
		Update("balance", gorm.Expr("balance - ?", amount)).Error
}

// refundJar locks the jar and adds the amount back. No ownership check is
// needed: the jar reference comes from the stored outcome itself.
func refundJar(tx *gorm.DB, jarID uint64, amount int64) error {
	var jar Jar
	if err := lockForUpdate(tx).First(&jar, jarID).Error; err != nil {
		return err
	}

	return tx.Model(&Jar{}).Where("id = ?", jar.ID).
		Update("balance", gorm.Expr("balance + ?", amount)).Error
}
