package models

import (
	"gorm.io/gorm"
)

// IncomeJarSplit records how much of one income went into one jar.
//
// The rows for an income always sum to its amount, which is what makes exact
// reversal on deletion possible. Jars with a zero share get no row.
type IncomeJarSplit struct {
	Model
	IncomeID uint64 `json:"incomeId" gorm:"uniqueIndex:income_jar"`
	Income   Income `json:"-"`
	JarID    uint64 `json:"jarId" gorm:"uniqueIndex:income_jar"`
	Jar      Jar    `json:"-"`
	Amount   int64  `json:"amount" example:"550007"`
}

// SplitsFor returns all splits recorded for an income, ordered by jar ID.
func SplitsFor(incomeID uint64) ([]IncomeJarSplit, error) {
	return splitsFor(DB, incomeID)
}

func splitsFor(tx *gorm.DB, incomeID uint64) ([]IncomeJarSplit, error) {
	var splits []IncomeJarSplit
	err := tx.Preload("Jar").Where(&IncomeJarSplit{IncomeID: incomeID}).Order("jar_id ASC").Find(&splits).Error
	return splits, err
}

// deleteSplitsFor removes all splits of an income. Only called after the
// reversal of the jar balances has succeeded.
func deleteSplitsFor(tx *gorm.DB, incomeID uint64) error {
	return tx.Where(&IncomeJarSplit{IncomeID: incomeID}).Delete(&IncomeJarSplit{}).Error
}
