package models

import (
	"gorm.io/gorm"
)

// User represents a person budgeting with the six jars method.
//
// Authentication is out of scope for this backend, users are referenced by
// explicit IDs in every call.
type User struct {
	Model
	Name string `json:"name"`
}

// CreateUser creates the user and provisions one jar per configured default
// name in the same transaction.
func CreateUser(user *User) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		return createDefaultJars(tx, user.ID)
	})
}

// userExists verifies that the referenced user exists. The returned error is
// the same as for any missing resource so that nothing is leaked about which
// part of the reference was wrong.
func userExists(tx *gorm.DB, userID uint64) error {
	var user User
	return tx.First(&user, userID).Error
}
