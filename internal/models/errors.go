package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// ErrAmountNegative is returned before any mutation when a negative
	// amount reaches a balance operation.
	ErrAmountNegative = errors.New("the amount must not be negative")

	// ErrJarInsufficientBalance is wrapped with the names of all jars that
	// would go negative.
	ErrJarInsufficientBalance = errors.New("insufficient balance")

	ErrJarNameNotUnique = errors.New("the jar name is already in use for this user")
)
