package core

import "errors"

// Custom errors shared by the core services.
var (
	ErrFlatNotFound    = errors.New("flat not found")
	ErrOwnerNotFound   = errors.New("owner not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrDuplicateFlatNumber    = errors.New("flat number already exists")
	ErrDuplicateVehicleNumber = errors.New("vehicle number already registered")

	// ErrPartialTransfer signals that one or more writes of a multi-step
	// ownership operation succeeded while a later step failed. Earlier steps
	// are not rolled back; the store is left in the intermediate state and
	// requires reconciliation-driven correction.
	ErrPartialTransfer = errors.New("ownership update partially applied")

	// ErrInvalidTransferRequest signals that a transfer request names
	// neither (or both of) an existing owner and a new-owner payload.
	ErrInvalidTransferRequest = errors.New("transfer requires exactly one of existingOwnerId or newOwner")

	ErrInvalidReportType = errors.New("invalid report type")
	ErrInvalidFlatStatus = errors.New("invalid flat status")
)
