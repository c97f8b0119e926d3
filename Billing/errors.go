package Billing

import "errors"

// Validation errors are reported before anything is written; handlers map them
// to 400 responses.
var (
	ErrMissingDates          = errors.New("start and end dates are required")
	ErrEndBeforeStart        = errors.New("end date must not be before start date")
	ErrOdometerOrder         = errors.New("end odometer must be greater than or equal to start odometer")
	ErrNegativeDistance      = errors.New("distance must not be negative")
	ErrUnknownDistanceMethod = errors.New("distance method must be odometer or manual")
	ErrNoBillableVehicles    = errors.New("no billable vehicles resolved for this trip")

	ErrTransferNotPending   = errors.New("transfer requirement is already completed")
	ErrTransferDateRequired = errors.New("transfer date is required")
	ErrCashierRequired      = errors.New("cashier name is required for cash transfers")

	ErrUnknownBillStatus = errors.New("unknown bill status")
	ErrStatusRegression  = errors.New("bill status cannot move backwards")
)
