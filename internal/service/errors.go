package service

import "errors"

var (
	// ErrInvalidClientID is returned when a client ID is empty.
	ErrInvalidClientID = errors.New("invalid client id")

	// ErrInvalidBikeID is returned when a bike ID is empty.
	ErrInvalidBikeID = errors.New("invalid bike id")

	// ErrInvalidRentalID is returned when a rental ID is empty.
	ErrInvalidRentalID = errors.New("invalid rental id")

	// ErrInvalidDuration is returned when a rental duration is outside 1-72 hours.
	ErrInvalidDuration = errors.New("duration must be between 1 and 72 hours")

	// ErrInvalidDiscount is returned when a discount is outside 0-50 percent.
	ErrInvalidDiscount = errors.New("discount must be between 0 and 50 percent")

	// ErrInvalidPaymentMethod is returned when the payment method is unknown.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrBikeNotAvailable is returned when renting a bike that is not available.
	ErrBikeNotAvailable = errors.New("bike is not available")

	// ErrBikeRented is returned when editing or deleting a bike that is on rent.
	ErrBikeRented = errors.New("bike is currently rented")

	// ErrRentalNotActive is returned when operating on a rental that is not active.
	ErrRentalNotActive = errors.New("rental is not active")

	// ErrRentalBusy is returned when another operation holds the rental lock.
	ErrRentalBusy = errors.New("rental is being updated, try again")

	// ErrZeroPrice is returned when the computed rental price is not positive.
	ErrZeroPrice = errors.New("rental price must be positive")

	// ErrDuplicateSerial is returned when a bike serial number is already registered.
	ErrDuplicateSerial = errors.New("serial number already registered")

	// ErrInvalidName is returned when a client name fails validation.
	ErrInvalidName = errors.New("name must contain at least two words of letters, spaces or hyphens")

	// ErrInvalidPhone is returned when a client phone fails validation.
	ErrInvalidPhone = errors.New("invalid phone format")

	// ErrInvalidEmail is returned when a client email fails validation.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidDocument is returned when a client document fails validation.
	ErrInvalidDocument = errors.New("document must be non-empty letters, digits, spaces or hyphens")

	// ErrInvalidModel is returned when a bike model is empty.
	ErrInvalidModel = errors.New("model must not be empty")

	// ErrInvalidSerial is returned when a bike serial number is empty.
	ErrInvalidSerial = errors.New("serial number must not be empty")

	// ErrInvalidPrice is returned when a bike hourly price is not positive.
	ErrInvalidPrice = errors.New("price per hour must be positive")

	// ErrInvalidBikeType is returned when the bike type is unknown.
	ErrInvalidBikeType = errors.New("invalid bike type")

	// ErrInvalidBikeStatus is returned when the bike status is unknown.
	ErrInvalidBikeStatus = errors.New("invalid bike status")

	// ErrUnknownReportKind is returned for an unrecognized report kind.
	ErrUnknownReportKind = errors.New("unknown report kind")

	// ErrUnknownReportFormat is returned for an unrecognized report format.
	ErrUnknownReportFormat = errors.New("unknown report format")

	// ErrInvalidDateRange is returned when a report range end precedes its start.
	ErrInvalidDateRange = errors.New("end date precedes start date")
)
