// Package services defines the mock API's application logic. This file
// centralizes service-level error values so that they can be returned by
// service methods and mapped to HTTP statuses by the handler layer.
package services

import "errors"

var (
	// ErrMissingDate is returned when no appointment date was supplied.
	ErrMissingDate = errors.New("missing appointmentDatetime")

	// ErrInvalidDate is returned when the appointment date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date format, should be YYYY-MM-DD")

	// ErrMissingPatientID is returned when a patient lookup has no id.
	ErrMissingPatientID = errors.New("missing id parameter")

	// ErrPatientNotFound indicates that no patient matches the identifier.
	ErrPatientNotFound = errors.New("patient does not exist")

	// ErrMissingCredentials is returned when a login lacks username or password.
	ErrMissingCredentials = errors.New("missing username or password")

	// ErrInvalidCredentials is returned when a login does not match.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
