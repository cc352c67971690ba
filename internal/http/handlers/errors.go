// Package handlers defines the envelope messages and error descriptions used
// across all API endpoints.
//
// Conventions:
//   - message is chosen by HTTP status (MessageFor) so clients can branch on
//     either the status code or the text.
//   - description explains the specific failure; it is empty on success and
//     carries the captured error text on 500.

package handlers

import (
	"errors"
	"net/http"
)

const (
	MsgSuccess          = "Success"
	MsgBadRequest       = "Bad request"
	MsgUnauthorized     = "Unauthorized"
	MsgNotFound         = "Not Found"
	MsgMethodNotAllowed = "Method Not Allowed"
	MsgTooManyRequests  = "Too Many Requests"
	MsgInternal         = "Internal server error"
)

// Failure descriptions.
const (
	DescMissingDate        = "Missing appointmentDatetime"
	DescInvalidDate        = "Invalid date format, should be YYYY-MM-DD"
	DescMissingPatientID   = "Missing id parameter"
	DescPatientNotFound    = "Patient does not exist"
	DescMissingCredentials = "Missing username or password"
	DescRouteNotFound      = "route not found"
	DescMethodNotAllowed   = "method not allowed"
)

// MessageFor returns the envelope message for an HTTP status.
func MessageFor(status int) string {
	switch status {
	case http.StatusOK:
		return MsgSuccess
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusUnauthorized:
		return MsgUnauthorized
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusMethodNotAllowed:
		return MsgMethodNotAllowed
	case http.StatusTooManyRequests:
		return MsgTooManyRequests
	case http.StatusInternalServerError:
		return MsgInternal
	default:
		return http.StatusText(status)
	}
}

// errBodyNotObject is reported when the login body decodes to JSON null.
var errBodyNotObject = errors.New("request body must be a JSON object")
