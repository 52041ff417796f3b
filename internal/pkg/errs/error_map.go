/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
// Every entry carries an explicit HTTP status so that clients relying on plain REST
// status codes (400/401/404/5xx) see the same statuses the original server returned.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Message Board Errors
	ErrMessageContentTooLong: {Code: ErrMessageContentTooLong, Message: "Message is too long.", Status: http.StatusBadRequest},

	// 3xxx: User, Session, and Security Errors
	ErrMissingFields:          {Code: ErrMissingFields, Message: "All fields required.", Status: http.StatusBadRequest},
	ErrPasswordTooShort:       {Code: ErrPasswordTooShort, Message: "Password must be 6+ characters.", Status: http.StatusBadRequest},
	ErrEmailAlreadyRegistered: {Code: ErrEmailAlreadyRegistered, Message: "Email already registered.", Status: http.StatusBadRequest},
	ErrInvalidCredentials:     {Code: ErrInvalidCredentials, Message: "Invalid email or password.", Status: http.StatusUnauthorized},
	ErrUnauthorized:           {Code: ErrUnauthorized, Message: "Unauthorized.", Status: http.StatusUnauthorized},
	ErrSessionNotFound:        {Code: ErrSessionNotFound, Message: "Session not found.", Status: http.StatusNotFound},

	// 5xxx: Internal System Errors
	ErrUnknown:        {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrStorageFailure: {Code: ErrStorageFailure, Message: "Storage is temporarily unavailable. Please try again.", Status: http.StatusInternalServerError},
}
