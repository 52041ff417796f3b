/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Message Board Errors
const (
	// ErrMessageContentTooLong indicates that the message text exceeded the maximum length limit.
	ErrMessageContentTooLong = 2001
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrMissingFields indicates that one or more required registration fields are absent or empty.
	ErrMissingFields = 3001

	// ErrPasswordTooShort indicates that the supplied password is shorter than the minimum length.
	ErrPasswordTooShort = 3002

	// ErrEmailAlreadyRegistered indicates that the email is already bound to an existing account.
	ErrEmailAlreadyRegistered = 3003

	// ErrInvalidCredentials indicates that the email/password pair did not match any account.
	// Unknown email and wrong password deliberately share this code so that account
	// existence cannot be probed through the login endpoint.
	ErrInvalidCredentials = 3004

	// ErrUnauthorized indicates a missing, malformed, expired, or revoked session token.
	ErrUnauthorized = 3005

	// ErrSessionNotFound indicates that the session disappeared between verification and lookup.
	ErrSessionNotFound = 3006
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrStorageFailure indicates that the durable record store could not be read or written.
	ErrStorageFailure = 5001
)
