package errs

import "errors"

var InvalidCredentials = errors.New("invalid credentials")

var (
	InternalError         = errors.New("internal error")
	GeneratingToken       = errors.New("error generating token")
	EmailRequired         = errors.New("email is required")
	EmailDomainNotAllowed = errors.New("email domain is not allowed")
	FailedToCreateProfile = errors.New("failed to create profile")
	MessageNotFound       = errors.New("message not found")
	ProfileNotFound       = errors.New("profile not found")
)
