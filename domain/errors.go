package domain

import "errors"

// Registration / OTP flow errors
var (
	ErrAlreadyRegistered = errors.New("this phone has already been registered")
	ErrNotRegistered     = errors.New("this phone has not been registered")
	ErrOtpNotFound       = errors.New("otp request not found")
	ErrOtpRequestLimit   = errors.New("otp was requested 3 times today")
	ErrOtpLocked         = errors.New("otp error limit reached for today")
	ErrOtpFlowLocked     = errors.New("this request had unavailable input")
	ErrOtpExpired        = errors.New("otp is expired")
	ErrInvalidOtp        = errors.New("otp is incorrect")
	ErrInvalidToken      = errors.New("invalid token")
)

// Authentication errors
var (
	ErrInvalidPassword    = errors.New("password is wrong")
	ErrAccountFrozen      = errors.New("account is temporarily frozen")
	ErrUnauthenticated    = errors.New("you are not an authenticated user")
	ErrAccessTokenExpired = errors.New("access token has expired")
	ErrTokenTampered      = errors.New("access token is invalid")
)

// Authorization / resource errors
var (
	ErrForbidden     = errors.New("this action is not allowed")
	ErrUserNotFound  = errors.New("user not found")
	ErrModelNotFound = errors.New("that data model does not exist")
	ErrFileMissing   = errors.New("file not found")
	ErrMaintenance   = errors.New("server is under maintenance")
)
