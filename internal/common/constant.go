// Package common contains constants shared by the patient client and the
// sandbox server: wire paths, header names and fixed field values.
package common

// REST paths of the patient portal API.
const (
	PathLogin          = "/api/login"
	PathForgotPassword = "/api/forgot-password"
	PathPatientMe      = "/api/patients/me"
	PathMedicalRecord  = "/api/patients/medical-record"
)

// Headers.
const (
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "
	RequestIDHeaderName     = "X-Request-ID"
	JSONContentType         = "application/json; charset=utf-8"
)

// UserTypeStudent is the role discriminator the client sends on login and
// password reset.
const UserTypeStudent = "student"

// NonePlaceholder replaces absent medical-record values.
const NonePlaceholder = "none"
