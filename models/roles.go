package models

// Role markers used across the platform. Applicant is swapped for Provider
// by the approval workflow; Admin may bypass the cancellation notice window.
const (
	RoleApplicant = "Applicant"
	RoleProvider  = "Provider"
	RoleClient    = "Client"
	RoleAdmin     = "Admin"
)
