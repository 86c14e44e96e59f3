package models

type UserRole string
type UserStatus string
type ApprovalStatus string
type BookingStatus string

const (
	UserRoleStudent UserRole = "student"
	UserRoleCoach   UserRole = "coach"
	UserRoleAdmin   UserRole = "admin"

	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"

	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ValidRole reports whether the role is one of the closed set.
func ValidRole(role UserRole) bool {
	switch role {
	case UserRoleStudent, UserRoleCoach, UserRoleAdmin:
		return true
	}
	return false
}
