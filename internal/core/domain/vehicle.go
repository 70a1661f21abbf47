package domain

import (
	"errors"
	"time"
)

// VehicleStatus is the commercial state of a listing.
type VehicleStatus string

const (
	StatusAvailable VehicleStatus = "available"
	StatusReserved  VehicleStatus = "reserved"
	StatusSold      VehicleStatus = "sold"
)

// Valid reports whether s is a known commercial status.
func (s VehicleStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusSold:
		return true
	}
	return false
}

// ApprovalStatus is the moderation state of a listing. It is fully
// independent of VehicleStatus: a vehicle can be available and pending
// at the same time.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Valid reports whether s is a known approval status.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// CanRequestApproval reports whether a new approval request is allowed from
// the current moderation state. An already-approved listing cannot be
// re-requested; only a direct admin edit moves it out of approved.
func (s ApprovalStatus) CanRequestApproval() bool {
	switch s {
	case ApprovalPending, ApprovalRejected:
		return true
	}
	return false
}

var ErrVehicleNotFound = errors.New("vehicle not found")
var ErrInvalidTransition = errors.New("invalid approval transition")
var ErrForbidden = errors.New("access forbidden")

// Vehicle is the core aggregate root of a dealership listing.
type Vehicle struct {
	ID                  string         `json:"id"`
	Brand               string         `json:"brand"`
	Model               string         `json:"model"`
	Year                int            `json:"year"`
	Price               float64        `json:"price"`
	Mileage             int            `json:"mileage"`
	Color               string         `json:"color"`
	FuelType            string         `json:"fuel_type"`
	Transmission        string         `json:"transmission"`
	Description         string         `json:"description,omitempty"`
	Status              VehicleStatus  `json:"status"`
	ApprovalStatus      ApprovalStatus `json:"approval_status"`
	CreatedBy           string         `json:"created_by"`
	ApprovalRequestedAt time.Time      `json:"approval_requested_at,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// OwnedBy reports whether the given actor created this listing.
func (v *Vehicle) OwnedBy(userID string) bool {
	return userID != "" && v.CreatedBy == userID
}
