package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

const (
	EmploymentInHouse    = "inhouse"
	EmploymentFreelancer = "freelancer"
)

// User models an authenticated actor in the system.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           string    `json:"role"`
	EmploymentType string    `json:"employment_type"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}

// ValidEmploymentType reports whether t belongs to the closed employment set.
func ValidEmploymentType(t string) bool {
	return t == EmploymentInHouse || t == EmploymentFreelancer
}
