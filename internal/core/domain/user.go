package domain

import "time"

// UserRole determines which API surface a user may reach.
type UserRole string

const (
	RoleLearner    UserRole = "learner"
	RoleInstructor UserRole = "instructor"
	RoleAdmin      UserRole = "admin"
)

// User represents a platform user. BankAccountNumber is a pointer into the
// ledger's bank_accounts set; nil until the user completes bank setup.
type User struct {
	UserID            string   `json:"userID"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	PasswordHash      string   `json:"-"`
	Role              UserRole `json:"role"`
	BankAccountNumber *string  `json:"bankAccountNumber,omitempty"`
	AuditFields
}

// Enrollment records a learner's membership in a course.
type Enrollment struct {
	UserID      string     `json:"userID"`
	CourseID    string     `json:"courseID"`
	EnrolledAt  time.Time  `json:"enrolledAt"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
