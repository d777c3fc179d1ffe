package domain

import "time"

// Certificate is issued once per (user, course) when the learner passes the
// course quiz.
type Certificate struct {
	CertificateID  string    `json:"certificateID"`
	UserID         string    `json:"userID"`
	UserName       string    `json:"userName"`
	CourseID       string    `json:"courseID"`
	CourseTitle    string    `json:"courseTitle"`
	CompletionDate time.Time `json:"completionDate"`
	IssuedDate     time.Time `json:"issuedDate"`
}
