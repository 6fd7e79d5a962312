package domain

import "time"

// Program is the top level of the work hierarchy: a program owns projects and
// grants access to a set of accounts.
type Program struct {
	ID          int64
	Title       string
	Description string
	Status      string
	Assignments []ProgramAssignment
	Projects    []Project
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProgramAssignment grants an account access to a program.
type ProgramAssignment struct {
	ID        int64
	ProgramID int64
	AccountID int64
	Account   *Account
	CreatedAt time.Time
	UpdatedAt time.Time
}
