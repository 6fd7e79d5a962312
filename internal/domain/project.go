package domain

import "time"

// Project belongs to a program and carries tasks and employee assignments.
type Project struct {
	ID          int64
	Title       string
	Description string
	Image       string
	StartDate   time.Time
	EndDate     time.Time
	Status      string
	ProgramID   int64
	Program     *Program
	Employees   []ProjectAssignment
	Tasks       []Task
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectAssignment links an account to a project as an employee.
type ProjectAssignment struct {
	ID        int64
	ProjectID int64
	AccountID int64
	Account   *Account
	CreatedAt time.Time
}
