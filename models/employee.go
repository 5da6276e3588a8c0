package models

import "time"

// Departments is the fixed set of departments offered at signup.
var Departments = []string{
	"Engineering",
	"Marketing",
	"Sales",
	"Finance",
	"Human Resources",
	"Customer Support",
	"Operations",
	"Research & Development",
}

// Employee represents an employee account stored in data/employees.json.
type Employee struct {
	EmpID        string    `json:"emp_id"`
	Name         string    `json:"name"`
	Department   string    `json:"dept"`
	PasswordHash string    `json:"password"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsValidDepartment checks a department against the fixed list.
func IsValidDepartment(dept string) bool {
	for _, d := range Departments {
		if d == dept {
			return true
		}
	}
	return false
}
