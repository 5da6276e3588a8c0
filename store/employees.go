package store

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Private-Fox7/Empathy-Pulse/models"
)

// Employees returns every employee record. Fails open: on any fetch or
// parse error it logs a warning and returns an empty slice, so an empty
// result is not proof the collection is empty.
func (s *DataStore) Employees() []models.Employee {
	var employees []models.Employee
	if err := s.listInto(employeesFile, &employees); err != nil {
		log.Printf("⚠️ Error getting employees: %v", err)
		return nil
	}
	return employees
}

// GetEmployee returns the first employee with the given id, or
// ErrRecordNotFound.
func (s *DataStore) GetEmployee(empID string) (*models.Employee, error) {
	var employees []models.Employee
	if err := s.listInto(employeesFile, &employees); err != nil {
		return nil, err
	}

	for i := range employees {
		if employees[i].EmpID == empID {
			return &employees[i], nil
		}
	}
	return nil, ErrRecordNotFound
}

// AddEmployee appends a new employee record. A missing emp_id is backfilled
// with a generated one and the creation timestamp is always stamped here.
func (s *DataStore) AddEmployee(employee models.Employee) error {
	if employee.EmpID == "" {
		employee.EmpID = uuid.NewString()
	}
	employee.CreatedAt = time.Now().UTC()

	record, err := toRecord(employee)
	if err != nil {
		return err
	}
	return s.appendRecord(employeesFile, record, "Add employee "+employee.Name)
}

// UpdateEmployee merges fields into the employee with the given id.
func (s *DataStore) UpdateEmployee(empID string, fields map[string]any) error {
	return s.updateRecord(employeesFile, "emp_id", empID, fields, "Update employee "+empID)
}

// DeleteEmployee removes an employee and all their feedback. The two writes
// are not transactional: when the feedback write fails after the employee
// write succeeded, the employee is gone but their feedback remains, and the
// overall operation reports failure.
func (s *DataStore) DeleteEmployee(empID string) error {
	employees, err := s.listRaw(employeesFile)
	if err != nil {
		return err
	}
	kept := employees[:0]
	for _, record := range employees {
		if stringValue(record["emp_id"]) != empID {
			kept = append(kept, record)
		}
	}
	if err := s.save(employeesFile, kept, "Delete employee "+empID); err != nil {
		return err
	}

	feedback, err := s.listRaw(feedbackFile)
	if err != nil {
		return err
	}
	keptFeedback := feedback[:0]
	for _, record := range feedback {
		if stringValue(record["emp_id"]) != empID {
			keptFeedback = append(keptFeedback, record)
		}
	}
	return s.save(feedbackFile, keptFeedback, "Delete feedback for employee "+empID)
}
