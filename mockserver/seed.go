package mockserver

import (
	"github.com/jrsteele09/go-hrms-client/endpoints"
)

// seed fills the store with a small demo organisation. Employee 1 has clocked
// in today; the others are offline.
func (s *Server) seed() {
	ep := endpoints.Registry()

	emps := s.Collection(ep.Employees.List)
	for _, e := range []Item{
		{"badge_id": "PEP001", "employee_first_name": "Ada", "employee_last_name": "Lovelace", "email": "ada@example.com", "department_name": "Engineering", "job_position_name": "Engineer", "is_active": true},
		{"badge_id": "PEP002", "employee_first_name": "Grace", "employee_last_name": "Hopper", "email": "grace@example.com", "department_name": "Engineering", "job_position_name": "Lead", "is_active": true},
		{"badge_id": "PEP003", "employee_first_name": "Alan", "employee_last_name": "Turing", "email": "alan@example.com", "department_name": "Research", "job_position_name": "Analyst", "is_active": true},
	} {
		emps.Insert(e)
	}

	today := s.today()
	s.Collection(ep.Attendance.List).Insert(Item{
		"employee_id":              1,
		"employee_name":            "Ada Lovelace",
		"attendance_date":          today,
		"attendance_clock_in_date": today,
		"attendance_clock_in":      "09:00",
		"minimum_hour":             "08:00",
	})
	s.Collection(ep.Attendance.LateComeEarlyOut.List).Insert(Item{
		"employee_id":   1,
		"employee_name": "Ada Lovelace",
		"attendance_id": 1,
		"type":          "late_come",
	})
	s.Collection(ep.ShiftRequests.List).Insert(Item{
		"employee_id":    2,
		"shift_id":       1,
		"requested_date": today,
		"description":    "Night shift cover",
		"approved":       false,
	})
	s.Collection(ep.WorkTypeRequests.List).Insert(Item{
		"employee_id":    3,
		"work_type_id":   2,
		"requested_date": today,
		"description":    "Remote week",
		"approved":       false,
	})
}
