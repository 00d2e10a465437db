package mockserver

import (
	"net/http"
	"strconv"

	"github.com/jrsteele09/go-hrms-client/endpoints"
	"github.com/jrsteele09/go-hrms-client/token/jwt"
)

// Mail is an offline-employee notification received by the mail-send endpoint.
type Mail struct {
	EmployeeID  int
	Subject     string
	Body        string
	Attachments []string
}

func (s *Server) today() string {
	return jwt.NowTimeFunc().Format("2006-01-02")
}

func (s *Server) todaysAttendance() []Item {
	return s.Collection(endpoints.Registry().Attendance.List).Query(map[string]string{"attendance_date": s.today()})
}

// offlineEmployees are active employees without an attendance record today.
func (s *Server) offlineEmployees() []Item {
	present := make(map[int]bool)
	for _, a := range s.todaysAttendance() {
		if id, ok := a.Int("employee_id"); ok {
			present[id] = true
		}
	}

	offline := make([]Item, 0)
	for _, e := range s.Collection(endpoints.Registry().Employees.List).Query(nil) {
		id, _ := e.Int("id")
		if present[id] || e["is_active"] == false {
			continue
		}
		offline = append(offline, Item{
			"id":                  id,
			"employee_first_name": e["employee_first_name"],
			"employee_last_name":  e["employee_last_name"],
			"email":               e["email"],
			"leave_status":        "Expected working",
		})
	}
	return offline
}

func (s *Server) TodayAttendanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writePage(w, r, s.todaysAttendance())
	}
}

func (s *Server) OfflineCountHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"count": len(s.offlineEmployees())})
	}
}

func (s *Server) OfflineListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writePage(w, r, s.offlineEmployees())
	}
}

func (s *Server) PermissionCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := s.users.Get(userFromContext(r.Context()))
		if err != nil || u.Restricted {
			writeDetail(w, http.StatusForbidden, "You do not have permission to perform this action.")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"permission": true})
	}
}

// MailSendHandler accepts only multipart bodies, like the real endpoint.
func (s *Server) MailSendHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			writeDetail(w, http.StatusBadRequest, "Expected multipart form data")
			return
		}
		employeeID, err := strconv.Atoi(r.FormValue("employee_id"))
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "employee_id is required")
			return
		}

		mail := Mail{
			EmployeeID: employeeID,
			Subject:    r.FormValue("subject"),
			Body:       r.FormValue("body"),
		}
		for _, f := range r.MultipartForm.File["other_attachments"] {
			mail.Attachments = append(mail.Attachments, f.Filename)
		}

		s.mailsLock.Lock()
		s.mails = append(s.mails, mail)
		s.mailsLock.Unlock()

		writeJSON(w, http.StatusOK, map[string]string{"message": "Mail sent"})
	}
}
