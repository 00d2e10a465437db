package attendance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/go-hrms-client/apiclient"
	"github.com/jrsteele09/go-hrms-client/endpoints"
	"github.com/jrsteele09/go-hrms-client/internal/errors"
	"github.com/jrsteele09/go-hrms-client/resource"
)

type Attendance struct {
	ID            int    `json:"id,omitempty"`
	EmployeeID    int    `json:"employee_id"`
	EmployeeName  string `json:"employee_name,omitempty"`
	Date          string `json:"attendance_date"`
	ClockInDate   string `json:"attendance_clock_in_date,omitempty"`
	ClockIn       string `json:"attendance_clock_in,omitempty"`
	ClockOutDate  string `json:"attendance_clock_out_date,omitempty"`
	ClockOut      string `json:"attendance_clock_out,omitempty"`
	WorkedHours   string `json:"attendance_worked_hour,omitempty"`
	MinimumHours  string `json:"minimum_hour,omitempty"`
	OvertimeHours string `json:"attendance_overtime,omitempty"`
	Validated     bool   `json:"attendance_validated,omitempty"`
	ShiftID       *int   `json:"shift_id,omitempty"`
	WorkTypeID    *int   `json:"work_type_id,omitempty"`
}

// Request is an employee's request to create or correct an attendance record.
type Request struct {
	ID                int    `json:"id,omitempty"`
	EmployeeID        int    `json:"employee_id"`
	Date              string `json:"attendance_date"`
	ClockIn           string `json:"attendance_clock_in,omitempty"`
	ClockOut          string `json:"attendance_clock_out,omitempty"`
	WorkedHours       string `json:"attendance_worked_hour,omitempty"`
	Description       string `json:"request_description,omitempty"`
	IsValidateRequest bool   `json:"is_validate_request,omitempty"`
	RequestType       string `json:"request_type,omitempty"`
}

// HourAccount is the monthly worked/pending/overtime summary for one employee.
type HourAccount struct {
	ID           int    `json:"id,omitempty"`
	EmployeeID   int    `json:"employee_id"`
	Month        string `json:"month"`
	Year         string `json:"year"`
	WorkedHours  string `json:"worked_hours,omitempty"`
	PendingHours string `json:"pending_hours,omitempty"`
	Overtime     string `json:"overtime,omitempty"`
}

type Activity struct {
	ID             int    `json:"id,omitempty"`
	EmployeeID     int    `json:"employee_id"`
	AttendanceDate string `json:"attendance_date"`
	ClockInDate    string `json:"clock_in_date,omitempty"`
	ClockIn        string `json:"clock_in,omitempty"`
	ClockOutDate   string `json:"clock_out_date,omitempty"`
	ClockOut       string `json:"clock_out,omitempty"`
}

// LateComeEarlyOut records a late arrival ("late_come") or early leave ("early_out").
type LateComeEarlyOut struct {
	ID           int    `json:"id,omitempty"`
	EmployeeID   int    `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	AttendanceID int    `json:"attendance_id,omitempty"`
	Type         string `json:"type"`
}

type OfflineEmployee struct {
	ID        int    `json:"id"`
	FirstName string `json:"employee_first_name"`
	LastName  string `json:"employee_last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Status    string `json:"leave_status,omitempty"`
}

type countResponse struct {
	Count int `json:"count"`
}

type permissionResponse struct {
	Permission bool `json:"permission"`
}

// Mail is a notification to an offline employee, optionally with attachments.
type Mail struct {
	EmployeeID  int
	Subject     string
	Body        string
	Attachments []Attachment
}

type Attachment struct {
	Filename string
	Content  io.Reader
}

type Service struct {
	client       apiclient.Requester
	ep           endpoints.AttendanceEndpoints
	Requests     *resource.Resource[Request]
	HourAccounts *resource.Resource[HourAccount]
}

func NewService(client apiclient.Requester) *Service {
	ep := endpoints.Registry().Attendance
	return &Service{
		client:       client,
		ep:           ep,
		Requests:     resource.New[Request](client, ep.Requests),
		HourAccounts: resource.New[HourAccount](client, ep.HourAccount),
	}
}

func (s *Service) List(ctx context.Context, query url.Values) (*apiclient.Page[Attendance], error) {
	return listPage[Attendance](ctx, s.client, endpoints.WithQuery(s.ep.List.String(), query))
}

// Today lists the attendance records of the current day.
func (s *Service) Today(ctx context.Context) (*apiclient.Page[Attendance], error) {
	return listPage[Attendance](ctx, s.client, s.ep.Today.String())
}

// OfflineCount is the number of employees not clocked in today.
func (s *Service) OfflineCount(ctx context.Context) (int, error) {
	var out countResponse
	if err := s.client.Get(ctx, s.ep.OfflineEmployeeCount.String(), &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (s *Service) OfflineEmployees(ctx context.Context) (*apiclient.Page[OfflineEmployee], error) {
	return listPage[OfflineEmployee](ctx, s.client, s.ep.OfflineEmployeeList.String())
}

func (s *Service) Activities(ctx context.Context, query url.Values) (*apiclient.Page[Activity], error) {
	return listPage[Activity](ctx, s.client, endpoints.WithQuery(s.ep.Activity.String(), query))
}

func (s *Service) LateComeEarlyOuts(ctx context.Context, query url.Values) (*apiclient.Page[LateComeEarlyOut], error) {
	return listPage[LateComeEarlyOut](ctx, s.client, endpoints.WithQuery(s.ep.LateComeEarlyOut.List.String(), query))
}

func (s *Service) DeleteLateComeEarlyOut(ctx context.Context, id string) error {
	if id == "" {
		return errors.ErrMissingID
	}
	return s.client.Delete(ctx, s.ep.LateComeEarlyOut.Delete(id), nil)
}

// CanManage reports whether the logged-in user may manage attendance.
// A 403 answer means no permission rather than an error.
func (s *Service) CanManage(ctx context.Context) (bool, error) {
	var out permissionResponse
	err := s.client.Get(ctx, s.ep.PermissionCheck.String(), &out)
	if apiclient.StatusCode(err) == http.StatusForbidden {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return out.Permission, nil
}

// SendMail mails an offline employee. The payload is always multipart.
func (s *Service) SendMail(ctx context.Context, m Mail) error {
	if m.EmployeeID == 0 {
		return fmt.Errorf("%w: employee id", errors.ErrInvalidRequest)
	}
	form := apiclient.NewForm().
		AddField("employee_id", strconv.Itoa(m.EmployeeID)).
		AddField("subject", m.Subject).
		AddField("body", m.Body)
	for _, a := range m.Attachments {
		if err := form.AddFile("other_attachments", a.Filename, a.Content); err != nil {
			return err
		}
	}
	return s.client.Post(ctx, s.ep.MailSend.String(), form, nil)
}

func listPage[T any](ctx context.Context, client apiclient.Requester, path string) (*apiclient.Page[T], error) {
	var raw json.RawMessage
	if err := client.Get(ctx, path, &raw); err != nil {
		return nil, err
	}
	return resource.DecodePage[T](raw)
}
