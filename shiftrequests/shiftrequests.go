package shiftrequests

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jrsteele09/go-hrms-client/apiclient"
	"github.com/jrsteele09/go-hrms-client/endpoints"
	"github.com/jrsteele09/go-hrms-client/resource"
)

// ShiftRequest asks for a temporary or permanent change of shift.
type ShiftRequest struct {
	ID             int    `json:"id,omitempty"`
	EmployeeID     int    `json:"employee_id"`
	ShiftID        int    `json:"shift_id"`
	RequestedDate  string `json:"requested_date"`
	RequestedTill  string `json:"requested_till,omitempty"`
	Description    string `json:"description,omitempty"`
	IsPermanent    bool   `json:"is_permanent_shift,omitempty"`
	Approved       bool   `json:"approved,omitempty"`
	Canceled       bool   `json:"canceled,omitempty"`
	EmployeeName   string `json:"employee_name,omitempty"`
	ShiftName      string `json:"shift_name,omitempty"`
	PreviousShift  string `json:"previous_shift_name,omitempty"`
	ReallocateToID *int   `json:"reallocate_to,omitempty"`
}

type Service struct {
	*resource.Resource[ShiftRequest]
}

func NewService(client apiclient.Requester) *Service {
	return &Service{Resource: resource.New[ShiftRequest](client, endpoints.Registry().ShiftRequests)}
}

// ForEmployee lists requests raised by one employee.
func (s *Service) ForEmployee(ctx context.Context, employeeID int) (*apiclient.Page[ShiftRequest], error) {
	return s.List(ctx, url.Values{"employee_id": {strconv.Itoa(employeeID)}})
}
