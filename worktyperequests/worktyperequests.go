package worktyperequests

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jrsteele09/go-hrms-client/apiclient"
	"github.com/jrsteele09/go-hrms-client/endpoints"
	"github.com/jrsteele09/go-hrms-client/resource"
)

// WorkTypeRequest asks to switch work type (office, remote, hybrid) for a period.
type WorkTypeRequest struct {
	ID               int    `json:"id,omitempty"`
	EmployeeID       int    `json:"employee_id"`
	WorkTypeID       int    `json:"work_type_id"`
	RequestedDate    string `json:"requested_date"`
	RequestedTill    string `json:"requested_till,omitempty"`
	Description      string `json:"description,omitempty"`
	IsPermanent      bool   `json:"is_permanent_work_type,omitempty"`
	Approved         bool   `json:"approved,omitempty"`
	Canceled         bool   `json:"canceled,omitempty"`
	EmployeeName     string `json:"employee_name,omitempty"`
	WorkTypeName     string `json:"work_type_name,omitempty"`
	PreviousWorkType string `json:"previous_work_type_name,omitempty"`
}

type Service struct {
	*resource.Resource[WorkTypeRequest]
}

func NewService(client apiclient.Requester) *Service {
	return &Service{Resource: resource.New[WorkTypeRequest](client, endpoints.Registry().WorkTypeRequests)}
}

// Pending lists requests that are neither approved nor canceled.
func (s *Service) Pending(ctx context.Context) ([]WorkTypeRequest, error) {
	page, err := s.List(ctx, url.Values{"approved": {strconv.FormatBool(false)}})
	if err != nil {
		return nil, err
	}
	pending := make([]WorkTypeRequest, 0, len(page.Results))
	for _, r := range page.Results {
		if !r.Approved && !r.Canceled {
			pending = append(pending, r)
		}
	}
	return pending, nil
}
