package employees

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jrsteele09/go-hrms-client/apiclient"
	"github.com/jrsteele09/go-hrms-client/endpoints"
	"github.com/jrsteele09/go-hrms-client/resource"
)

type Employee struct {
	ID             int     `json:"id,omitempty"`
	BadgeID        string  `json:"badge_id,omitempty"`
	FirstName      string  `json:"employee_first_name"`
	LastName       string  `json:"employee_last_name,omitempty"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone,omitempty"`
	Gender         string  `json:"gender,omitempty"`
	DateOfBirth    *string `json:"dob,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
	JobPosition    string  `json:"job_position_name,omitempty"`
	Department     string  `json:"department_name,omitempty"`
	ReportingTo    *int    `json:"reporting_manager_id,omitempty"`
	ProfilePicture string  `json:"employee_profile,omitempty"`
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Filter narrows an employee listing. Zero values are not sent.
type Filter struct {
	Search     string
	Department string
	Active     *bool
	Page       int
}

func (f Filter) Query() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Department != "" {
		q.Set("department", f.Department)
	}
	if f.Active != nil {
		q.Set("is_active", strconv.FormatBool(*f.Active))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	return q
}

type Service struct {
	*resource.Resource[Employee]
}

func NewService(client apiclient.Requester) *Service {
	return &Service{Resource: resource.New[Employee](client, endpoints.Registry().Employees)}
}

// Search lists employees matching f.
func (s *Service) Search(ctx context.Context, f Filter) (*apiclient.Page[Employee], error) {
	return s.List(ctx, f.Query())
}

// All walks every page of the listing.
func (s *Service) All(ctx context.Context, f Filter) ([]Employee, error) {
	all := make([]Employee, 0)
	f.Page = 1
	for {
		page, err := s.Search(ctx, f)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Results...)
		if page.Next == nil || len(page.Results) == 0 {
			return all, nil
		}
		f.Page++
	}
}
