// Package endpoints is the single source of truth for backend URL paths.
// Call sites take paths from Registry() instead of hardcoding them.
package endpoints

import (
	"net/url"
	"strings"
)

// Path is a literal, parameterless endpoint path.
type Path string

func (p Path) String() string {
	return string(p)
}

// PathFunc builds a resource-scoped path from an identifier.
type PathFunc func(id string) string

// CRUD is the uniform operation vocabulary every CRUD-capable resource exposes.
type CRUD struct {
	List   Path
	Create Path
	Get    PathFunc
	Update PathFunc
	Delete PathFunc
}

// crud builds a CRUD group rooted at base, which must end in "/".
func crud(base string) CRUD {
	item := func(id string) string {
		return base + url.PathEscape(id) + "/"
	}
	return CRUD{
		List:   Path(base),
		Create: Path(base),
		Get:    item,
		Update: item,
		Delete: item,
	}
}

type AuthEndpoints struct {
	Login   Path
	Refresh Path
}

type LateComeEarlyOutEndpoints struct {
	List   Path
	Delete PathFunc
}

type AttendanceEndpoints struct {
	List                 Path
	Today                Path
	OfflineEmployeeCount Path
	OfflineEmployeeList  Path
	Requests             CRUD
	HourAccount          CRUD
	Activity             Path
	LateComeEarlyOut     LateComeEarlyOutEndpoints
	PermissionCheck      Path
	MailSend             Path
}

type LeaveEndpoints struct {
	Requests CRUD
}

// Endpoints is the full registry. Obtain it via Registry(); the value is a copy,
// so callers cannot alter what other callers see.
type Endpoints struct {
	Auth             AuthEndpoints
	Employees        CRUD
	Attendance       AttendanceEndpoints
	ShiftRequests    CRUD
	WorkTypeRequests CRUD
	Leave            LeaveEndpoints
	Reimbursements   CRUD
	Tickets          CRUD
}

const apiV1 = "/api/v1"

var registry = Endpoints{
	Auth: AuthEndpoints{
		Login:   apiV1 + "/auth/login/",
		Refresh: "/auth/token/refresh/",
	},
	Employees: crud(apiV1 + "/employee/employees/"),
	Attendance: AttendanceEndpoints{
		List:                 apiV1 + "/attendance/attendance/",
		Today:                apiV1 + "/attendance/today-attendance/",
		OfflineEmployeeCount: apiV1 + "/attendance/offline-employees/count/",
		OfflineEmployeeList:  apiV1 + "/attendance/offline-employees/list/",
		Requests:             crud(apiV1 + "/attendance/attendance-request/"),
		HourAccount:          crud(apiV1 + "/attendance/attendance-hour-account/"),
		Activity:             apiV1 + "/attendance/attendance-activity/",
		LateComeEarlyOut: LateComeEarlyOutEndpoints{
			List: apiV1 + "/attendance/late-come-early-out-view/",
			Delete: func(id string) string {
				return apiV1 + "/attendance/late-come-early-out-view/" + url.PathEscape(id) + "/"
			},
		},
		PermissionCheck: apiV1 + "/attendance/permission-check/attendance",
		MailSend:        apiV1 + "/attendance/offline-employee-mail-send",
	},
	ShiftRequests:    crud(apiV1 + "/base/shift-requests/"),
	WorkTypeRequests: crud(apiV1 + "/base/worktype-requests/"),
	Leave: LeaveEndpoints{
		Requests: crud(apiV1 + "/leave/user-request/"),
	},
	Reimbursements: crud(apiV1 + "/payroll/reimbursement/"),
	Tickets:        crud(apiV1 + "/helpdesk/tickets/"),
}

// Registry returns the endpoint registry.
func Registry() Endpoints {
	return registry
}

// WithQuery appends encoded query parameters to path. Existing parameters in
// path are kept.
func WithQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + query.Encode()
}
