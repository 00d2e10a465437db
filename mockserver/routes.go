package mockserver

import (
	"github.com/jrsteele09/go-hrms-client/endpoints"
)

func (s *Server) initRoutes() {
	ep := endpoints.Registry()

	// AUTH
	s.RegisterRouteHandler("POST "+listPattern(ep.Auth.Login), ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+listPattern(ep.Auth.Refresh), ChainMiddleware(s.RefreshHandler(), s.APIMiddleware()...))

	// CRUD groups
	for _, group := range []endpoints.CRUD{
		ep.Employees,
		ep.Attendance.Requests,
		ep.Attendance.HourAccount,
		ep.ShiftRequests,
		ep.WorkTypeRequests,
		ep.Leave.Requests,
		ep.Reimbursements,
		ep.Tickets,
	} {
		s.registerCRUD(group)
	}

	// Attendance
	att := ep.Attendance
	attendance := s.registerCollection(att.List)
	s.RegisterRouteHandler("GET "+listPattern(att.List), s.protected(s.ListHandler(attendance)))
	s.RegisterRouteHandler("POST "+listPattern(att.List), s.protected(s.CreateHandler(attendance)))
	s.RegisterRouteHandler("GET "+listPattern(att.Today), s.protected(s.TodayAttendanceHandler()))
	s.RegisterRouteHandler("GET "+listPattern(att.OfflineEmployeeCount), s.protected(s.OfflineCountHandler()))
	s.RegisterRouteHandler("GET "+listPattern(att.OfflineEmployeeList), s.protected(s.OfflineListHandler()))
	s.RegisterRouteHandler("GET "+att.PermissionCheck.String(), s.protected(s.PermissionCheckHandler()))
	s.RegisterRouteHandler("POST "+att.MailSend.String(), s.protected(s.MailSendHandler()))

	activity := s.registerCollection(att.Activity)
	s.RegisterRouteHandler("GET "+listPattern(att.Activity), s.protected(s.ListHandler(activity)))

	lateEarly := s.registerCollection(att.LateComeEarlyOut.List)
	s.RegisterRouteHandler("GET "+listPattern(att.LateComeEarlyOut.List), s.protected(s.ListHandler(lateEarly)))
	s.RegisterRouteHandler("DELETE "+itemPattern(att.LateComeEarlyOut.List), s.protected(s.DeleteHandler(lateEarly)))
}

func (s *Server) registerCRUD(group endpoints.CRUD) {
	c := s.registerCollection(group.List)
	s.RegisterRouteHandler("GET "+listPattern(group.List), s.protected(s.ListHandler(c)))
	s.RegisterRouteHandler("POST "+listPattern(group.Create), s.protected(s.CreateHandler(c)))
	s.RegisterRouteHandler("GET "+itemPattern(group.List), s.protected(s.GetHandler(c)))
	s.RegisterRouteHandler("PUT "+itemPattern(group.List), s.protected(s.UpdateHandler(c)))
	s.RegisterRouteHandler("DELETE "+itemPattern(group.List), s.protected(s.DeleteHandler(c)))
}

// listPattern anchors a trailing-slash path so it does not match the whole subtree.
func listPattern(p endpoints.Path) string {
	return p.String() + "{$}"
}

func itemPattern(list endpoints.Path) string {
	return list.String() + "{id}/"
}

func (s *Server) registerCollection(list endpoints.Path) *Collection {
	c := newCollection()
	s.collections[list] = c
	return c
}
