// Package guard decides, for every route transition, whether the current
// principal may enter the route or where it must be sent instead.
package guard

import (
	"fmt"
	"strings"

	"github.com/pirates/party-console/internal/core/domain"
)

// Reason explains a Decision. It is also used as a metric label.
type Reason string

const (
	ReasonPublic          Reason = "public"
	ReasonAccepted        Reason = "accepted"
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonWrongRole       Reason = "wrong_role"
)

// Decision is the outcome of Authorize. Redirect is set iff Allow is false.
type Decision struct {
	Allow    bool
	Redirect string
	Reason   Reason
}

// Route declares the roles accepted by a path pattern. Segments starting with
// ':' match any single non-empty segment. A route without roles is public.
type Route struct {
	Pattern string
	Roles   []domain.Role
}

type compiledRoute struct {
	pattern  string
	segments []string
	literals int
	roles    map[domain.Role]struct{}
}

func (r compiledRoute) match(segments []string) bool {
	if len(segments) != len(r.segments) {
		return false
	}
	for i, s := range r.segments {
		if strings.HasPrefix(s, ":") {
			if segments[i] == "" {
				return false
			}
			continue
		}
		if s != segments[i] {
			return false
		}
	}
	return true
}

// Guard holds a validated route table.
type Guard struct {
	routes []compiledRoute
}

// New compiles and validates routes: patterns must be absolute and unique,
// every role must have a home route, and that home must accept the role.
func New(routes []Route) (*Guard, error) {
	g := &Guard{}
	seen := make(map[string]struct{}, len(routes))
	for _, r := range routes {
		pattern := normalize(r.Pattern)
		if !strings.HasPrefix(pattern, "/") {
			return nil, fmt.Errorf("route %q: pattern must start with /", r.Pattern)
		}
		if _, dup := seen[pattern]; dup {
			return nil, fmt.Errorf("route %q declared twice", pattern)
		}
		seen[pattern] = struct{}{}

		cr := compiledRoute{
			pattern:  pattern,
			segments: split(pattern),
			roles:    make(map[domain.Role]struct{}, len(r.Roles)),
		}
		for _, s := range cr.segments {
			if !strings.HasPrefix(s, ":") {
				cr.literals++
			}
		}
		for _, role := range r.Roles {
			if !role.IsSet() {
				return nil, fmt.Errorf("route %q: role %d is not assignable", pattern, role)
			}
			cr.roles[role] = struct{}{}
		}
		g.routes = append(g.routes, cr)
	}

	for _, role := range domain.Roles() {
		home := HomePath(role)
		cr, ok := g.lookup(home)
		if !ok || cr.pattern != home {
			return nil, fmt.Errorf("home %q of %s is not in the route table", home, role)
		}
		if _, ok := cr.roles[role]; !ok {
			return nil, fmt.Errorf("home %q does not accept its own role %s", home, role)
		}
	}
	return g, nil
}

// MustNew is New for static tables; it panics on an invalid table.
func MustNew(routes []Route) *Guard {
	g, err := New(routes)
	if err != nil {
		panic(err)
	}
	return g
}

// Authorize decides whether p may enter route. route may carry a query string.
func (g *Guard) Authorize(route string, p domain.Principal) Decision {
	path := normalize(route)
	cr, ok := g.lookup(path)
	if !ok || len(cr.roles) == 0 {
		return Decision{Allow: true, Reason: ReasonPublic}
	}

	if !p.Role.IsSet() {
		return Decision{Redirect: LoginPath(FamilyOf(path)), Reason: ReasonUnauthenticated}
	}
	if _, accepted := cr.roles[p.Role]; accepted {
		return Decision{Allow: true, Reason: ReasonAccepted}
	}
	return Decision{Redirect: HomePath(p.Role), Reason: ReasonWrongRole}
}

// Roles returns the roles accepted by route; nil means public.
func (g *Guard) Roles(route string) []domain.Role {
	cr, ok := g.lookup(normalize(route))
	if !ok || len(cr.roles) == 0 {
		return nil
	}
	out := make([]domain.Role, 0, len(cr.roles))
	for _, r := range domain.Roles() {
		if _, ok := cr.roles[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

// lookup returns the most specific matching route: the one with the most
// literal segments.
func (g *Guard) lookup(path string) (compiledRoute, bool) {
	segments := split(path)
	var (
		best  compiledRoute
		found bool
	)
	for _, cr := range g.routes {
		if !cr.match(segments) {
			continue
		}
		if !found || cr.literals > best.literals {
			best, found = cr, true
		}
	}
	return best, found
}

// HomePath is where a signed-in role lands and where it is sent back to when
// it tries a route it may not enter.
func HomePath(r domain.Role) string {
	switch r {
	case domain.RoleSuperAdmin:
		return "/admin/houseManage"
	case domain.RoleAuthOwner, domain.RoleNotAuthOwner:
		return "/owner/manageHouse"
	case domain.RoleAuthManager:
		return "/manager/manageParty"
	case domain.RoleNotAuthManager:
		return "/manager/houseRegister"
	case domain.RoleUser:
		return "/user/party"
	case domain.RoleNone:
		return "/"
	default:
		return "/"
	}
}

// LoginPath is the sign-in page for a console area.
func LoginPath(f domain.Family) string {
	switch f {
	case domain.FamilyAdmin:
		return "/admin/login"
	case domain.FamilyOwner:
		return "/owner/login"
	case domain.FamilyManager:
		return "/manager/login"
	case domain.FamilyUser, domain.FamilyNone:
		return "/"
	default:
		return "/"
	}
}

// FamilyOf infers the console area from the first path segment.
func FamilyOf(route string) domain.Family {
	segments := split(normalize(route))
	switch segments[0] {
	case "admin":
		return domain.FamilyAdmin
	case "owner":
		return domain.FamilyOwner
	case "manager":
		return domain.FamilyManager
	case "user":
		return domain.FamilyUser
	default:
		return domain.FamilyNone
	}
}

// normalize strips the query string, fragment and trailing slash.
func normalize(route string) string {
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	if len(route) > 1 {
		route = strings.TrimRight(route, "/")
		if route == "" {
			route = "/"
		}
	}
	return route
}

func split(path string) []string {
	return strings.Split(strings.TrimPrefix(path, "/"), "/")
}
