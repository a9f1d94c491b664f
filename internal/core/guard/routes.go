package guard

import "github.com/pirates/party-console/internal/core/domain"

var (
	superAdmin  = []domain.Role{domain.RoleSuperAdmin}
	owners      = []domain.Role{domain.RoleAuthOwner, domain.RoleNotAuthOwner}
	authOwner   = []domain.Role{domain.RoleAuthOwner}
	managers    = []domain.Role{domain.RoleAuthManager, domain.RoleNotAuthManager}
	authManager = []domain.Role{domain.RoleAuthManager}
	users       = []domain.Role{domain.RoleUser}
)

// DefaultRoutes is the console's route table. Patterns are method-agnostic.
func DefaultRoutes() []Route {
	return []Route{
		// Public.
		{Pattern: "/"},
		{Pattern: "/user/login"},
		{Pattern: "/user/login/success"},
		{Pattern: "/admin/login"},
		{Pattern: "/owner/login"},
		{Pattern: "/manager/login"},
		{Pattern: "/owner/signup"},
		{Pattern: "/owner/duplicate"},
		{Pattern: "/manager/signup"},
		{Pattern: "/manager/duplicate"},
		{Pattern: "/logout"},
		{Pattern: "/session"},

		// Super admin.
		{Pattern: "/admin/houseManage", Roles: superAdmin},
		{Pattern: "/admin/houseApprove", Roles: superAdmin},
		{Pattern: "/admin/owner/auth/:id", Roles: superAdmin},
		{Pattern: "/admin/owner/deny/:id", Roles: superAdmin},

		// Owners. Approving managers needs an approved owner.
		{Pattern: "/owner/manageHouse", Roles: owners},
		{Pattern: "/owner/accomodation", Roles: owners},
		{Pattern: "/owner/accomodation/:id", Roles: owners},
		{Pattern: "/owner/managerApprove", Roles: authOwner},
		{Pattern: "/owner/manager/auth/:id", Roles: authOwner},
		{Pattern: "/owner/manager/deny/:id", Roles: authOwner},

		// Managers. Until approved, a manager only sees the registration page.
		{Pattern: "/manager/houseRegister", Roles: managers},
		{Pattern: "/manager/manageParty", Roles: authManager},
		{Pattern: "/manager/party", Roles: authManager},
		{Pattern: "/manager/party/:id", Roles: authManager},
		{Pattern: "/manager/managePartyDetail", Roles: authManager},
		{Pattern: "/manager/participant", Roles: authManager},
		{Pattern: "/manager/participant/:id", Roles: authManager},
		{Pattern: "/manager/partyOn/:id", Roles: authManager},
		{Pattern: "/manager/partyUserOn/:id", Roles: authManager},
		{Pattern: "/manager/party/matchStart/:id", Roles: authManager},
		{Pattern: "/manager/party/userList", Roles: authManager},

		// Users.
		{Pattern: "/user/signup", Roles: users},
		{Pattern: "/user/party", Roles: users},
		{Pattern: "/user/party/userList/:party_id", Roles: users},
		{Pattern: "/user/party/loveSelect", Roles: users},
		{Pattern: "/user/match/select", Roles: users},
		{Pattern: "/user/chatRooms", Roles: users},
		{Pattern: "/user/chat", Roles: users},
	}
}

// Default returns a Guard over DefaultRoutes.
func Default() *Guard {
	return MustNew(DefaultRoutes())
}
