package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/pirates/party-console/docs"
	"github.com/pirates/party-console/internal/api/handler"
	"github.com/pirates/party-console/internal/api/middleware"
	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/guard"
	"github.com/pirates/party-console/internal/core/navigation"
	"github.com/pirates/party-console/internal/core/service"
	"github.com/pirates/party-console/internal/core/session"
)

// Deps is everything the router wires into handlers.
type Deps struct {
	Log      zerolog.Logger
	Registry *session.Registry
	Guard    *guard.Guard
	Tracker  *navigation.Tracker
	Session  middleware.SessionOptions
	KakaoURL string

	Auth    *service.AuthService
	Admin   *service.AdminService
	Owner   *service.OwnerService
	Manager *service.ManagerService
	User    *service.UserService
	Chat    *service.ChatService

	// Checks are pinged by the readiness probe.
	Checks map[string]handler.Checker
	// Metrics receives the HTTP metrics; nil means the default registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	promCfg := echoprometheus.MiddlewareConfig{Subsystem: "pirates_console"}
	promHandler := echoprometheus.NewHandler()
	if d.Metrics != nil {
		promCfg.Registerer = d.Metrics
		promHandler = echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Metrics})
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))

	// --- Ops (no session) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – is the session store up?
	e.GET("/metrics", promHandler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Console: every route resolves the session, re-checks its token,
	// passes the navigation guard and, for form posts, the CSRF check. ---
	g := e.Group("",
		middleware.Session(d.Registry, d.Session),
		middleware.Token(d.Auth),
		middleware.Guard(d.Guard, d.Log),
		middleware.CSRF(d.Session.Secure),
	)

	auth := handler.NewAuthHandler(d.Auth, d.Tracker, d.KakaoURL, d.Log)
	g.GET("/", auth.UserLoginPage)
	g.GET("/user/login", auth.UserLoginPage)
	g.GET("/user/login/success", auth.LoginSuccess)
	for _, f := range []domain.Family{domain.FamilyAdmin, domain.FamilyOwner, domain.FamilyManager} {
		g.GET("/"+string(f)+"/login", auth.LoginPage(f))
		g.POST("/"+string(f)+"/login", auth.Login(f))
	}
	for _, f := range []domain.Family{domain.FamilyOwner, domain.FamilyManager} {
		g.GET("/"+string(f)+"/signup", auth.StaffSignupPage(f))
		g.POST("/"+string(f)+"/signup", auth.StaffSignup(f))
		g.GET("/"+string(f)+"/duplicate", auth.Duplicate(f))
	}
	g.POST("/logout", auth.Logout)
	g.GET("/session", auth.Session)

	admin := handler.NewAdminHandler(d.Admin, d.Tracker)
	g.GET("/admin/houseManage", admin.HouseManage)
	g.GET("/admin/houseApprove", admin.HouseApprove)
	g.PUT("/admin/owner/auth/:id", admin.ApproveOwner)
	g.PUT("/admin/owner/deny/:id", admin.DenyOwner)

	owner := handler.NewOwnerHandler(d.Owner, d.Tracker)
	g.GET("/owner/manageHouse", owner.ManageHouse)
	g.POST("/owner/accomodation", owner.CreateAccommodation)
	g.PUT("/owner/accomodation/:id", owner.UpdateAccommodation)
	g.GET("/owner/managerApprove", owner.ManagerApprove)
	g.PUT("/owner/manager/auth/:id", owner.ApproveManager)
	g.PUT("/owner/manager/deny/:id", owner.DenyManager)

	manager := handler.NewManagerHandler(d.Manager, d.Auth, d.Tracker)
	g.GET("/manager/houseRegister", manager.HouseRegister)
	g.GET("/manager/manageParty", manager.ManageParty)
	g.POST("/manager/party", manager.CreateParty)
	g.PUT("/manager/party/:id", manager.UpdateParty)
	g.DELETE("/manager/party/:id", manager.DeleteParty)
	g.GET("/manager/managePartyDetail", manager.PartyDetail)
	g.POST("/manager/participant", manager.AddParticipant)
	g.DELETE("/manager/participant/:id", manager.DeleteParticipant)
	g.PUT("/manager/partyOn/:id", manager.PartyOn)
	g.PUT("/manager/partyUserOn/:id", manager.PartyUserOn)
	g.PUT("/manager/party/matchStart/:id", manager.MatchStart)
	g.GET("/manager/party/userList", manager.PartyTeams)
	g.PUT("/manager/party/userList", manager.AssignTeams)

	user := handler.NewUserHandler(d.User, d.Tracker)
	g.GET("/user/signup", user.SignupPage)
	g.POST("/user/signup", user.Signup)
	g.GET("/user/party", user.Party)
	g.GET("/user/party/userList/:party_id", user.PartyTeams)
	g.GET("/user/party/loveSelect", user.LoveSelect)
	g.POST("/user/match/select", user.SelectMatch)

	chat := handler.NewChatHandler(d.Chat, d.Tracker)
	g.GET("/user/chatRooms", chat.ChatRooms)
	g.POST("/user/chatRooms", chat.CreateChatRoom)
	g.GET("/user/chat", chat.Messages)
	g.POST("/user/chat", chat.SendMessage)

	return e
}
