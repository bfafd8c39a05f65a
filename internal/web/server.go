// Package web serves the dashboard surface: login, the four list screens,
// the room form endpoints and the overview metrics, all as JSON consumed
// by the admin UI.
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eliteresort/resortadmin/internal/config"
	"github.com/eliteresort/resortadmin/internal/dashboard"
	"github.com/eliteresort/resortadmin/internal/resources"
	"github.com/eliteresort/resortadmin/internal/session"
)

// LoginPath is where unauthenticated traffic is sent.
const LoginPath = "/admin/login"

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Error    string      `json:"error,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
}

func sendError(c *gin.Context, status int, msg string) {
	c.JSON(status, APIResponse{Success: false, Error: msg})
}

// Deps carries everything the server needs.
type Deps struct {
	Config   *config.Config
	Session  *session.Store
	Auth     *resources.AuthClient
	Users    *resources.UsersClient
	Rooms    *resources.RoomsClient
	Contacts *resources.ContactsClient
	Bookings *resources.BookingsClient
	Metrics  *dashboard.Service
}

// Server is the dashboard HTTP surface.
type Server struct {
	deps   Deps
	engine *gin.Engine
}

// New wires the routes.
func New(deps Deps) *Server {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	s := &Server{deps: deps, engine: engine}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	engine.POST(LoginPath, s.handleLogin)
	engine.POST("/admin/logout", s.handleLogout)

	authed := engine.Group("/admin", s.requireSession)
	{
		authed.GET("/dashboard", s.handleDashboard)

		authed.GET("/users", s.handleListUsers)
		authed.DELETE("/users/:id", s.deleteHandler(deps.Users, "failed to delete user"))

		authed.GET("/rooms", s.handleListRooms)
		authed.GET("/rooms/:id", s.handleGetRoom)
		authed.POST("/rooms", s.handleCreateRoom)
		authed.PUT("/rooms/:id", s.handleUpdateRoom)
		authed.DELETE("/rooms/:id", s.deleteHandler(deps.Rooms, "failed to delete room"))
		authed.POST("/rooms/upload", s.handleUploadRoomImage)

		authed.GET("/contacts", s.handleListContacts)
		authed.DELETE("/contacts/:id", s.deleteHandler(deps.Contacts, "failed to delete contact"))

		authed.GET("/bookings", s.handleListBookings)
	}
	return s
}

// Router exposes the handler for serving and for tests.
func (s *Server) Router() http.Handler {
	return s.engine
}

// Run serves until the listener fails.
func (s *Server) Run() error {
	return s.engine.Run(s.deps.Config.ListenAddr)
}
