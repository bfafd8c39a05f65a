package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eliteresort/resortadmin/internal/apiclient"
	"github.com/eliteresort/resortadmin/internal/formview"
	"github.com/eliteresort/resortadmin/internal/listview"
	"github.com/eliteresort/resortadmin/internal/resources"
)

func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	admin, err := s.deps.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, resources.ErrBadCredentials) {
			sendError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		var httpErr *apiclient.HTTPError
		if errors.As(err, &httpErr) {
			sendError(c, http.StatusUnauthorized, apiclient.ErrorMessage(err, "Invalid email or password"))
			return
		}
		sendError(c, http.StatusBadGateway, "login failed, try again")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success:  true,
		Data:     gin.H{"admin": admin},
		Redirect: "/admin/dashboard",
	})
}

func (s *Server) handleLogout(c *gin.Context) {
	if err := s.deps.Auth.Logout(c.Request.Context()); err != nil {
		sendError(c, http.StatusInternalServerError, "failed to clear session")
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Redirect: LoginPath})
}

func (s *Server) handleDashboard(c *gin.Context) {
	metrics, err := s.deps.Metrics.Load(c.Request.Context())
	if err != nil {
		s.respondBackendError(c, err, "failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: metrics})
}

// listScreen runs the shared list-screen flow: fetch once, then derive
// the requested page locally from q, filter and page parameters.
func (s *Server) listScreen(c *gin.Context, cfg listview.Config, fetch listview.Fetch, remove listview.Delete, filterParams map[string]string) {
	ctrl := listview.New(cfg, fetch, remove)
	ctrl.Load(c.Request.Context())

	if ctrl.State() == listview.StateError {
		// A backend 401 already cleared the session; detect it there.
		if !s.deps.Session.Validate(c.Request.Context()) {
			c.JSON(http.StatusUnauthorized, APIResponse{
				Success:  false,
				Error:    ctrl.ErrorMessage(),
				Redirect: LoginPath,
			})
			return
		}
		sendError(c, http.StatusBadGateway, ctrl.ErrorMessage())
		return
	}

	ctrl.SetQuery(c.Query("q"))
	for param, field := range filterParams {
		if value := c.Query(param); value != "" {
			ctrl.SetFilter(field, value)
		}
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		ctrl.SetPage(page)
	}

	records, info := ctrl.Page()
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: gin.H{
		"records": records,
		"page":    info,
		"state":   ctrl.State().String(),
	}})
}

func (s *Server) listConfig(searchFields []string, loadMsg string) listview.Config {
	return listview.Config{
		PageSize:         s.deps.Config.PageSize,
		SearchFields:     searchFields,
		LoadErrorMessage: loadMsg,
	}
}

func (s *Server) handleListUsers(c *gin.Context) {
	s.listScreen(c,
		s.listConfig(resources.UserSearchFields(), "failed to load users"),
		func(ctx context.Context) ([]resources.Record, error) {
			return s.deps.Users.List(ctx, url.Values{})
		},
		s.deps.Users.Delete,
		nil)
}

func (s *Server) handleListRooms(c *gin.Context) {
	s.listScreen(c,
		s.listConfig(resources.RoomSearchFields(), "failed to load rooms"),
		func(ctx context.Context) ([]resources.Record, error) {
			return s.deps.Rooms.List(ctx, nil)
		},
		s.deps.Rooms.Delete,
		nil)
}

func (s *Server) handleListContacts(c *gin.Context) {
	s.listScreen(c,
		s.listConfig(resources.ContactSearchFields(), "failed to load contacts"),
		func(ctx context.Context) ([]resources.Record, error) {
			return s.deps.Contacts.List(ctx, nil)
		},
		s.deps.Contacts.Delete,
		nil)
}

func (s *Server) handleListBookings(c *gin.Context) {
	s.listScreen(c,
		s.listConfig(resources.BookingSearchFields(), "failed to load bookings"),
		func(ctx context.Context) ([]resources.Record, error) {
			return s.deps.Bookings.List(ctx, nil)
		},
		nil,
		map[string]string{
			"status":  resources.FilterBookingStatus,
			"payment": resources.FilterPaymentStatus,
		})
}

// remover is the delete slice of a resource client.
type remover interface {
	Delete(ctx context.Context, id string) error
}

func (s *Server) deleteHandler(client remover, fallback string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := client.Delete(c.Request.Context(), c.Param("id")); err != nil {
			s.respondBackendError(c, err, fallback)
			return
		}
		c.JSON(http.StatusOK, APIResponse{Success: true})
	}
}

func (s *Server) handleGetRoom(c *gin.Context) {
	room, err := s.deps.Rooms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondBackendError(c, err, "failed to load room")
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: gin.H{"room": room}})
}

func (s *Server) handleCreateRoom(c *gin.Context) {
	s.submitRoomForm(c, formview.ModeCreate, func(ctx context.Context, payload map[string]interface{}) error {
		_, err := s.deps.Rooms.Create(ctx, payload)
		return err
	})
}

func (s *Server) handleUpdateRoom(c *gin.Context) {
	id := c.Param("id")
	s.submitRoomForm(c, formview.ModeEdit, func(ctx context.Context, payload map[string]interface{}) error {
		_, err := s.deps.Rooms.Update(ctx, id, payload)
		return err
	})
}

func (s *Server) submitRoomForm(c *gin.Context, mode formview.Mode, submit formview.SubmitFunc) {
	var draft map[string]string
	if err := c.ShouldBindJSON(&draft); err != nil {
		sendError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	form := formview.NewRoomForm(mode)
	form.SetAll(draft)

	err := form.Submit(c.Request.Context(), submit)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, APIResponse{Success: true, Redirect: "/admin/rooms"})
	case errors.Is(err, formview.ErrInvalid):
		c.JSON(http.StatusUnprocessableEntity, APIResponse{
			Success: false,
			Error:   "validation failed",
			Data:    gin.H{"fields": form.VisibleErrors()},
		})
	default:
		s.respondBackendError(c, err, form.Banner())
	}
}

func (s *Server) handleUploadRoomImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		sendError(c, http.StatusBadRequest, "image file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		sendError(c, http.StatusBadRequest, "could not read image file")
		return
	}
	defer file.Close()

	uploadedURL, err := s.deps.Rooms.UploadImage(c.Request.Context(), header.Filename, file)
	if err != nil {
		s.respondBackendError(c, err, "upload failed")
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: gin.H{"url": uploadedURL}})
}
