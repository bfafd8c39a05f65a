package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eliteresort/resortadmin/internal/apiclient"
)

// requireSession gates the admin screens: no valid session means a 401
// carrying the login redirect. Validation also clears a held token that
// has expired since the last request.
func (s *Server) requireSession(c *gin.Context) {
	if !s.deps.Session.Validate(c.Request.Context()) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, APIResponse{
			Success:  false,
			Error:    "not authenticated",
			Redirect: LoginPath,
		})
		return
	}
	c.Next()
}

// respondBackendError translates a resource-client error into a response.
// A backend 401 has already cleared the session globally, so it becomes a
// login redirect here; everything else surfaces the extracted message.
func (s *Server) respondBackendError(c *gin.Context, err error, fallback string) {
	var httpErr *apiclient.HTTPError
	if errors.As(err, &httpErr) && httpErr.Status == http.StatusUnauthorized {
		c.JSON(http.StatusUnauthorized, APIResponse{
			Success:  false,
			Error:    apiclient.ErrorMessage(err, "session expired"),
			Redirect: LoginPath,
		})
		return
	}
	sendError(c, http.StatusBadGateway, apiclient.ErrorMessage(err, fallback))
}
