package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/nestorwheelock/buceo-feliz/models"
	"github.com/nestorwheelock/buceo-feliz/portalui"
)

// PortalController exposes the resolved navigation for a request path.
type PortalController struct {
	Config portalui.Config
}

// NewPortalController initializes the portal controller
func NewPortalController(config portalui.Config) *PortalController {
	return &PortalController{Config: config}
}

// staffUserAdapter bridges the staff user model to the portalui.User surface.
type staffUserAdapter struct {
	user *models.StaffUser
}

func (a staffUserAdapter) IsAuthenticated() bool { return a.user != nil }
func (a staffUserAdapter) IsStaff() bool         { return a.user != nil && a.user.IsStaff }
func (a staffUserAdapter) IsSuperuser() bool     { return a.user != nil && a.user.IsSuperuser }
func (a staffUserAdapter) HasModulePermission(module, action string) bool {
	return a.user != nil && a.user.HasModulePermission(module, action)
}

// HandleNavigation - GET /api/portal/navigation/?path=
func (c *PortalController) HandleNavigation(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = "/"
	}

	user := UserFromContext(r.Context())
	items := c.Config.NavigationFor(path, staffUserAdapter{user: user})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"context": c.Config.ContextForPath(path),
		"items":   items,
	})
}
