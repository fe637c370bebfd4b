// Package portalui resolves a user's navigation context from the request
// path and filters the portal menus by role and permission flags. It is
// framework-neutral: callers supply the nav configurations and a User.
package portalui

// NavItem is a single menu entry. Permission is "module.action";
// StaffOnly and SuperuserOnly gate by role flags.
type NavItem struct {
	Label         string `json:"label"`
	URL           string `json:"url"`
	Icon          string `json:"icon,omitempty"`
	Permission    string `json:"permission,omitempty"`
	StaffOnly     bool   `json:"staff_only,omitempty"`
	SuperuserOnly bool   `json:"superuser_only,omitempty"`

	// Set by NavigationFor
	ResolvedURL string `json:"resolved_url,omitempty"`
	IsActive    bool   `json:"is_active,omitempty"`
}

// Config holds the portal prefixes, the four nav configurations and the
// named-route table used for URL resolution.
type Config struct {
	PortalPrefix     string
	StaffPrefix      string
	SuperadminPrefix string

	PublicNav     []NavItem
	PortalNav     []NavItem
	StaffNav      []NavItem
	SuperadminNav []NavItem

	Routes map[string]string
}

// DefaultConfig returns the dive-shop portal layout.
func DefaultConfig() Config {
	return Config{
		PortalPrefix:     "/portal/",
		StaffPrefix:      "/staff/",
		SuperadminPrefix: "/superadmin/",

		PublicNav: []NavItem{
			{Label: "Home", URL: "/"},
			{Label: "Excursions", URL: "/excursions/"},
			{Label: "Contact", URL: "/contact/"},
		},
		PortalNav: []NavItem{
			{Label: "My Bookings", URL: "portal-bookings", Icon: "calendar"},
			{Label: "My Profile", URL: "portal-profile", Icon: "user"},
			{Label: "Dive Log", URL: "portal-dive-log", Icon: "book"},
		},
		StaffNav: []NavItem{
			{Label: "Dashboard", URL: "staff-dashboard", Icon: "home", StaffOnly: true},
			{Label: "Chat", URL: "staff-chat", Icon: "chat", StaffOnly: true},
			{Label: "Leads", URL: "staff-leads", Icon: "users", StaffOnly: true, Permission: "crm.view"},
			{Label: "Excursions", URL: "staff-excursions", Icon: "anchor", StaffOnly: true, Permission: "operations.view"},
			{Label: "Pricing", URL: "staff-pricing", Icon: "tag", StaffOnly: true, Permission: "pricing.view"},
		},
		SuperadminNav: []NavItem{
			{Label: "Users", URL: "superadmin-users", Icon: "users", SuperuserOnly: true},
			{Label: "Settings", URL: "superadmin-settings", Icon: "cog", SuperuserOnly: true},
		},

		Routes: map[string]string{
			"portal-bookings":     "/portal/bookings/",
			"portal-profile":      "/portal/profile/",
			"portal-dive-log":     "/portal/dive-log/",
			"staff-dashboard":     "/staff/",
			"staff-chat":          "/staff/chat/",
			"staff-leads":         "/staff/leads/",
			"staff-excursions":    "/staff/excursions/",
			"staff-pricing":       "/staff/pricing/",
			"superadmin-users":    "/superadmin/users/",
			"superadmin-settings": "/superadmin/settings/",
		},
	}
}
