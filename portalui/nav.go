package portalui

import "strings"

// Portal contexts, resolved from the request path.
const (
	ContextPublic     = "public"
	ContextPortal     = "portal"
	ContextStaff      = "staff"
	ContextSuperadmin = "superadmin"
)

// User is the minimal identity surface the nav filter needs.
type User interface {
	IsAuthenticated() bool
	IsStaff() bool
	IsSuperuser() bool
	HasModulePermission(module, action string) bool
}

// ContextForPath maps a request path to its portal context by prefix.
func (c Config) ContextForPath(path string) string {
	switch {
	case strings.HasPrefix(path, c.SuperadminPrefix):
		return ContextSuperadmin
	case strings.HasPrefix(path, c.StaffPrefix):
		return ContextStaff
	case strings.HasPrefix(path, c.PortalPrefix):
		return ContextPortal
	default:
		return ContextPublic
	}
}

// ResolveURL turns a nav item's URL into a concrete path. Rooted and
// absolute URLs pass through; otherwise the named-route table is
// consulted, falling back to the raw value. Empty URLs resolve to "#".
func (c Config) ResolveURL(item NavItem) string {
	url := item.URL
	if url == "" {
		return "#"
	}
	if strings.HasPrefix(url, "/") || strings.HasPrefix(url, "http") {
		return url
	}
	if resolved, ok := c.Routes[url]; ok {
		return resolved
	}
	return url
}

// NavigationFor returns the filtered, URL-resolved navigation for the
// portal context of the given path. Superusers pass every check;
// anonymous users only see unrestricted items.
func (c Config) NavigationFor(path string, user User) []NavItem {
	context := c.ContextForPath(path)

	var items []NavItem
	switch context {
	case ContextSuperadmin:
		items = c.SuperadminNav
	case ContextStaff:
		items = c.StaffNav
	case ContextPortal:
		items = c.PortalNav
	default:
		items = c.PublicNav
	}

	if user == nil || !user.IsAuthenticated() {
		return c.anonymousItems(items, path)
	}
	return c.filterItems(items, user, path)
}

func (c Config) filterItems(items []NavItem, user User, path string) []NavItem {
	filtered := make([]NavItem, 0, len(items))
	for _, item := range items {
		if item.SuperuserOnly && !user.IsSuperuser() {
			continue
		}
		if item.StaffOnly && !user.IsStaff() {
			continue
		}
		if item.Permission != "" && !user.IsSuperuser() {
			module, action := splitPermission(item.Permission)
			if !user.HasModulePermission(module, action) {
				continue
			}
		}

		item.ResolvedURL = c.ResolveURL(item)
		item.IsActive = strings.HasPrefix(path, item.ResolvedURL)
		filtered = append(filtered, item)
	}
	return filtered
}

func (c Config) anonymousItems(items []NavItem, path string) []NavItem {
	visible := make([]NavItem, 0, len(items))
	for _, item := range items {
		if item.Permission != "" || item.StaffOnly || item.SuperuserOnly {
			continue
		}
		item.ResolvedURL = c.ResolveURL(item)
		item.IsActive = strings.HasPrefix(path, item.ResolvedURL)
		visible = append(visible, item)
	}
	return visible
}

// splitPermission breaks "module.action" apart, defaulting the action
// to "view".
func splitPermission(permission string) (string, string) {
	parts := strings.SplitN(permission, ".", 2)
	if len(parts) == 2 && parts[1] != "" {
		return parts[0], parts[1]
	}
	return parts[0], "view"
}
