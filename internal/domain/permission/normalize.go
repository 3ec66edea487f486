package permission

import (
	"regexp"
	"strings"
)

var segmentPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ViewPermissionForPath maps a route path to its view permission: "/expenses" gives view_expenses.
// Only the first path segment is used. An unusable path gives "".
func ViewPermissionForPath(path string) Permission {
	path = strings.Trim(strings.TrimSpace(path), "/")
	resource, _, _ := strings.Cut(path, "/")
	resource = normalizeSegment(resource)
	if resource == "" {
		return ""
	}
	return Permission("view_" + resource)
}

// FromResourceAction maps "resource:action" to the action_resource token: "expenses:create" gives create_expenses.
// Malformed input gives "".
func FromResourceAction(s string) Permission {
	resource, action, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return ""
	}
	resource = normalizeSegment(resource)
	action = normalizeSegment(action)
	if resource == "" || action == "" {
		return ""
	}
	return Permission(action + "_" + resource)
}

func normalizeSegment(s string) string {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if !segmentPattern.MatchString(s) {
		return ""
	}
	return s
}
