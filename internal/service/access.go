package service

import "foodsafety/internal/models"

// HasRole reports whether role satisfies the required role set. An empty
// required set means the route is open to any authenticated user. A plain
// function, no runtime metadata inspection.
func HasRole(required []models.Role, role models.Role) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if r == role {
			return true
		}
	}
	return false
}
