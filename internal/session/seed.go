package session

import "noticeboard/internal/models"

// SeedCredentials are the two accounts every fresh process starts with.
func SeedCredentials() []Credential {
	return []Credential{
		{
			User:     models.User{ID: "1", Name: "Admin User", Email: "admin@example.com", Role: models.RoleAdmin},
			Password: "admin123",
		},
		{
			User:     models.User{ID: "2", Name: "Regular User", Email: "user@example.com", Role: models.RoleUser},
			Password: "user123",
		},
	}
}
