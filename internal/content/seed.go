package content

import (
	"time"

	"noticeboard/internal/models"
)

const day = 24 * time.Hour

// SeedPosts builds the three example notices with timestamps relative to now.
func SeedPosts(now time.Time) []models.Post {
	now = now.UTC().Round(0)
	at := func(ago time.Duration) time.Time { return now.Add(-ago) }

	return []models.Post{
		{
			ID:          "1",
			Title:       "Welcome to the Online Notice Board",
			Description: "This is the official announcement board for our organization. Here you'll find important updates, announcements, and information.",
			Category:    "Announcements",
			AuthorID:    "1",
			AuthorName:  "Admin User",
			CreatedAt:   at(7 * day),
			UpdatedAt:   at(7 * day),
			Comments: []models.Comment{
				{
					ID:         "1",
					PostID:     "1",
					Content:    "Great to have this platform for communication!",
					AuthorID:   "2",
					AuthorName: "Regular User",
					CreatedAt:  at(6 * day),
				},
			},
			Likes: []string{"2"},
		},
		{
			ID:          "2",
			Title:       "Upcoming System Maintenance",
			Description: "The system will be down for maintenance this weekend from Saturday 10PM to Sunday 2AM. Please plan accordingly.",
			Category:    "Maintenance",
			AuthorID:    "1",
			AuthorName:  "Admin User",
			CreatedAt:   at(3 * day),
			UpdatedAt:   at(3 * day),
			Comments:    []models.Comment{},
			Likes:       []string{},
		},
		{
			ID:          "3",
			Title:       "Annual Company Picnic",
			Description: "Join us for the annual company picnic on July 15th at Central Park. Food, games, and activities will be provided for all employees and their families.",
			Category:    "Events",
			AuthorID:    "1",
			AuthorName:  "Admin User",
			CreatedAt:   at(1 * day),
			UpdatedAt:   at(1 * day),
			Comments: []models.Comment{
				{
					ID:         "2",
					PostID:     "3",
					Content:    "Looking forward to it! Will there be vegetarian options?",
					AuthorID:   "2",
					AuthorName: "Regular User",
					CreatedAt:  at(12 * time.Hour),
				},
			},
			Likes: []string{"2"},
		},
	}
}
