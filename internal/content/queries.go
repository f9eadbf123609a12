package content

import (
	"cmp"
	"slices"
	"strings"

	"noticeboard/internal/models"
)

// GetPostByID returns a copy of the post with the given id.
func (s *Store) GetPostByID(id string) (models.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.posts, id); i >= 0 {
		return s.posts[i].Clone(), true
	}
	return models.Post{}, false
}

// Posts returns the whole collection, newest insertion first.
func (s *Store) Posts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePosts(s.posts)
}

// SearchPosts matches query case-insensitively against title, description and category.
// An empty query returns everything in collection order.
func (s *Store) SearchPosts(query string) []models.Post {
	if query == "" {
		return s.Posts()
	}
	key := strings.ToLower(query)

	// the read lock keeps a concurrent mutation from purging between compute and store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if hit, ok := s.cache.Get(key); ok {
		s.opts.Metrics.RecordSearch(true)
		return clonePosts(hit)
	}
	s.opts.Metrics.RecordSearch(false)

	results := []models.Post{}
	for _, p := range s.posts {
		if strings.Contains(strings.ToLower(p.Title), key) ||
			strings.Contains(strings.ToLower(p.Description), key) ||
			strings.Contains(strings.ToLower(p.Category), key) {
			results = append(results, p.Clone())
		}
	}
	s.cache.Set(key, results, 0)
	return clonePosts(results)
}

func (s *Store) Categories() []string {
	return models.Categories()
}

// PostsByCategory filters by exact category. "" and "all" mean no filter.
func (s *Store) PostsByCategory(category string) []models.Post {
	if category == "" || strings.EqualFold(category, "all") {
		return s.Posts()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Post{}
	for _, p := range s.posts {
		if p.Category == category {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Featured returns the n most recently created posts, newest first.
func (s *Store) Featured(n int) []models.Post {
	posts := s.Posts()
	slices.SortStableFunc(posts, func(a, b models.Post) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if n < len(posts) {
		posts = posts[:n]
	}
	return posts
}

type CategoryCount struct {
	Category string
	Count    int
}

// CategoryCounts counts posts per category, in category order.
func (s *Store) CategoryCounts() []CategoryCount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int, len(s.posts))
	for _, p := range s.posts {
		counts[p.Category]++
	}
	out := make([]CategoryCount, 0)
	for _, c := range models.Categories() {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	return out
}

// Stats are collection-wide totals for the admin dashboard.
type Stats struct {
	Posts    int
	Comments int
	Likes    int
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{Posts: len(s.posts)}
	for _, p := range s.posts {
		st.Comments += len(p.Comments)
		st.Likes += len(p.Likes)
	}
	return st
}

// UserComment is a comment together with the title of the post it belongs to.
type UserComment struct {
	models.Comment
	PostTitle string
}

// Activity is what one user has contributed.
type Activity struct {
	Posts      []models.Post
	Comments   []UserComment
	LikedCount int
}

// UserActivity collects a user's posts, comments (newest first) and the number of posts they like.
func (s *Store) UserActivity(userID string) Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a := Activity{Posts: []models.Post{}, Comments: []UserComment{}}
	for _, p := range s.posts {
		if p.AuthorID == userID {
			a.Posts = append(a.Posts, p.Clone())
		}
		for _, c := range p.Comments {
			if c.AuthorID == userID {
				a.Comments = append(a.Comments, UserComment{Comment: c, PostTitle: p.Title})
			}
		}
		if p.LikedBy(userID) {
			a.LikedCount++
		}
	}
	slices.SortStableFunc(a.Comments, func(x, y UserComment) int {
		return cmp.Compare(y.CreatedAt.UnixNano(), x.CreatedAt.UnixNano())
	})
	return a
}
