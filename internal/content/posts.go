package content

import (
	"context"
	"strings"

	"noticeboard/internal/apperr"
	"noticeboard/internal/models"
	"noticeboard/internal/notify"
	"noticeboard/internal/utils"

	"github.com/google/uuid"
)

func normalizePost(in models.PostInput) models.PostInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	return in
}

// CreatePost publishes a new post at the head of the collection. Only admins may post.
func (s *Store) CreatePost(ctx context.Context, in models.PostInput) (models.Post, error) {
	in = normalizePost(in)
	var created models.Post

	op := operation{
		name:    "create_post",
		action:  "create a post",
		failure: "Failed to create post. Please try again.",
		latency: s.opts.Latency,
		success: notify.Success("Post created", "Your post has been published successfully."),
	}
	check := func(actor models.User, _ []models.Post) error {
		if !actor.IsAdmin() {
			return apperr.ErrForbidden
		}
		return apperr.Invalid(utils.ValidateStruct(in))
	}
	apply := func(actor models.User, posts []models.Post) ([]models.Post, error) {
		now := s.now()
		created = models.Post{
			ID:          uuid.NewString(),
			Title:       in.Title,
			Description: in.Description,
			Category:    in.Category,
			AuthorID:    actor.ID,
			AuthorName:  actor.Name,
			CreatedAt:   now,
			UpdatedAt:   now,
			Comments:    []models.Comment{},
			Likes:       []string{},
		}
		return append([]models.Post{created}, posts...), nil
	}

	if err := s.mutate(ctx, op, check, apply); err != nil {
		return models.Post{}, err
	}
	return created.Clone(), nil
}

// UpdatePost replaces title, description and category and refreshes updatedAt.
// Authorship and creation time are kept.
func (s *Store) UpdatePost(ctx context.Context, id string, in models.PostInput) (models.Post, error) {
	in = normalizePost(in)
	var updated models.Post

	op := operation{
		name:    "update_post",
		action:  "update a post",
		failure: "Failed to update post. Please try again.",
		latency: s.opts.Latency,
		success: notify.Success("Post updated", "Your post has been updated successfully."),
	}
	check := func(actor models.User, posts []models.Post) error {
		i := indexOf(posts, id)
		if i < 0 {
			return errPostMissing
		}
		if !posts[i].CanManage(actor) {
			return apperr.ErrForbidden
		}
		return apperr.Invalid(utils.ValidateStruct(in))
	}
	apply := func(_ models.User, posts []models.Post) ([]models.Post, error) {
		i := indexOf(posts, id)
		if i < 0 {
			return nil, errPostMissing
		}
		p := &posts[i]
		p.Title = in.Title
		p.Description = in.Description
		p.Category = in.Category
		p.UpdatedAt = s.now()
		updated = *p
		return posts, nil
	}

	if err := s.mutate(ctx, op, check, apply); err != nil {
		return models.Post{}, err
	}
	return updated.Clone(), nil
}

// DeletePost removes a post together with all of its comments.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	op := operation{
		name:    "delete_post",
		action:  "delete a post",
		failure: "Failed to delete post. Please try again.",
		latency: s.opts.Latency,
		success: notify.Success("Post deleted", "The post has been successfully deleted."),
	}
	check := func(actor models.User, posts []models.Post) error {
		i := indexOf(posts, id)
		if i < 0 {
			return errPostMissing
		}
		if !posts[i].CanManage(actor) {
			return apperr.ErrForbidden
		}
		return nil
	}
	apply := func(_ models.User, posts []models.Post) ([]models.Post, error) {
		i := indexOf(posts, id)
		if i < 0 {
			return nil, errPostMissing
		}
		return append(posts[:i], posts[i+1:]...), nil
	}

	return s.mutate(ctx, op, check, apply)
}
