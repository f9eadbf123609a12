package content

import (
	"context"
	"slices"
	"strings"

	"noticeboard/internal/apperr"
	"noticeboard/internal/models"
	"noticeboard/internal/notify"
	"noticeboard/internal/utils"

	"github.com/google/uuid"
)

func commentIndex(comments []models.Comment, id string) int {
	for i := range comments {
		if comments[i].ID == id {
			return i
		}
	}
	return -1
}

// AddComment appends a comment to the end of a post's thread. Any logged-in user may comment.
func (s *Store) AddComment(ctx context.Context, in models.CommentInput) (models.Comment, error) {
	in.Content = strings.TrimSpace(in.Content)
	var added models.Comment

	op := operation{
		name:    "add_comment",
		action:  "comment",
		failure: "Failed to add comment. Please try again.",
		latency: s.opts.Latency,
		success: notify.Success("Comment added", "Your comment has been posted successfully."),
	}
	check := func(_ models.User, posts []models.Post) error {
		if err := utils.ValidateStruct(in); err != nil {
			return apperr.Invalid(err)
		}
		if indexOf(posts, in.PostID) < 0 {
			return errPostMissing
		}
		return nil
	}
	apply := func(actor models.User, posts []models.Post) ([]models.Post, error) {
		i := indexOf(posts, in.PostID)
		if i < 0 {
			return nil, errPostMissing
		}
		added = models.Comment{
			ID:         uuid.NewString(),
			PostID:     posts[i].ID,
			Content:    in.Content,
			AuthorID:   actor.ID,
			AuthorName: actor.Name,
			CreatedAt:  s.now(),
		}
		posts[i].Comments = append(posts[i].Comments, added)
		return posts, nil
	}

	if err := s.mutate(ctx, op, check, apply); err != nil {
		return models.Comment{}, err
	}
	return added, nil
}

// DeleteComment removes one comment. Its author and admins may delete it.
func (s *Store) DeleteComment(ctx context.Context, postID, commentID string) error {
	op := operation{
		name:    "delete_comment",
		action:  "delete a comment",
		failure: "Failed to delete comment. Please try again.",
		latency: s.opts.Latency,
		success: notify.Success("Comment deleted", "The comment has been removed successfully."),
	}
	check := func(actor models.User, posts []models.Post) error {
		i := indexOf(posts, postID)
		if i < 0 {
			return errPostMissing
		}
		j := commentIndex(posts[i].Comments, commentID)
		if j < 0 {
			return errCommentMissing
		}
		if !posts[i].Comments[j].CanDelete(actor) {
			return apperr.ErrForbidden
		}
		return nil
	}
	apply := func(_ models.User, posts []models.Post) ([]models.Post, error) {
		i := indexOf(posts, postID)
		if i < 0 {
			return nil, errPostMissing
		}
		j := commentIndex(posts[i].Comments, commentID)
		if j < 0 {
			return nil, errCommentMissing
		}
		posts[i].Comments = slices.Delete(posts[i].Comments, j, j+1)
		return posts, nil
	}

	return s.mutate(ctx, op, check, apply)
}

// ToggleLike adds the actor to the post's like set, or removes them if already present.
// It returns the post as it stands afterwards. Success sends no notification.
func (s *Store) ToggleLike(ctx context.Context, postID string) (models.Post, error) {
	var result models.Post

	op := operation{
		name:    "toggle_like",
		action:  "like posts",
		failure: "Failed to update like status. Please try again.",
		latency: s.opts.LikeLatency,
	}
	check := func(_ models.User, posts []models.Post) error {
		if indexOf(posts, postID) < 0 {
			return errPostMissing
		}
		return nil
	}
	apply := func(actor models.User, posts []models.Post) ([]models.Post, error) {
		i := indexOf(posts, postID)
		if i < 0 {
			return nil, errPostMissing
		}
		p := &posts[i]
		if j := slices.Index(p.Likes, actor.ID); j >= 0 {
			p.Likes = slices.Delete(p.Likes, j, j+1)
		} else {
			p.Likes = append(p.Likes, actor.ID)
		}
		result = *p
		return posts, nil
	}

	if err := s.mutate(ctx, op, check, apply); err != nil {
		return models.Post{}, err
	}
	return result.Clone(), nil
}
