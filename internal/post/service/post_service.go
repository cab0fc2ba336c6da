package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/asafonov/blog-backend/internal/common/logger"
	"github.com/asafonov/blog-backend/internal/post/domain"
	postrepo "github.com/asafonov/blog-backend/internal/post/repository"
	userdomain "github.com/asafonov/blog-backend/internal/user/domain"
)

type PostService struct {
	repo postrepo.Repository
	log  *logger.Logger
}

type PostServiceDeps struct {
	Repo postrepo.Repository
	Log  *logger.Logger
}

func NewPostService(deps PostServiceDeps) *PostService {
	return &PostService{
		repo: deps.Repo,
		log:  deps.Log,
	}
}

type CreatePostInput struct {
	Title   string
	Content string
}

// UpdatePostInput carries a partial update: nil fields keep the stored
// value, non-nil fields replace it. A set-but-empty string is a deliberate
// replacement, not an omission.
type UpdatePostInput struct {
	Title   *string
	Content *string
}

func (s *PostService) Create(ctx context.Context, callerID string, input CreatePostInput) (domain.Post, error) {
	author, err := parseCallerID(callerID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "post_create_bad_caller",
		}).Errorf("create post failed: caller id %q is not a uuid: %v", callerID, err)
		return domain.Post{}, ErrInvalidCallerID
	}

	post := domain.Post{
		Title:    input.Title,
		Content:  input.Content,
		AuthorID: author,
	}

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"author_id": string(author),
			"action":    "post_create_failed",
		}).Errorf("create post failed: %v", err)
		return domain.Post{}, ErrPostStorageFailed.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"post_id":   string(created.ID),
		"author_id": string(author),
		"action":    "post_create_success",
	}).Info("post created")

	incrementPostsCreated()
	return created, nil
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "post_list_failed",
		}).Errorf("list posts failed: %v", err)
		return nil, ErrPostStorageFailed.WithCause(err)
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, rawID string) (domain.Post, error) {
	id, err := parsePostID(rawID)
	if err != nil {
		return domain.Post{}, ErrInvalidPostID
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, postrepo.ErrPostNotFound) {
			return domain.Post{}, ErrPostNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"post_id": string(id),
			"action":  "post_get_failed",
		}).Errorf("get post failed: %v", err)
		return domain.Post{}, ErrPostStorageFailed.WithCause(err)
	}

	return post, nil
}

// Update applies a partial update to a post the caller owns. The ownership
// check runs against the loaded post before anything is written; a caller
// that does not own the post leaves storage untouched. The updated post is
// re-read afterwards so the response reflects what storage holds.
func (s *PostService) Update(ctx context.Context, callerID, rawID string, input UpdatePostInput) (domain.Post, error) {
	id, err := parsePostID(rawID)
	if err != nil {
		return domain.Post{}, ErrInvalidPostID
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, postrepo.ErrPostNotFound) {
			return domain.Post{}, ErrPostNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"post_id": string(id),
			"action":  "post_update_fetch_failed",
		}).Errorf("update post failed: %v", err)
		return domain.Post{}, ErrPostStorageFailed.WithCause(err)
	}

	if string(post.AuthorID) != callerID {
		s.log.WithFields(ctx, logger.Fields{
			"post_id":   string(id),
			"author_id": string(post.AuthorID),
			"action":    "post_update_denied",
		}).Warn("update post denied: caller is not the author")
		incrementOwnershipDenied("update")
		return domain.Post{}, ErrNotOwnerUpdate
	}

	title := post.Title
	if input.Title != nil {
		title = *input.Title
	}
	content := post.Content
	if input.Content != nil {
		content = *input.Content
	}

	if err := s.repo.Update(ctx, id, title, content); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"post_id": string(id),
			"action":  "post_update_failed",
		}).Errorf("update post failed: %v", err)
		return domain.Post{}, ErrPostStorageFailed.WithCause(err)
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, postrepo.ErrPostNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"post_id": string(id),
				"action":  "post_update_reread_miss",
			}).Warn("update post: post vanished between write and re-read")
			return domain.Post{}, ErrPostNotFoundAfterUpdate
		}
		s.log.WithFields(ctx, logger.Fields{
			"post_id": string(id),
			"action":  "post_update_reread_failed",
		}).Errorf("update post failed: re-read error: %v", err)
		return domain.Post{}, ErrPostStorageFailed.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"post_id": string(id),
		"action":  "post_update_success",
	}).Info("post updated")

	incrementPostsUpdated()
	return updated, nil
}

// Delete removes a post the caller owns. Like Update, the ownership check
// happens on the loaded post before the delete is issued.
func (s *PostService) Delete(ctx context.Context, callerID, rawID string) error {
	id, err := parsePostID(rawID)
	if err != nil {
		return ErrInvalidPostID
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, postrepo.ErrPostNotFound) {
			return ErrPostNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"post_id": string(id),
			"action":  "post_delete_fetch_failed",
		}).Errorf("delete post failed: %v", err)
		return ErrPostStorageFailed.WithCause(err)
	}

	if string(post.AuthorID) != callerID {
		s.log.WithFields(ctx, logger.Fields{
			"post_id":   string(id),
			"author_id": string(post.AuthorID),
			"action":    "post_delete_denied",
		}).Warn("delete post denied: caller is not the author")
		incrementOwnershipDenied("delete")
		return ErrNotOwnerDelete
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"post_id": string(id),
			"action":  "post_delete_failed",
		}).Errorf("delete post failed: %v", err)
		return ErrPostStorageFailed.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"post_id": string(id),
		"action":  "post_delete_success",
	}).Info("post deleted")

	incrementPostsDeleted()
	return nil
}

// parsePostID canonicalizes a raw path segment into a post id via uuid
// parsing, so "00000000-0000-0000-0000-000000000000" and its uppercase
// form address the same post.
func parsePostID(raw string) (domain.ID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", err
	}
	return domain.ID(id.String()), nil
}

func parseCallerID(raw string) (userdomain.ID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", err
	}
	return userdomain.ID(id.String()), nil
}
