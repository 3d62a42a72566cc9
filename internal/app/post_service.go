package app

import (
	"context"
	"log"
	"strings"

	"miniblog/internal/model"
	"miniblog/internal/platform/rabbitmq"
	"miniblog/internal/repository"
)

const (
	defaultPostLimit = 10
	maxPostLimit     = 100
)

// postCache and viewPublisher are satisfied by cache.PostCache and
// rabbitmq.ViewPublisher. Both are optional; a nil dependency disables the
// concern without changing CRUD behavior.
type postCache interface {
	Get(ctx context.Context, postID uint) (*model.Post, bool, error)
	Set(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, postID uint) error
}

type viewPublisher interface {
	Publish(ctx context.Context, event rabbitmq.ViewEvent) error
}

type PostService struct {
	postRepo  *repository.PostRepository
	cache     postCache
	publisher viewPublisher
}

type CreatePostInput struct {
	UserID  uint
	Title   string
	Content string
	Status  string
}

type UpdatePostInput struct {
	Title   string
	Content string
	Status  string
}

func NewPostService(postRepo *repository.PostRepository, cache postCache, publisher viewPublisher) *PostService {
	return &PostService{
		postRepo:  postRepo,
		cache:     cache,
		publisher: publisher,
	}
}

func (s *PostService) Create(ctx context.Context, input CreatePostInput) (*model.Post, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	status := strings.TrimSpace(input.Status)
	if input.UserID == 0 || title == "" || content == "" {
		return nil, ErrInvalidInput
	}
	if status == "" {
		status = model.PostStatusPublic
	}

	post := &model.Post{
		UserID:  input.UserID,
		Title:   title,
		Content: content,
		Status:  status,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Get(ctx context.Context, postID uint) (*model.Post, error) {
	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx, postID)
		if err != nil {
			log.Printf("post cache read failed: %v", err)
		} else if hit {
			s.recordView(ctx, postID)
			return cached, nil
		}
	}

	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, post); err != nil {
			log.Printf("post cache write failed: %v", err)
		}
	}
	s.recordView(ctx, post.PostID)
	return post, nil
}

func (s *PostService) List(ctx context.Context, offset, limit int) ([]model.Post, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultPostLimit
	}
	if limit > maxPostLimit {
		limit = maxPostLimit
	}
	return s.postRepo.List(offset, limit)
}

func (s *PostService) Update(ctx context.Context, postID uint, input UpdatePostInput) (*model.Post, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	status := strings.TrimSpace(input.Status)
	if title == "" || content == "" || status == "" {
		return nil, ErrInvalidInput
	}

	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	post.Title = title
	post.Content = content
	post.Status = status
	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}

	s.invalidate(ctx, postID)
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, postID uint) (*model.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if err := s.postRepo.Delete(postID); err != nil {
		return nil, err
	}

	s.invalidate(ctx, postID)
	return post, nil
}

// recordView hands the view to the persist pipeline. Reads never fail on a
// broker problem.
func (s *PostService) recordView(ctx context.Context, postID uint) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, rabbitmq.ViewEvent{PostID: postID}); err != nil {
		log.Printf("publish view event failed: %v", err)
	}
}

func (s *PostService) invalidate(ctx context.Context, postID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, postID); err != nil {
		log.Printf("post cache invalidate failed: %v", err)
	}
}
