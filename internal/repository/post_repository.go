package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"miniblog/internal/model"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(postID uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post by id failed: %w", err)
	}
	return &post, nil
}

// List returns posts in insertion order.
func (r *PostRepository) List(offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.Order("post_id").Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts failed: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) Update(post *model.Post) error {
	if err := r.db.Save(post).Error; err != nil {
		return fmt.Errorf("update post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) Delete(postID uint) error {
	if err := r.db.Delete(&model.Post{}, postID).Error; err != nil {
		return fmt.Errorf("delete post failed: %w", err)
	}
	return nil
}

// IncrementViews folds one view event into the counter with a single atomic
// update. A vanished post is not an error for the worker.
func (r *PostRepository) IncrementViews(postID uint) error {
	err := r.db.Model(&model.Post{}).Where("post_id = ?", postID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return fmt.Errorf("increment post views failed: %w", err)
	}
	return nil
}
