package service

import (
	"context"
	"fmt"
	"io"

	"gorm.io/gorm"

	apperrors "foodjournal/internal/errors"
	"foodjournal/internal/model"
	"foodjournal/internal/repository"
	"foodjournal/internal/storage"
	"foodjournal/internal/upload"
)

// DefaultFeedLimit bounds feed pages when the caller gives no limit.
const DefaultFeedLimit = 20

// CreateDishInput carries the validated fields the front end hands to the
// upload pipeline.
type CreateDishInput struct {
	Title       string
	Comment     string
	Public      bool
	Image       io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// DishUpdate carries the mutable dish fields; nil means leave unchanged.
// The image key is immutable after creation and cannot appear here.
type DishUpdate struct {
	Title   *string
	Comment *string
	Public  *bool
}

// FoodService handles dish records and feeds.
type FoodService interface {
	// CreateDish stages the image and runs the upload-then-commit cycle. A
	// failed upload is not an error to the caller: the returned item has
	// Persisted=false and no durable row exists.
	CreateDish(ctx context.Context, ownerID uint, in CreateDishInput) (*model.FoodItem, error)
	GetDish(ctx context.Context, id, viewerID uint) (*model.FoodItem, error)
	UpdateDish(ctx context.Context, ownerID, id uint, update DishUpdate) (*model.FoodItem, error)
	FeedFor(ctx context.Context, userID uint, limit, offset int) ([]model.FoodItem, error)
	PublicFeed(ctx context.Context, limit, offset int) ([]model.FoodItem, error)
	DishesOf(ctx context.Context, userID uint, limit, offset int) ([]model.FoodItem, error)
	ImageURL(item *model.FoodItem) string
}

type foodService struct {
	foodRepo repository.FoodRepository
	store    storage.ObjectStore
}

// NewFoodService creates a new food service.
func NewFoodService(foodRepo repository.FoodRepository, store storage.ObjectStore) FoodService {
	return &foodService{
		foodRepo: foodRepo,
		store:    store,
	}
}

// CreateDish spools the image and creates the record inside one transaction
// that also touches the owner's last-seen timestamp. When the upload is
// discarded the last-seen write still commits; only the dish row is expunged.
func (s *foodService) CreateDish(ctx context.Context, ownerID uint, in CreateDishInput) (*model.FoodItem, error) {
	staged, err := model.StageAsset(in.Image, in.Filename, in.ContentType, in.Size)
	if err != nil {
		return nil, fmt.Errorf("stage image: %w", err)
	}

	item := &model.FoodItem{
		Title:   in.Title,
		Comment: in.Comment,
		Public:  in.Public,
		UserID:  ownerID,
	}
	item.AttachAsset(staged)

	err = s.foodRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.FoodRepository) error {
		if err := repo.TouchOwnerLastSeen(ctx, ownerID); err != nil {
			return fmt.Errorf("touch last seen: %w", err)
		}
		if err := repo.Create(ctx, item); err != nil {
			if upload.IsDiscard(err) {
				// Terminal for this attempt: the row never reached durable
				// storage. Unrelated writes in this transaction still commit.
				return nil
			}
			return fmt.Errorf("create dish: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// GetDish returns a dish by id. Private dishes are visible only to their
// owner; everyone else gets not-found.
func (s *foodService) GetDish(ctx context.Context, id, viewerID uint) (*model.FoodItem, error) {
	item, err := s.foodRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrDishNotFound
		}
		return nil, err
	}
	if !item.Public && item.UserID != viewerID {
		return nil, apperrors.ErrDishNotFound
	}
	item.Persisted = true
	return item, nil
}

// UpdateDish applies owner-only edits to title, comment and visibility.
func (s *foodService) UpdateDish(ctx context.Context, ownerID, id uint, update DishUpdate) (*model.FoodItem, error) {
	item, err := s.foodRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrDishNotFound
		}
		return nil, err
	}
	if item.UserID != ownerID {
		return nil, apperrors.ErrNotOwner
	}

	if update.Title != nil {
		item.Title = *update.Title
	}
	if update.Comment != nil {
		item.Comment = *update.Comment
	}
	if update.Public != nil {
		item.Public = *update.Public
	}

	if err := s.foodRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update dish: %w", err)
	}
	item.Persisted = true
	return item, nil
}

// FeedFor returns the personalized feed for a user.
func (s *foodService) FeedFor(ctx context.Context, userID uint, limit, offset int) ([]model.FoodItem, error) {
	return s.foodRepo.FeedFor(ctx, userID, normalizeLimit(limit), offset)
}

// PublicFeed returns the anonymous feed of public dishes.
func (s *foodService) PublicFeed(ctx context.Context, limit, offset int) ([]model.FoodItem, error) {
	return s.foodRepo.ListPublic(ctx, normalizeLimit(limit), offset)
}

// DishesOf returns a user's own dishes, newest first.
func (s *foodService) DishesOf(ctx context.Context, userID uint, limit, offset int) ([]model.FoodItem, error) {
	return s.foodRepo.ListByOwner(ctx, userID, normalizeLimit(limit), offset)
}

// ImageURL derives the public URL for a dish image.
func (s *foodService) ImageURL(item *model.FoodItem) string {
	return s.store.ObjectURL(item.ImageKey)
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return DefaultFeedLimit
	}
	return limit
}
