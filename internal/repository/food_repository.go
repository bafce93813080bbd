package repository

import (
	"context"

	"gorm.io/gorm"

	"foodjournal/internal/model"
)

// FoodRepository defines persistence operations on food items.
type FoodRepository interface {
	Create(ctx context.Context, item *model.FoodItem) error
	Update(ctx context.Context, item *model.FoodItem) error
	FindByID(ctx context.Context, id uint) (*model.FoodItem, error)
	ListByOwner(ctx context.Context, userID uint, limit, offset int) ([]model.FoodItem, error)
	ListPublic(ctx context.Context, limit, offset int) ([]model.FoodItem, error)
	FeedFor(ctx context.Context, userID uint, limit, offset int) ([]model.FoodItem, error)
	// WithTransaction runs fn against a transactional repository bound to the
	// same pipeline (registered create callbacks included).
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo FoodRepository) error) error
	TouchOwnerLastSeen(ctx context.Context, userID uint) error
}

type foodRepository struct {
	db *gorm.DB
}

// NewFoodRepository builds a GORM-backed food repository.
func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) Create(ctx context.Context, item *model.FoodItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *foodRepository) Update(ctx context.Context, item *model.FoodItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *foodRepository) FindByID(ctx context.Context, id uint) (*model.FoodItem, error) {
	var item model.FoodItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *foodRepository) ListByOwner(ctx context.Context, userID uint, limit, offset int) ([]model.FoodItem, error) {
	var items []model.FoodItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&items).Error
	return items, err
}

// ListPublic returns the anonymous feed: public items only, newest first,
// id descending on creation-time ties.
func (r *foodRepository) ListPublic(ctx context.Context, limit, offset int) ([]model.FoodItem, error) {
	var items []model.FoodItem
	err := r.db.WithContext(ctx).
		Where("public = ?", true).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&items).Error
	return items, err
}

// FeedFor composes the personalized feed in a single SELECT: the user's own
// items (any visibility) plus public items of followed users, newest first,
// id descending on ties. Followed users' private items are excluded; only the
// owner sees those.
func (r *foodRepository) FeedFor(ctx context.Context, userID uint, limit, offset int) ([]model.FoodItem, error) {
	followed := r.db.Model(&model.Follow{}).
		Select("followed_id").
		Where("follower_id = ?", userID)

	var items []model.FoodItem
	err := r.db.WithContext(ctx).
		Where(
			r.db.Where("user_id = ?", userID).
				Or("public = ? AND user_id IN (?)", true, followed),
		).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&items).Error
	return items, err
}

func (r *foodRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo FoodRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &foodRepository{db: tx})
	})
}

func (r *foodRepository) TouchOwnerLastSeen(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
