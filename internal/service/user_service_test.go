package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"foodjournal/internal/cache"
	apperrors "foodjournal/internal/errors"
	"foodjournal/internal/model"
)

func TestUserService_GetByUsername(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 1, Username: "alice"}, nil)

		svc := NewUserService(mockRepo, (*cache.Client)(nil))
		user, err := svc.GetByUsername(context.Background(), "alice")

		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown username", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, (*cache.Client)(nil))
		_, err := svc.GetByUsername(context.Background(), "ghost")

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_UpdateAboutMe(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Username: "alice"}, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.AboutMe == "Home cook, mostly pasta."
	})).Return(nil)

	svc := NewUserService(mockRepo, (*cache.Client)(nil))
	user, err := svc.UpdateAboutMe(context.Background(), 1, "Home cook, mostly pasta.")

	assert.NoError(t, err)
	assert.Equal(t, "Home cook, mostly pasta.", user.AboutMe)
	mockRepo.AssertExpectations(t)
}
