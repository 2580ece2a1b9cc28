package app

import (
	"context"

	"armor-vision/internal/domain/entity"
	"armor-vision/internal/domain/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.SetState(state)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SetColor меняет цвет противника; неизвестное значение не сохраняется.
func (s *UserService) SetColor(ctx context.Context, userID, chatID int64, value string) (*entity.User, bool, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, false, err
	}

	color, ok := entity.ParseEnemyColor(value)
	if !ok {
		return user, false, nil
	}
	if err := s.repo.UpdateColor(ctx, userID, color); err != nil {
		return nil, false, err
	}
	user.SetColor(color)
	return user, true, nil
}

func (s *UserService) BeginCheck(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingPhoto)
}

func (s *UserService) BeginProcessing(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateProcessing)
}

func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}
