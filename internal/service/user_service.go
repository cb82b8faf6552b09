package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

type ProfileUpdateRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func (s *UserService) Get(id uint) (*model.User, error) {
	return s.UserRepo.FindByID(id)
}

func (s *UserService) UpdateProfile(id uint, req ProfileUpdateRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if err := s.UserRepo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}
