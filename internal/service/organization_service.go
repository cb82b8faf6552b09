package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"

	"github.com/google/uuid"
)

type OrganizationService struct {
	OrgRepo  *repository.OrganizationRepository
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewOrganizationService(orgRepo *repository.OrganizationRepository, userRepo *repository.UserRepository, storage *StorageService) *OrganizationService {
	return &OrganizationService{
		OrgRepo:  orgRepo,
		UserRepo: userRepo,
		Storage:  storage,
	}
}

type OrganizationRequest struct {
	Name            string `json:"name" binding:"required"`
	Slug            string `json:"slug" binding:"required"`
	Description     string `json:"description"`
	RevenueSharePct int    `json:"revenueSharePct"`
}

// Create sets up the brand and attaches the owner to it.
func (s *OrganizationService) Create(ownerID uint, req OrganizationRequest) (*model.Organization, error) {
	org := &model.Organization{
		Name:            req.Name,
		Slug:            req.Slug,
		Description:     req.Description,
		OwnerID:         ownerID,
		RevenueSharePct: req.RevenueSharePct,
	}
	if err := s.OrgRepo.Create(org); err != nil {
		return nil, err
	}

	owner, err := s.UserRepo.FindByID(ownerID)
	if err != nil {
		return nil, err
	}
	owner.OrganizationID = &org.ID
	if err := s.UserRepo.Save(owner); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *OrganizationService) Get(id uint) (*model.Organization, error) {
	return s.OrgRepo.FindByID(id)
}

func (s *OrganizationService) List(page, limit int) ([]model.Organization, int64, error) {
	return s.OrgRepo.List(page, limit)
}

func (s *OrganizationService) Update(id uint, req OrganizationRequest) (*model.Organization, error) {
	org, err := s.OrgRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	org.Name = req.Name
	org.Slug = req.Slug
	org.Description = req.Description
	org.RevenueSharePct = req.RevenueSharePct
	if err := s.OrgRepo.Save(org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *OrganizationService) Delete(id uint) error {
	return s.OrgRepo.Delete(id)
}

// UploadLogo stores the brand logo and saves its URL.
func (s *OrganizationService) UploadLogo(id uint, file *multipart.FileHeader) (*model.Organization, error) {
	org, err := s.OrgRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	objectName := fmt.Sprintf("organizations/%d/logo-%s%s", id, uuid.New().String(), filepath.Ext(file.Filename))
	url, err := s.Storage.Upload(context.Background(), objectName, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	org.LogoURL = url
	if err := s.OrgRepo.Save(org); err != nil {
		return nil, err
	}
	return org, nil
}
