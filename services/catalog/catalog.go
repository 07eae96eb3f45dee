package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	catalogRepo "tillpoint/database/repository/catalog"
	"tillpoint/models"
	"tillpoint/utils"
)

const uploadTimeout = 30 * time.Second

func (s *DefaultCatalogService) CreateBusiness(adminID string, input BusinessInput) (*models.Business, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, &utils.ValidationError{Message: "business name is required"}
	}
	if _, err := s.Catalog.GetBusinessByAdmin(adminID); err == nil {
		return nil, &utils.ConflictError{Message: "admin already owns a business"}
	} else if !errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing business: %w", err)
	}

	biz := &models.Business{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		AdminID:     adminID,
		CreatedAt:   time.Now(),
	}
	if err := s.Catalog.CreateBusiness(biz); err != nil {
		return nil, fmt.Errorf("failed to create business: %w", err)
	}
	return biz, nil
}

func (s *DefaultCatalogService) GetBusiness(businessID string) (*models.Business, error) {
	biz, err := s.Catalog.GetBusinessByID(businessID)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, &utils.NotFoundError{Resource: "business", ID: businessID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load business %s: %w", businessID, err)
	}
	return biz, nil
}

func (s *DefaultCatalogService) GetMyBusiness(adminID string) (*models.Business, error) {
	biz, err := s.Catalog.GetBusinessByAdmin(adminID)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, &utils.NotFoundError{Resource: "business"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load business for admin %s: %w", adminID, err)
	}
	return biz, nil
}

func (s *DefaultCatalogService) ListBusinesses() ([]models.Business, error) {
	return s.Catalog.GetAllBusinesses()
}

func (s *DefaultCatalogService) UpdateBusiness(adminID, businessID string, input BusinessInput) (*models.Business, error) {
	if _, err := s.requireOwnership(adminID, businessID); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if strings.TrimSpace(input.Name) != "" {
		fields["name"] = input.Name
	}
	if input.Description != "" {
		fields["description"] = input.Description
	}
	if len(fields) > 0 {
		if err := s.Catalog.UpdateBusiness(businessID, fields); err != nil {
			return nil, fmt.Errorf("failed to update business %s: %w", businessID, err)
		}
	}
	return s.GetBusiness(businessID)
}

// DeleteBusiness removes the business and, through the repository, every
// service and item beneath it.
func (s *DefaultCatalogService) DeleteBusiness(adminID, businessID string) error {
	if _, err := s.requireOwnership(adminID, businessID); err != nil {
		return err
	}
	if err := s.Catalog.DeleteBusiness(businessID); err != nil {
		return fmt.Errorf("failed to delete business %s: %w", businessID, err)
	}
	return nil
}

func (s *DefaultCatalogService) CreateService(adminID, businessID string, input ServiceInput) (*models.Service, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, &utils.ValidationError{Message: "service name is required"}
	}
	if _, err := s.requireOwnership(adminID, businessID); err != nil {
		return nil, err
	}
	svc := &models.Service{
		ID:          uuid.NewString(),
		BusinessID:  businessID,
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   time.Now(),
	}
	if err := s.Catalog.CreateService(svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (s *DefaultCatalogService) ListServices(businessID string) ([]models.Service, error) {
	if _, err := s.GetBusiness(businessID); err != nil {
		return nil, err
	}
	return s.Catalog.ListServices(businessID)
}

func (s *DefaultCatalogService) UpdateService(adminID, businessID, serviceID string, input ServiceInput) error {
	if _, err := s.requireOwnership(adminID, businessID); err != nil {
		return err
	}
	fields := map[string]any{}
	if strings.TrimSpace(input.Name) != "" {
		fields["name"] = input.Name
	}
	if input.Description != "" {
		fields["description"] = input.Description
	}
	if len(fields) == 0 {
		return &utils.ValidationError{Message: "no updatable fields provided"}
	}
	err := s.Catalog.UpdateService(businessID, serviceID, fields)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return &utils.NotFoundError{Resource: "service", ID: serviceID}
	}
	if err != nil {
		return fmt.Errorf("failed to update service %s: %w", serviceID, err)
	}
	return nil
}

// DeleteService removes the service and all items beneath it.
func (s *DefaultCatalogService) DeleteService(adminID, businessID, serviceID string) error {
	if _, err := s.requireOwnership(adminID, businessID); err != nil {
		return err
	}
	err := s.Catalog.DeleteService(businessID, serviceID)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return &utils.NotFoundError{Resource: "service", ID: serviceID}
	}
	if err != nil {
		return fmt.Errorf("failed to delete service %s: %w", serviceID, err)
	}
	return nil
}

func (s *DefaultCatalogService) CreateItem(adminID, businessID, serviceID string, input ItemInput) (*models.Item, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, &utils.ValidationError{Message: "item name is required"}
	}
	if input.Price < 0 {
		return nil, &utils.ValidationError{Message: "item price must not be negative"}
	}
	if _, err := s.requireOwnership(adminID, businessID); err != nil {
		return nil, err
	}
	it := &models.Item{
		ID:          uuid.NewString(),
		BusinessID:  businessID,
		ServiceID:   serviceID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		CreatedAt:   time.Now(),
	}
	if err := s.Catalog.CreateItem(it); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return it, nil
}

func (s *DefaultCatalogService) ListItems(businessID, serviceID, category string) ([]models.Item, error) {
	return s.Catalog.ListItems(businessID, serviceID, category)
}

func (s *DefaultCatalogService) UpdateItem(adminID, businessID, serviceID, itemID string, input ItemInput) error {
	if input.Price < 0 {
		return &utils.ValidationError{Message: "item price must not be negative"}
	}
	if _, err := s.requireOwnership(adminID, businessID); err != nil {
		return err
	}
	fields := map[string]any{}
	if strings.TrimSpace(input.Name) != "" {
		fields["name"] = input.Name
	}
	if input.Description != "" {
		fields["description"] = input.Description
	}
	if input.Price > 0 {
		fields["price"] = input.Price
	}
	if input.Category != "" {
		fields["category"] = input.Category
	}
	if len(fields) == 0 {
		return &utils.ValidationError{Message: "no updatable fields provided"}
	}
	err := s.Catalog.UpdateItem(businessID, serviceID, itemID, fields)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return &utils.NotFoundError{Resource: "item", ID: itemID}
	}
	if err != nil {
		return fmt.Errorf("failed to update item %s: %w", itemID, err)
	}
	return nil
}

func (s *DefaultCatalogService) DeleteItem(adminID, businessID, serviceID, itemID string) error {
	if _, err := s.requireOwnership(adminID, businessID); err != nil {
		return err
	}
	err := s.Catalog.DeleteItem(businessID, serviceID, itemID)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return &utils.NotFoundError{Resource: "item", ID: itemID}
	}
	if err != nil {
		return fmt.Errorf("failed to delete item %s: %w", itemID, err)
	}
	return nil
}

func (s *DefaultCatalogService) UploadItemImage(adminID, businessID, serviceID, itemID string, file any) (string, error) {
	if _, err := s.requireOwnership(adminID, businessID); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()
	res, err := s.Storage.Upload(ctx, file, "tillpoint/items")
	if err != nil {
		return "", fmt.Errorf("failed to upload item image: %w", err)
	}

	err = s.Catalog.UpdateItem(businessID, serviceID, itemID, map[string]any{"imageUrl": res.URL})
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return "", &utils.NotFoundError{Resource: "item", ID: itemID}
	}
	if err != nil {
		return "", fmt.Errorf("failed to record item image: %w", err)
	}
	return res.URL, nil
}

// requireOwnership loads the business and checks the caller administers it.
func (s *DefaultCatalogService) requireOwnership(adminID, businessID string) (*models.Business, error) {
	biz, err := s.GetBusiness(businessID)
	if err != nil {
		return nil, err
	}
	if biz.AdminID != adminID {
		return nil, &utils.UnauthorizedError{Message: "business belongs to another admin"}
	}
	return biz, nil
}
