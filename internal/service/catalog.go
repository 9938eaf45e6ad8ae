package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant_api/internal/authz"
	"restaurant_api/internal/models"
)

// CatalogService owns categories and menu items. Reads are open to every
// authenticated caller, writes are manager-only.
type CatalogService struct {
	DB *gorm.DB
}

type CategoryInput struct {
	Slug  string
	Title string
}

type MenuItemInput struct {
	Title      string
	Price      decimal.Decimal
	Featured   bool
	CategoryID uint
}

type MenuItemPatch struct {
	Title      *string
	Price      *decimal.Decimal
	Featured   *bool
	CategoryID *uint
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, p authz.Principal, in CategoryInput) (*models.Category, error) {
	if !authz.Allowed(p, authz.ActionCatalogWrite) {
		return nil, fmt.Errorf("only managers may modify the catalog: %w", ErrForbidden)
	}
	if in.Slug == "" || in.Title == "" {
		return nil, fmt.Errorf("slug and title are required: %w", ErrValidation)
	}

	cat := models.Category{Slug: in.Slug, Title: in.Title}
	if err := s.DB.WithContext(ctx).Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, p authz.Principal, id uint, in CategoryInput) (*models.Category, error) {
	if !authz.Allowed(p, authz.ActionCatalogWrite) {
		return nil, fmt.Errorf("only managers may modify the catalog: %w", ErrForbidden)
	}

	var cat models.Category
	if err := s.DB.WithContext(ctx).First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	if in.Slug != "" {
		cat.Slug = in.Slug
	}
	if in.Title != "" {
		cat.Title = in.Title
	}
	if err := s.DB.WithContext(ctx).Save(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory refuses to delete a category that is still referenced by a
// menu item (protected reference, no cascade).
func (s *CatalogService) DeleteCategory(ctx context.Context, p authz.Principal, id uint) error {
	if !authz.Allowed(p, authz.ActionCatalogWrite) {
		return fmt.Errorf("only managers may modify the catalog: %w", ErrForbidden)
	}

	var cat models.Category
	if err := s.DB.WithContext(ctx).First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return err
	}

	var refs int64
	if err := s.DB.WithContext(ctx).Model(&models.MenuItem{}).
		Where("category_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("category %d is referenced by %d menu items: %w", id, refs, ErrConflict)
	}

	return s.DB.WithContext(ctx).Delete(&models.Category{}, id).Error
}

func (s *CatalogService) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *CatalogService) GetMenuItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("menu item %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &item, nil
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, p authz.Principal, in MenuItemInput) (*models.MenuItem, error) {
	if !authz.Allowed(p, authz.ActionCatalogWrite) {
		return nil, fmt.Errorf("only managers may modify the catalog: %w", ErrForbidden)
	}
	if in.Title == "" {
		return nil, fmt.Errorf("title is required: %w", ErrValidation)
	}
	if in.Price.IsNegative() || in.Price.IsZero() {
		return nil, fmt.Errorf("price must be positive: %w", ErrValidation)
	}

	var cat models.Category
	if err := s.DB.WithContext(ctx).First(&cat, in.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %d does not exist: %w", in.CategoryID, ErrValidation)
		}
		return nil, err
	}

	item := models.MenuItem{
		Title:      in.Title,
		Price:      in.Price,
		Featured:   in.Featured,
		CategoryID: in.CategoryID,
	}
	if err := s.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CatalogService) UpdateMenuItem(ctx context.Context, p authz.Principal, id uint, patch MenuItemPatch) (*models.MenuItem, error) {
	if !authz.Allowed(p, authz.ActionCatalogWrite) {
		return nil, fmt.Errorf("only managers may modify the catalog: %w", ErrForbidden)
	}

	var item models.MenuItem
	if err := s.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("menu item %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, fmt.Errorf("title cannot be empty: %w", ErrValidation)
		}
		item.Title = *patch.Title
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() || patch.Price.IsZero() {
			return nil, fmt.Errorf("price must be positive: %w", ErrValidation)
		}
		item.Price = *patch.Price
	}
	if patch.Featured != nil {
		item.Featured = *patch.Featured
	}
	if patch.CategoryID != nil {
		var cat models.Category
		if err := s.DB.WithContext(ctx).First(&cat, *patch.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("category %d does not exist: %w", *patch.CategoryID, ErrValidation)
			}
			return nil, err
		}
		item.CategoryID = *patch.CategoryID
	}

	if err := s.DB.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CatalogService) DeleteMenuItem(ctx context.Context, p authz.Principal, id uint) error {
	if !authz.Allowed(p, authz.ActionCatalogWrite) {
		return fmt.Errorf("only managers may modify the catalog: %w", ErrForbidden)
	}

	var item models.MenuItem
	if err := s.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("menu item %d: %w", id, ErrNotFound)
		}
		return err
	}
	return s.DB.WithContext(ctx).Delete(&models.MenuItem{}, id).Error
}
