package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/internal/repository"
	"github.com/taantti/erp-demo/internal/scope"
)

type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.ProductCategoryRepository
	scoper       *scope.Scoper
}

type ProductRequest struct {
	Name        string     `json:"name" validate:"required,min=1,max=100"`
	Description string     `json:"description" validate:"max=1000"`
	Price       float64    `json:"price" validate:"gte=0"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	TenantID    uuid.UUID  `json:"tenant_id"`
}

type CategoryRequest struct {
	Name        string    `json:"name" validate:"required,min=1,max=100"`
	Description string    `json:"description" validate:"max=1000"`
	TenantID    uuid.UUID `json:"tenant_id"`
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.ProductCategoryRepository,
	scoper *scope.Scoper,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		scoper:       scoper,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, principal *domain.Principal, req ProductRequest, allTenants bool) (*domain.Product, error) {
	if err := s.scoper.Check(ctx, principal, allTenants); err != nil {
		return nil, err
	}

	tenantID := s.scoper.StampForWrite(principal, req.TenantID, allTenants)

	if req.CategoryID != nil {
		cond := s.scoper.QueryCondition(tenantID, allTenants)
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID, cond); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperror.BadRequest("category does not exist")
			}
			return nil, apperror.Internal(err)
		}
	}

	now := time.Now()
	product := &domain.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		TenantID:    tenantID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("product already exists")
		}
		return nil, apperror.Internal(err)
	}
	return product, nil
}

// GetProduct resolves a product inside the caller's tenant scope. Tenant-B
// data is never returned to a non-elevated tenant-A caller; it reads as
// not found.
func (s *ProductService) GetProduct(ctx context.Context, principal *domain.Principal, id uuid.UUID, allTenants bool) (*domain.Product, error) {
	if err := s.scoper.Check(ctx, principal, allTenants); err != nil {
		return nil, err
	}

	tenantID := s.scoper.TenantIDForQuery(principal, uuid.Nil, allTenants)
	cond := s.scoper.QueryCondition(tenantID, allTenants)

	product, err := s.productRepo.FindByID(ctx, id, cond)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("product")
		}
		return nil, apperror.Internal(err)
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, principal *domain.Principal, requestedTenant uuid.UUID, allTenants bool) ([]*domain.Product, error) {
	if err := s.scoper.Check(ctx, principal, allTenants); err != nil {
		return nil, err
	}

	tenantID := s.scoper.TenantIDForQuery(principal, requestedTenant, allTenants)
	cond := s.scoper.QueryCondition(tenantID, allTenants)

	products, err := s.productRepo.List(ctx, cond)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return products, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, principal *domain.Principal, id uuid.UUID, req ProductRequest, allTenants bool) (*domain.Product, error) {
	if err := s.scoper.Check(ctx, principal, allTenants); err != nil {
		return nil, err
	}

	tenantID := s.scoper.TenantIDForQuery(principal, uuid.Nil, allTenants)
	cond := s.scoper.QueryCondition(tenantID, allTenants)

	product, err := s.productRepo.FindByID(ctx, id, cond)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("product")
		}
		return nil, apperror.Internal(err)
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.CategoryID = req.CategoryID
	product.TenantID = s.scoper.StampForWrite(principal, req.TenantID, allTenants)
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product, cond); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("product")
		}
		return nil, apperror.Internal(err)
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, principal *domain.Principal, id uuid.UUID, allTenants bool) error {
	if err := s.scoper.Check(ctx, principal, allTenants); err != nil {
		return err
	}

	tenantID := s.scoper.TenantIDForQuery(principal, uuid.Nil, allTenants)
	cond := s.scoper.QueryCondition(tenantID, allTenants)

	if err := s.productRepo.Delete(ctx, id, cond); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("product")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (s *ProductService) CreateCategory(ctx context.Context, principal *domain.Principal, req CategoryRequest, allTenants bool) (*domain.ProductCategory, error) {
	if err := s.scoper.Check(ctx, principal, allTenants); err != nil {
		return nil, err
	}

	now := time.Now()
	category := &domain.ProductCategory{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		TenantID:    s.scoper.StampForWrite(principal, req.TenantID, allTenants),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("category already exists")
		}
		return nil, apperror.Internal(err)
	}
	return category, nil
}

func (s *ProductService) GetCategory(ctx context.Context, principal *domain.Principal, id uuid.UUID, allTenants bool) (*domain.ProductCategory, error) {
	if err := s.scoper.Check(ctx, principal, allTenants); err != nil {
		return nil, err
	}

	tenantID := s.scoper.TenantIDForQuery(principal, uuid.Nil, allTenants)
	cond := s.scoper.QueryCondition(tenantID, allTenants)

	category, err := s.categoryRepo.FindByID(ctx, id, cond)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("category")
		}
		return nil, apperror.Internal(err)
	}
	return category, nil
}

func (s *ProductService) ListCategories(ctx context.Context, principal *domain.Principal, requestedTenant uuid.UUID, allTenants bool) ([]*domain.ProductCategory, error) {
	if err := s.scoper.Check(ctx, principal, allTenants); err != nil {
		return nil, err
	}

	tenantID := s.scoper.TenantIDForQuery(principal, requestedTenant, allTenants)
	cond := s.scoper.QueryCondition(tenantID, allTenants)

	categories, err := s.categoryRepo.List(ctx, cond)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return categories, nil
}

func (s *ProductService) UpdateCategory(ctx context.Context, principal *domain.Principal, id uuid.UUID, req CategoryRequest, allTenants bool) (*domain.ProductCategory, error) {
	if err := s.scoper.Check(ctx, principal, allTenants); err != nil {
		return nil, err
	}

	tenantID := s.scoper.TenantIDForQuery(principal, uuid.Nil, allTenants)
	cond := s.scoper.QueryCondition(tenantID, allTenants)

	category, err := s.categoryRepo.FindByID(ctx, id, cond)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("category")
		}
		return nil, apperror.Internal(err)
	}

	category.Name = req.Name
	category.Description = req.Description
	category.TenantID = s.scoper.StampForWrite(principal, req.TenantID, allTenants)
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.Update(ctx, category, cond); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("category")
		}
		return nil, apperror.Internal(err)
	}
	return category, nil
}

func (s *ProductService) DeleteCategory(ctx context.Context, principal *domain.Principal, id uuid.UUID, allTenants bool) error {
	if err := s.scoper.Check(ctx, principal, allTenants); err != nil {
		return err
	}

	tenantID := s.scoper.TenantIDForQuery(principal, uuid.Nil, allTenants)
	cond := s.scoper.QueryCondition(tenantID, allTenants)

	if err := s.categoryRepo.Delete(ctx, id, cond); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("category")
		}
		return apperror.Internal(err)
	}
	return nil
}
