package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/motoworld/storefront/internal/domain/catalog"
	"github.com/motoworld/storefront/internal/domain/shared"
)

// maxSlugAttempts bounds the collision counter when uniquing slugs and SKUs
const maxSlugAttempts = 1000

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates a new category. The slug is derived from the name and
// uniqued with a numeric suffix on collision.
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	if req.ParentID != nil {
		if _, err := s.parentWithinDepth(ctx, *req.ParentID); err != nil {
			return nil, err
		}
	}

	// Names are unique among siblings
	if _, err := s.categoryRepo.FindByNameAndParent(ctx, req.Name, req.ParentID); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists under the same parent")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	category, err := catalog.NewCategory(req.Name, req.Description, req.ParentID)
	if err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, catalog.Slugify(req.Name))
	if err != nil {
		return nil, err
	}
	if err := category.SetSlug(slug); err != nil {
		return nil, err
	}

	category.ImageURL = req.ImageURL
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created",
		zap.String("category_id", category.ID.String()),
		zap.String("slug", category.Slug),
	)

	return ToCategoryResponse(category), nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// GetBySlug retrieves a category by slug
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// List retrieves categories matching the filter with the total count
func (s *CategoryService) List(ctx context.Context, filter CategoryListFilter) ([]CategoryResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = "sort_order"
	domainFilter.OrderDir = "asc"

	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	categories, err := s.categoryRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.categoryRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCategoryResponses(categories), total, nil
}

// GetTree retrieves active categories as a nested tree
func (s *CategoryService) GetTree(ctx context.Context) ([]CategoryTreeNode, error) {
	filter := shared.Filter{
		OrderBy:  "sort_order",
		OrderDir: "asc",
		Filters:  map[string]interface{}{"is_active": true},
	}
	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return buildCategoryTree(categories), nil
}

// GetChildren retrieves direct children of a category
func (s *CategoryService) GetChildren(ctx context.Context, parentID uuid.UUID) ([]CategoryResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, parentID); err != nil {
		return nil, err
	}
	children, err := s.categoryRepo.FindChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(children), nil
}

// Update updates an existing category, including moves to a new parent
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := category.Name
		if req.Name != nil {
			name = *req.Name
		}
		description := category.Description
		if req.Description != nil {
			description = *req.Description
		}
		if err := category.Update(name, description); err != nil {
			return nil, err
		}
	}

	switch {
	case req.MoveToRoot:
		if err := category.SetParent(nil); err != nil {
			return nil, err
		}
	case req.ParentID != nil:
		if err := s.checkMove(ctx, category, *req.ParentID); err != nil {
			return nil, err
		}
		if err := category.SetParent(req.ParentID); err != nil {
			return nil, err
		}
	}

	if req.ImageURL != nil {
		category.ImageURL = *req.ImageURL
	}
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}
	if req.IsActive != nil {
		if *req.IsActive {
			category.Activate()
		} else {
			category.Deactivate()
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

// Delete deletes a category. Categories with children or assigned
// products cannot be deleted.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	children, err := s.categoryRepo.FindChildren(ctx, category.ID)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return shared.NewDomainError("HAS_CHILDREN", "Cannot delete category with subcategories")
	}

	hasProducts, err := s.categoryRepo.HasProducts(ctx, category.ID)
	if err != nil {
		return err
	}
	if hasProducts {
		return shared.NewDomainError("HAS_PRODUCTS", "Cannot delete category with assigned products")
	}

	return s.categoryRepo.Delete(ctx, id)
}

// uniqueSlug appends a numeric suffix until the slug is free
func (s *CategoryService) uniqueSlug(ctx context.Context, base string) (string, error) {
	if base == "" {
		base = "category"
	}
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		candidate := catalog.NextSlug(base, attempt)
		exists, err := s.categoryRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", shared.NewDomainError("SLUG_EXHAUSTED", "Could not find a free slug")
}

// parentWithinDepth verifies the parent exists and that attaching a
// child to it stays within the depth bound
func (s *CategoryService) parentWithinDepth(ctx context.Context, parentID uuid.UUID) (*catalog.Category, error) {
	parent, err := s.categoryRepo.FindByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
		}
		return nil, err
	}

	depth, err := s.depthOf(ctx, parent)
	if err != nil {
		return nil, err
	}
	if depth+1 >= catalog.MaxCategoryDepth {
		return nil, shared.NewDomainError("MAX_DEPTH_EXCEEDED", "Maximum category depth exceeded")
	}
	return parent, nil
}

// checkMove rejects moves that would create a cycle or exceed the depth bound
func (s *CategoryService) checkMove(ctx context.Context, category *catalog.Category, newParentID uuid.UUID) error {
	if newParentID == category.ID {
		return shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
	}

	parent, err := s.parentWithinDepth(ctx, newParentID)
	if err != nil {
		return err
	}

	// walk up from the new parent; hitting the moved category means a cycle
	current := parent
	for i := 0; i < catalog.MaxCategoryDepth && current.ParentID != nil; i++ {
		if *current.ParentID == category.ID {
			return shared.NewDomainError("CIRCULAR_REFERENCE", "Cannot move category under its own descendant")
		}
		current, err = s.categoryRepo.FindByID(ctx, *current.ParentID)
		if err != nil {
			return err
		}
	}
	return nil
}

// depthOf walks the ancestry to compute a category's depth; roots are 0
func (s *CategoryService) depthOf(ctx context.Context, category *catalog.Category) (int, error) {
	depth := 0
	current := category
	for current.ParentID != nil {
		depth++
		if depth > catalog.MaxCategoryDepth {
			return depth, shared.NewDomainError("MAX_DEPTH_EXCEEDED", "Category ancestry exceeds the depth bound")
		}
		next, err := s.categoryRepo.FindByID(ctx, *current.ParentID)
		if err != nil {
			return 0, err
		}
		current = next
	}
	return depth, nil
}

// buildCategoryTree builds a nested tree from a flat, sorted list
func buildCategoryTree(categories []catalog.Category) []CategoryTreeNode {
	nodes := make(map[uuid.UUID]*CategoryTreeNode, len(categories))
	order := make([]uuid.UUID, 0, len(categories))
	for i := range categories {
		node := &CategoryTreeNode{
			CategoryResponse: *ToCategoryResponse(&categories[i]),
			Children:         []CategoryTreeNode{},
		}
		nodes[categories[i].ID] = node
		order = append(order, categories[i].ID)
	}

	roots := make([]CategoryTreeNode, 0)
	// children attach in list order; parents missing from the list
	// (inactive ancestors) promote their children to the root level
	for _, id := range order {
		node := nodes[id]
		if node.ParentID != nil {
			if parent, ok := nodes[*node.ParentID]; ok {
				parent.Children = append(parent.Children, *node)
				continue
			}
		}
		roots = append(roots, *node)
	}

	// the map holds pointers, but appended children are copies; rebuild
	// top-down so nested children are complete
	return materializeTree(roots, nodes)
}

func materializeTree(nodes []CategoryTreeNode, index map[uuid.UUID]*CategoryTreeNode) []CategoryTreeNode {
	result := make([]CategoryTreeNode, len(nodes))
	for i, node := range nodes {
		full := *index[node.ID]
		full.Children = materializeTree(full.Children, index)
		result[i] = full
	}
	return result
}
