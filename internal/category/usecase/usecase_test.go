package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitrine/catalog-service/internal/apperr"
	"github.com/vitrine/catalog-service/internal/category/dto"
	"github.com/vitrine/catalog-service/internal/model"
	"github.com/vitrine/catalog-service/pkg/logger"
)

type fakeRepo struct {
	categories map[string]*model.Category

	createErr error
	updateErr error

	deleteCalled    bool
	deleteManyIDs   []string
	deleteManyCount int64
	productCounts   map[string]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		categories:    map[string]*model.Category{},
		productCounts: map[string]int{},
	}
}

func (r *fakeRepo) Create(_ context.Context, c *model.Category) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *c
	r.categories[c.ID] = &clone
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*model.Category, error) {
	return r.categories[id], nil
}

func (r *fakeRepo) FindBySlug(_ context.Context, slug string) (*model.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) FindAll(_ context.Context, _ *dto.CategoryFilters) ([]model.Category, error) {
	out := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, c *model.Category) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	clone := *c
	r.categories[c.ID] = &clone
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	r.deleteCalled = true
	delete(r.categories, id)
	return nil
}

func (r *fakeRepo) DeleteMany(_ context.Context, ids []string) (int64, error) {
	r.deleteManyIDs = ids
	return r.deleteManyCount, nil
}

func (r *fakeRepo) CountProducts(_ context.Context, categoryID string) (int, error) {
	return r.productCounts[categoryID], nil
}

type fakePublisher struct {
	published []string // "entity/id/action"
}

func (p *fakePublisher) Publish(_ context.Context, entity, id, action string) error {
	p.published = append(p.published, entity+"/"+id+"/"+action)
	return nil
}

func TestCreateCategory(t *testing.T) {
	t.Run("success fills id, timestamps and active default", func(t *testing.T) {
		repo := newFakeRepo()
		pub := &fakePublisher{}
		uc := NewCategoryUseCase(repo, pub, logger.NewNop())

		cat, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{
			Name: "Bolos",
			Slug: "bolos",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, cat.ID)
		assert.True(t, cat.IsActive)
		assert.False(t, cat.CreatedAt.IsZero())
		assert.Len(t, pub.published, 1)
		assert.Equal(t, "category/"+cat.ID+"/created", pub.published[0])
	})

	t.Run("missing required fields reports validation before any store access", func(t *testing.T) {
		repo := newFakeRepo()
		uc := NewCategoryUseCase(repo, &fakePublisher{}, logger.NewNop())

		_, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{Name: "  "})
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Empty(t, repo.categories)
	})

	t.Run("duplicate slug reports conflict, not a generic failure", func(t *testing.T) {
		repo := newFakeRepo()
		repo.createErr = &pq.Error{Code: "23505"}
		uc := NewCategoryUseCase(repo, &fakePublisher{}, logger.NewNop())

		_, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{
			Name: "Bolos",
			Slug: "bolos",
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		assert.Equal(t, "category.slug_conflict", apperr.MessageID(err))
	})

	t.Run("unknown parent reports not found", func(t *testing.T) {
		repo := newFakeRepo()
		uc := NewCategoryUseCase(repo, &fakePublisher{}, logger.NewNop())

		parent := "missing-parent"
		_, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{
			Name:     "Bolos",
			Slug:     "bolos",
			ParentID: &parent,
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("merges only the provided fields and refreshes updated_at", func(t *testing.T) {
		repo := newFakeRepo()
		created := time.Now().Add(-time.Hour)
		repo.categories["c1"] = &model.Category{
			BaseModel: model.BaseModel{ID: "c1", CreatedAt: created, UpdatedAt: created},
			Name:      "Bolos",
			Slug:      "bolos",
			IsActive:  true,
		}
		pub := &fakePublisher{}
		uc := NewCategoryUseCase(repo, pub, logger.NewNop())

		name := "Bolos Artesanais"
		cat, err := uc.UpdateCategory(context.Background(), &dto.UpdateCategoryInput{
			ID:   "c1",
			Name: &name,
		})
		require.NoError(t, err)
		assert.Equal(t, "Bolos Artesanais", cat.Name)
		assert.Equal(t, "bolos", cat.Slug)
		assert.True(t, cat.UpdatedAt.After(created))
		assert.Equal(t, []string{"category/c1/updated"}, pub.published)
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		uc := NewCategoryUseCase(newFakeRepo(), &fakePublisher{}, logger.NewNop())

		name := "x"
		_, err := uc.UpdateCategory(context.Background(), &dto.UpdateCategoryInput{ID: "nope", Name: &name})
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("nonexistent id reports not found and issues no delete", func(t *testing.T) {
		repo := newFakeRepo()
		pub := &fakePublisher{}
		uc := NewCategoryUseCase(repo, pub, logger.NewNop())

		err := uc.DeleteCategory(context.Background(), "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		assert.Equal(t, "category.not_found", apperr.MessageID(err))
		assert.False(t, repo.deleteCalled)
		assert.Empty(t, pub.published)
	})

	t.Run("category with products reports conflict", func(t *testing.T) {
		repo := newFakeRepo()
		repo.categories["c1"] = &model.Category{BaseModel: model.BaseModel{ID: "c1"}}
		repo.productCounts["c1"] = 3
		uc := NewCategoryUseCase(repo, &fakePublisher{}, logger.NewNop())

		err := uc.DeleteCategory(context.Background(), "c1")
		require.Error(t, err)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		assert.False(t, repo.deleteCalled)
	})

	t.Run("success deletes and publishes", func(t *testing.T) {
		repo := newFakeRepo()
		repo.categories["c1"] = &model.Category{BaseModel: model.BaseModel{ID: "c1"}}
		pub := &fakePublisher{}
		uc := NewCategoryUseCase(repo, pub, logger.NewNop())

		require.NoError(t, uc.DeleteCategory(context.Background(), "c1"))
		assert.True(t, repo.deleteCalled)
		assert.Equal(t, []string{"category/c1/deleted"}, pub.published)
	})
}

func TestBulkDeleteCategories(t *testing.T) {
	t.Run("reports the removed count and publishes exactly once", func(t *testing.T) {
		repo := newFakeRepo()
		repo.deleteManyCount = 3
		pub := &fakePublisher{}
		uc := NewCategoryUseCase(repo, pub, logger.NewNop())

		count, err := uc.BulkDeleteCategories(context.Background(), []string{"a", "b", "c"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.Equal(t, []string{"a", "b", "c"}, repo.deleteManyIDs)
		assert.Len(t, pub.published, 1)
	})

	t.Run("zero ids is a successful no-op", func(t *testing.T) {
		repo := newFakeRepo()
		pub := &fakePublisher{}
		uc := NewCategoryUseCase(repo, pub, logger.NewNop())

		count, err := uc.BulkDeleteCategories(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
		assert.Nil(t, repo.deleteManyIDs)
		assert.Empty(t, pub.published)
	})
}

func TestGetCategory(t *testing.T) {
	id := "6f1e8a68-8b1f-4a7e-9a54-2f9d0c3b1a11"

	t.Run("uuid-shaped identifiers resolve by id", func(t *testing.T) {
		repo := newFakeRepo()
		repo.categories[id] = &model.Category{BaseModel: model.BaseModel{ID: id}, Slug: "bolos"}
		uc := NewCategoryUseCase(repo, &fakePublisher{}, logger.NewNop())

		cat, err := uc.GetCategory(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, cat.ID)
	})

	t.Run("anything else resolves by slug", func(t *testing.T) {
		repo := newFakeRepo()
		repo.categories[id] = &model.Category{BaseModel: model.BaseModel{ID: id}, Slug: "bolos"}
		uc := NewCategoryUseCase(repo, &fakePublisher{}, logger.NewNop())

		cat, err := uc.GetCategory(context.Background(), "bolos")
		require.NoError(t, err)
		assert.Equal(t, id, cat.ID)
	})

	t.Run("unknown identifier reports not found", func(t *testing.T) {
		uc := NewCategoryUseCase(newFakeRepo(), &fakePublisher{}, logger.NewNop())

		_, err := uc.GetCategory(context.Background(), "doces")
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}
