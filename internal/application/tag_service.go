package application

import (
	"context"

	"github.com/code2day/recipe-api/internal/domain/entity"
	repo "github.com/code2day/recipe-api/internal/domain/repository"
	"github.com/code2day/recipe-api/pkg/apperr"
)

type TagService struct {
	Repo repo.TagRepository
}

func NewTagService(r repo.TagRepository) *TagService {
	return &TagService{Repo: r}
}

func (s *TagService) Create(ctx context.Context, name string) (*entity.Tag, error) {
	if name == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "tag name is required")
	}
	t := &entity.Tag{Name: name}
	if err := s.Repo.Create(ctx, t); err != nil {
		if err == repo.ErrDuplicate {
			return nil, apperr.New(apperr.KindConflict, "tag already exists")
		}
		return nil, storeErr(err)
	}
	return t, nil
}

func (s *TagService) List(ctx context.Context) ([]*entity.Tag, error) {
	tags, err := s.Repo.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return tags, nil
}

func (s *TagService) Update(ctx context.Context, id, name string) (*entity.Tag, error) {
	if name == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "tag name is required")
	}
	t, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.New(apperr.KindNotFound, "tag not found")
		}
		return nil, storeErr(err)
	}

	t.Name = name
	if err := s.Repo.Update(ctx, t); err != nil {
		if err == repo.ErrDuplicate {
			return nil, apperr.New(apperr.KindConflict, "tag name already exists")
		}
		return nil, storeErr(err)
	}
	return t, nil
}

func (s *TagService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return apperr.New(apperr.KindNotFound, "tag not found")
		}
		return storeErr(err)
	}
	return nil
}
