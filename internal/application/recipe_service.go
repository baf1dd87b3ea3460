package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/code2day/recipe-api/internal/domain/entity"
	repo "github.com/code2day/recipe-api/internal/domain/repository"
	"github.com/code2day/recipe-api/pkg/apperr"
)

// RecipeService provides recipe CRUD over the store plus a text search over
// an Elasticsearch index. Indexing is best-effort: the store is the source
// of truth and index failures are logged, never surfaced.
type RecipeService struct {
	Repo    repo.RecipeRepository
	Logger  *logrus.Logger
	ES      *elasticsearch.Client
	ESIndex string
}

func NewRecipeService(r repo.RecipeRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *RecipeService {
	return &RecipeService{Repo: r, Logger: logger, ES: es, ESIndex: esIndex}
}

func (s *RecipeService) Create(ctx context.Context, rec *entity.Recipe) (*entity.Recipe, error) {
	if rec.Title == "" || rec.Description == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "title and description are required")
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return nil, storeErr(err)
	}
	s.indexRecipe(ctx, rec)
	return rec, nil
}

func (s *RecipeService) GetByID(ctx context.Context, id string) (*entity.Recipe, error) {
	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.New(apperr.KindNotFound, "recipe not found")
		}
		return nil, storeErr(err)
	}
	return rec, nil
}

func (s *RecipeService) List(ctx context.Context) ([]*entity.Recipe, error) {
	recipes, err := s.Repo.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return recipes, nil
}

// Update replaces all recipe fields with the given document.
func (s *RecipeService) Update(ctx context.Context, rec *entity.Recipe) (*entity.Recipe, error) {
	if err := s.Repo.Update(ctx, rec); err != nil {
		if isNotFound(err) {
			return nil, apperr.New(apperr.KindNotFound, "recipe not found")
		}
		return nil, storeErr(err)
	}
	s.indexRecipe(ctx, rec)
	return rec, nil
}

func (s *RecipeService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return apperr.New(apperr.KindNotFound, "recipe not found")
		}
		return storeErr(err)
	}
	s.deleteFromIndex(ctx, id)
	return nil
}

func (s *RecipeService) indexRecipe(ctx context.Context, rec *entity.Recipe) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          rec.ID,
		"title":       rec.Title,
		"description": rec.Description,
		"category":    rec.Category,
		"tags":        rec.Tags,
		"created_at":  rec.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: rec.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("recipe_id", rec.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("recipe_id", rec.ID).Warn("es index response error")
	}
}

func (s *RecipeService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("recipe_id", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match query over title, description, category and
// tags. Returns the raw hit sources.
func (s *RecipeService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "category", "tags"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindDependency, "search unavailable", err)
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperr.Wrap(apperr.KindDependency, "search unavailable", err)
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
