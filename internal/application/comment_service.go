package application

import (
	"context"

	"github.com/code2day/recipe-api/internal/domain/entity"
	repo "github.com/code2day/recipe-api/internal/domain/repository"
	"github.com/code2day/recipe-api/pkg/apperr"
)

// CommentService handles comment CRUD with ownership enforcement. Existence
// is always checked before ownership, so a missing comment reports NotFound
// rather than Forbidden.
type CommentService struct {
	Comments repo.CommentRepository
	Recipes  repo.RecipeRepository
}

func NewCommentService(comments repo.CommentRepository, recipes repo.RecipeRepository) *CommentService {
	return &CommentService{Comments: comments, Recipes: recipes}
}

func (s *CommentService) Create(ctx context.Context, userID, recipeID, text string) (*entity.Comment, error) {
	if recipeID == "" || text == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "recipe id and text are required")
	}
	if _, err := s.Recipes.GetByID(ctx, recipeID); err != nil {
		if isNotFound(err) {
			return nil, apperr.New(apperr.KindNotFound, "recipe not found")
		}
		return nil, storeErr(err)
	}

	c := &entity.Comment{UserID: userID, RecipeID: recipeID, Text: text}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, storeErr(err)
	}
	return c, nil
}

func (s *CommentService) ListByRecipe(ctx context.Context, recipeID string) ([]*entity.Comment, error) {
	comments, err := s.Comments.ListByRecipe(ctx, recipeID)
	if err != nil {
		return nil, storeErr(err)
	}
	return comments, nil
}

func (s *CommentService) get(ctx context.Context, id string) (*entity.Comment, error) {
	c, err := s.Comments.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.New(apperr.KindNotFound, "comment not found")
		}
		return nil, storeErr(err)
	}
	return c, nil
}

// Update changes the comment text. Only the creating account may update.
func (s *CommentService) Update(ctx context.Context, actorID string, commentID, text string) (*entity.Comment, error) {
	if text == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "text is required")
	}
	c, err := s.get(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c.UserID != actorID {
		return nil, apperr.New(apperr.KindForbidden, "not allowed to update this comment")
	}

	c.Text = text
	if err := s.Comments.Update(ctx, c); err != nil {
		return nil, storeErr(err)
	}
	return c, nil
}

// Delete removes the comment. The creating account may delete its own;
// a role with the moderate-comments capability may delete any.
func (s *CommentService) Delete(ctx context.Context, actorID string, actorRole entity.Role, commentID string) error {
	c, err := s.get(ctx, commentID)
	if err != nil {
		return err
	}
	if c.UserID != actorID && !actorRole.Can(entity.CapModerateComments) {
		return apperr.New(apperr.KindForbidden, "not allowed to delete this comment")
	}
	if err := s.Comments.Delete(ctx, commentID); err != nil {
		return storeErr(err)
	}
	return nil
}
