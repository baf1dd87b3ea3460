package application

import (
	"context"
	"testing"

	"github.com/code2day/recipe-api/internal/domain/entity"
	"github.com/code2day/recipe-api/pkg/apperr"
)

func newCommentFixture(t *testing.T) (*CommentService, *entity.Recipe) {
	t.Helper()
	comments := newFakeCommentRepo()
	recipes := newFakeRecipeRepo()
	svc := NewCommentService(comments, recipes)

	r := &entity.Recipe{Title: "Pancakes", Description: "Fluffy."}
	if err := recipes.Create(context.Background(), r); err != nil {
		t.Fatal(err)
	}
	return svc, r
}

func TestCreateCommentRequiresExistingRecipe(t *testing.T) {
	svc, r := newCommentFixture(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user-1", "missing-recipe", "nice"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("missing recipe: kind = %v, want NotFound", apperr.KindOf(err))
	}
	if _, err := svc.Create(ctx, "user-1", r.ID, ""); apperr.KindOf(err) != apperr.KindInvalidInput {
		t.Errorf("empty text: kind = %v, want InvalidInput", apperr.KindOf(err))
	}

	c, err := svc.Create(ctx, "user-1", r.ID, "nice recipe")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID == "" || c.UserID != "user-1" || c.RecipeID != r.ID {
		t.Errorf("comment = %+v, want bound to user-1 and recipe", c)
	}
}

func TestUpdateCommentOwnershipChecks(t *testing.T) {
	svc, r := newCommentFixture(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, "owner", r.ID, "original")
	if err != nil {
		t.Fatal(err)
	}

	// Missing comment reports NotFound even for a would-be non-owner:
	// existence is decided before ownership.
	if _, err := svc.Update(ctx, "intruder", "missing-comment", "x"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("missing comment: kind = %v, want NotFound", apperr.KindOf(err))
	}

	if _, err := svc.Update(ctx, "intruder", c.ID, "hijacked"); apperr.KindOf(err) != apperr.KindForbidden {
		t.Errorf("non-owner update: kind = %v, want Forbidden", apperr.KindOf(err))
	}

	got, err := svc.Update(ctx, "owner", c.ID, "edited")
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if got.Text != "edited" {
		t.Errorf("text = %q, want %q", got.Text, "edited")
	}
}

func TestDeleteCommentOwnerAndModerator(t *testing.T) {
	svc, r := newCommentFixture(t)
	ctx := context.Background()

	c1, _ := svc.Create(ctx, "owner", r.ID, "one")
	c2, _ := svc.Create(ctx, "owner", r.ID, "two")

	if err := svc.Delete(ctx, "intruder", entity.RoleUser, c1.ID); apperr.KindOf(err) != apperr.KindForbidden {
		t.Errorf("non-owner delete: kind = %v, want Forbidden", apperr.KindOf(err))
	}
	if err := svc.Delete(ctx, "owner", entity.RoleUser, c1.ID); err != nil {
		t.Errorf("owner delete: %v", err)
	}
	if err := svc.Delete(ctx, "moderator", entity.RoleAdmin, c2.ID); err != nil {
		t.Errorf("moderator delete: %v", err)
	}
	if err := svc.Delete(ctx, "owner", entity.RoleUser, c1.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("deleted twice: kind = %v, want NotFound", apperr.KindOf(err))
	}
}

func TestListCommentsByRecipe(t *testing.T) {
	svc, r := newCommentFixture(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "a", r.ID, "first"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, "b", r.ID, "second"); err != nil {
		t.Fatal(err)
	}

	got, err := svc.ListByRecipe(ctx, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("comments = %d, want 2", len(got))
	}
}
