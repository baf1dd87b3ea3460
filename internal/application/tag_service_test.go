package application

import (
	"context"
	"testing"

	"github.com/code2day/recipe-api/pkg/apperr"
)

func TestTagNameUniqueness(t *testing.T) {
	svc := NewTagService(newFakeTagRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "dessert"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, "dessert"); apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("duplicate create: kind = %v, want Conflict", apperr.KindOf(err))
	}

	other, err := svc.Create(ctx, "breakfast")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Update(ctx, other.ID, "dessert"); apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("rename onto taken name: kind = %v, want Conflict", apperr.KindOf(err))
	}
}

func TestTagUpdateAndDeleteMissing(t *testing.T) {
	svc := NewTagService(newFakeTagRepo())
	ctx := context.Background()

	if _, err := svc.Update(ctx, "missing", "x"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("update missing: kind = %v, want NotFound", apperr.KindOf(err))
	}
	if err := svc.Delete(ctx, "missing"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("delete missing: kind = %v, want NotFound", apperr.KindOf(err))
	}
	if _, err := svc.Create(ctx, ""); apperr.KindOf(err) != apperr.KindInvalidInput {
		t.Errorf("empty name: kind = %v, want InvalidInput", apperr.KindOf(err))
	}
}
