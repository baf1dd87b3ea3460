package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/code2day/recipe-api/internal/domain/entity"
	"github.com/code2day/recipe-api/internal/domain/repository"
	"github.com/code2day/recipe-api/pkg/notify"
)

// In-memory repository fakes. They return copies of stored records so a
// mutation without an Update call never leaks into the store, matching how
// the real store behaves.

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.users {
		if id != u.ID && existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.UpdatedAt = time.Now()
	r.users[u.ID] = *u
	return nil
}

type fakeRecipeRepo struct {
	mu      sync.Mutex
	seq     int
	recipes map[string]entity.Recipe
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: map[string]entity.Recipe{}}
}

func (r *fakeRecipeRepo) Create(_ context.Context, rec *entity.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	rec.ID = fmt.Sprintf("recipe-%d", r.seq)
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	r.recipes[rec.ID] = *rec
	return nil
}

func (r *fakeRecipeRepo) GetByID(_ context.Context, id string) (*entity.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recipes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := rec
	return &cp, nil
}

func (r *fakeRecipeRepo) List(_ context.Context) ([]*entity.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Recipe, 0, len(r.recipes))
	for _, rec := range r.recipes {
		cp := rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRecipeRepo) Update(_ context.Context, rec *entity.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recipes[rec.ID]; !ok {
		return repository.ErrNotFound
	}
	rec.UpdatedAt = time.Now()
	r.recipes[rec.ID] = *rec
	return nil
}

func (r *fakeRecipeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recipes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.recipes, id)
	return nil
}

// fakeFavoriteRepo stores the relation once as a pair set; both list
// directions are derived from it, like the real table.
type fakeFavoriteRepo struct {
	mu      sync.Mutex
	pairs   map[[2]string]bool
	users   *fakeUserRepo
	recipes *fakeRecipeRepo
}

func newFakeFavoriteRepo(users *fakeUserRepo, recipes *fakeRecipeRepo) *fakeFavoriteRepo {
	return &fakeFavoriteRepo{pairs: map[[2]string]bool{}, users: users, recipes: recipes}
}

func (r *fakeFavoriteRepo) Add(_ context.Context, userID, recipeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]string{userID, recipeID}
	if r.pairs[key] {
		return false, nil
	}
	r.pairs[key] = true
	return true, nil
}

func (r *fakeFavoriteRepo) Remove(_ context.Context, userID, recipeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]string{userID, recipeID}
	if !r.pairs[key] {
		return false, nil
	}
	delete(r.pairs, key)
	return true, nil
}

func (r *fakeFavoriteRepo) RecipesFor(ctx context.Context, userID string) ([]*entity.Recipe, error) {
	ids, err := r.RecipeIDsFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Recipe, 0, len(ids))
	for _, id := range ids {
		rec, err := r.recipes.GetByID(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeFavoriteRepo) UsersFor(ctx context.Context, recipeID string) ([]*entity.User, error) {
	r.mu.Lock()
	var ids []string
	for pair := range r.pairs {
		if pair[1] == recipeID {
			ids = append(ids, pair[0])
		}
	}
	r.mu.Unlock()
	sort.Strings(ids)
	out := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		u, err := r.users.GetByID(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeFavoriteRepo) RecipeIDsFor(_ context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for pair := range r.pairs {
		if pair[0] == userID {
			ids = append(ids, pair[1])
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	seq      int
	comments map[string]entity.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[string]entity.Comment{}}
}

func (r *fakeCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c.ID = fmt.Sprintf("comment-%d", r.seq)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.comments[c.ID] = *c
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (r *fakeCommentRepo) ListByRecipe(_ context.Context, recipeID string) ([]*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Comment
	for _, c := range r.comments {
		if c.RecipeID == recipeID {
			cp := c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCommentRepo) Update(_ context.Context, c *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[c.ID]; !ok {
		return repository.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	r.comments[c.ID] = *c
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

type fakeTagRepo struct {
	mu   sync.Mutex
	seq  int
	tags map[string]entity.Tag
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: map[string]entity.Tag{}}
}

func (r *fakeTagRepo) Create(_ context.Context, t *entity.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.tags {
		if existing.Name == t.Name {
			return repository.ErrDuplicate
		}
	}
	r.seq++
	t.ID = fmt.Sprintf("tag-%d", r.seq)
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	r.tags[t.ID] = *t
	return nil
}

func (r *fakeTagRepo) GetByID(_ context.Context, id string) (*entity.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tags[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := t
	return &cp, nil
}

func (r *fakeTagRepo) GetByName(_ context.Context, name string) (*entity.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tags {
		if t.Name == name {
			cp := t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTagRepo) List(_ context.Context) ([]*entity.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Tag, 0, len(r.tags))
	for _, t := range r.tags {
		cp := t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTagRepo) Update(_ context.Context, t *entity.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tags[t.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.tags {
		if id != t.ID && existing.Name == t.Name {
			return repository.ErrDuplicate
		}
	}
	t.UpdatedAt = time.Now()
	r.tags[t.ID] = *t
	return nil
}

func (r *fakeTagRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tags[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tags, id)
	return nil
}

// fakeNotifier records dispatched jobs and can be told to fail.
type fakeNotifier struct {
	mu   sync.Mutex
	jobs []notify.Job
	fail error
}

func (n *fakeNotifier) SendCode(_ context.Context, job notify.Job) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail != nil {
		return n.fail
	}
	n.jobs = append(n.jobs, job)
	return nil
}

func (n *fakeNotifier) last() (notify.Job, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.jobs) == 0 {
		return notify.Job{}, false
	}
	return n.jobs[len(n.jobs)-1], true
}
