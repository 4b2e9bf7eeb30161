package user

import (
	"context"
	"errors"
	"testing"

	"medibook/database/repository"
	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/services"
	"medibook/utils"
)

type fakeRepo struct {
	userRepo.UserRepository
	byExternal map[string]*models.User
	tokens     map[string]string
}

func (f *fakeRepo) GetByExternalID(id string) (*models.User, error) {
	if u, ok := f.byExternal[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRepo) GetByID(id string) (*models.User, error) {
	for _, u := range f.byExternal {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRepo) Create(u *models.User) error {
	f.byExternal[u.ExternalID] = u
	return nil
}

func (f *fakeRepo) SetFCMToken(id, token string) error {
	if _, err := f.GetByID(id); err != nil {
		return err
	}
	f.tokens[id] = token
	return nil
}

func TestResolveIdentityCreatesOnce(t *testing.T) {
	repo := &fakeRepo{byExternal: map[string]*models.User{}, tokens: map[string]string{}}
	svc := &DefaultUserService{Repo: repo}
	id := &utils.Identity{ExternalID: "auth0|1", Email: "Jane@Example.com", Name: "Jane"}

	first, err := svc.ResolveIdentity(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Role != models.RoleUnassigned || first.Email != "jane@example.com" {
		t.Errorf("unexpected new user %+v", first)
	}
	second, err := svc.ResolveIdentity(context.Background(), id)
	if err != nil || second.ID != first.ID {
		t.Errorf("expected the same user, got %+v, %v", second, err)
	}
}

type racingRepo struct {
	*fakeRepo
	winner *models.User
}

// Create behaves as if a concurrent request inserted the same identity first.
func (r *racingRepo) Create(u *models.User) error {
	r.byExternal[u.ExternalID] = r.winner
	return repository.ErrDuplicateReference
}

func TestResolveIdentityRace(t *testing.T) {
	winner := &models.User{ID: "u1", ExternalID: "auth0|1", Role: models.RoleUnassigned}
	repo := &racingRepo{fakeRepo: &fakeRepo{byExternal: map[string]*models.User{}}, winner: winner}
	svc := &DefaultUserService{Repo: repo}

	got, err := svc.ResolveIdentity(context.Background(), &utils.Identity{ExternalID: "auth0|1"})
	if err != nil || got.ID != "u1" {
		t.Errorf("expected the winner's account, got %+v, %v", got, err)
	}
}

func TestResolveIdentityRequiresSubject(t *testing.T) {
	svc := &DefaultUserService{Repo: &fakeRepo{}}
	var vErr *services.ValidationError
	if _, err := svc.ResolveIdentity(context.Background(), &utils.Identity{}); !errors.As(err, &vErr) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSetFCMToken(t *testing.T) {
	repo := &fakeRepo{byExternal: map[string]*models.User{"x": {ID: "u1", ExternalID: "x"}}, tokens: map[string]string{}}
	svc := &DefaultUserService{Repo: repo}

	if err := svc.SetFCMToken(context.Background(), "u1", " tok "); err != nil || repo.tokens["u1"] != "tok" {
		t.Errorf("expected token saved, got %v (%q)", err, repo.tokens["u1"])
	}
	if err := svc.SetFCMToken(context.Background(), "ghost", "tok"); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
