package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dparedes/leagueadmin/internal/app/models"
	"github.com/dparedes/leagueadmin/internal/app/models/dto"
	"github.com/dparedes/leagueadmin/internal/pkg/apperrors"
	"github.com/dparedes/leagueadmin/internal/pkg/auth"
)

// fakeUserStore is an in-memory userStore.
type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	store := &fakeUserStore{users: map[int64]*models.User{}, nextID: 1}
	for _, user := range users {
		copied := *user
		store.users[copied.ID] = &copied
		if copied.ID >= store.nextID {
			store.nextID = copied.ID + 1
		}
	}
	return store
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) (int64, error) {
	for _, existing := range f.users {
		if existing.Mail == user.Mail {
			return 0, apperrors.ErrMailAlreadyExists
		}
	}
	id := f.nextID
	f.nextID++
	copied := *user
	copied.ID = id
	f.users[id] = &copied
	return id, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetAllUsers(_ context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, user := range f.users {
		out = append(out, user)
	}
	return out, nil
}

func (f *fakeUserStore) UpdateUser(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) DeleteUser(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) CountOtherActiveAdmins(_ context.Context, excludeID int64) (int, error) {
	count := 0
	for _, user := range f.users {
		if user.ID != excludeID && user.Role == models.RoleAdmin && user.State {
			count++
		}
	}
	return count, nil
}

func adminUser(id int64, fixed bool) *models.User {
	return &models.User{
		ID: id, Name: "Admin", Mail: "admin@example.com",
		Role: models.RoleAdmin, State: true, Fixed: fixed,
	}
}

func TestCreateUserHashesPasswordAndDefaultsRole(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	user, err := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Name:     "Operador",
		Mail:     "Operador@Example.com",
		Password: "secreto123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.State)
	assert.Equal(t, "operador@example.com", user.Mail)
	assert.NotEqual(t, "secreto123", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "secreto123"))
}

func TestCreateUserRejectsShortPassword(t *testing.T) {
	svc := NewUserService(newFakeUserStore())
	_, err := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Name: "Operador", Mail: "op@example.com", Password: "corta",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeleteFixedUserRejected(t *testing.T) {
	store := newFakeUserStore(adminUser(1, true), adminUser(2, false))
	store.users[2].Mail = "second@example.com"
	svc := NewUserService(store)

	err := svc.DeleteUser(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrUserFixed)
	assert.Contains(t, store.users, int64(1))
}

func TestDeleteLastActiveAdminRejected(t *testing.T) {
	store := newFakeUserStore(adminUser(1, false))
	svc := NewUserService(store)

	err := svc.DeleteUser(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrLastAdminRemaining)
}

func TestDeleteAdminWithAnotherActiveAdmin(t *testing.T) {
	store := newFakeUserStore(adminUser(1, false), adminUser(2, false))
	store.users[2].Mail = "second@example.com"
	svc := NewUserService(store)

	require.NoError(t, svc.DeleteUser(context.Background(), 1))
	assert.NotContains(t, store.users, int64(1))
}

func TestDeactivateLastActiveAdminRejected(t *testing.T) {
	store := newFakeUserStore(adminUser(1, false))
	svc := NewUserService(store)

	_, err := svc.UpdateUserState(context.Background(), 1, false)
	assert.ErrorIs(t, err, apperrors.ErrLastAdminRemaining)
	assert.True(t, store.users[1].State)
}

func TestDeactivateFixedUserRejected(t *testing.T) {
	store := newFakeUserStore(adminUser(1, true), adminUser(2, false))
	store.users[2].Mail = "second@example.com"
	svc := NewUserService(store)

	_, err := svc.UpdateUserState(context.Background(), 1, false)
	assert.ErrorIs(t, err, apperrors.ErrUserFixed)
}

func TestUpdateUserStateNoOpWhenUnchanged(t *testing.T) {
	// Reactivating an already active last admin must not trip the guard.
	store := newFakeUserStore(adminUser(1, false))
	svc := NewUserService(store)

	user, err := svc.UpdateUserState(context.Background(), 1, true)
	require.NoError(t, err)
	assert.True(t, user.State)
}

func TestDemoteFixedUserRejected(t *testing.T) {
	store := newFakeUserStore(adminUser(1, true), adminUser(2, false))
	store.users[2].Mail = "second@example.com"
	svc := NewUserService(store)

	role := string(models.RoleUser)
	_, err := svc.UpdateUser(context.Background(), 1, &dto.UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, apperrors.ErrUserFixed)
}

func TestDemoteLastActiveAdminRejected(t *testing.T) {
	store := newFakeUserStore(adminUser(1, false))
	svc := NewUserService(store)

	role := string(models.RoleUser)
	_, err := svc.UpdateUser(context.Background(), 1, &dto.UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, apperrors.ErrLastAdminRemaining)
}

func TestUpdateUserDuplicateMail(t *testing.T) {
	store := newFakeUserStore(adminUser(1, false))
	svc := NewUserService(store)

	_, err := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Name: "Clon", Mail: "admin@example.com", Password: "secreto123",
	})
	assert.ErrorIs(t, err, apperrors.ErrMailAlreadyExists)
}
