package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"worthy-waste/domain"
	"worthy-waste/entities"
	"worthy-waste/pkg/jwt"
)

type fakeUserRepo struct {
	byPhone   map[string]*entities.User
	createErr error
	updated   int
	deltas    []domain.CounterDelta
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byPhone: map[string]*entities.User{}}
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	for _, u := range f.byPhone {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByPhone(_ context.Context, phone string) (*entities.User, error) {
	if u, ok := f.byPhone[phone]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) CreateUser(_ context.Context, u *entities.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.byPhone[u.Phone] = u
	return nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, u *entities.User) error {
	f.updated++
	f.byPhone[u.Phone] = u
	return nil
}

func (f *fakeUserRepo) IncrementCounters(_ context.Context, _ string, d domain.CounterDelta) error {
	f.deltas = append(f.deltas, d)
	return nil
}

func newTestService(repo UserRepository) (UserService, jwt.JWTService) {
	j := jwt.NewJWTServiceWithSecret("test-secret", time.Hour)
	return NewUserService(repo, j), j
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "6281234567890", NormalizePhone("+62 812-3456-7890"))
	assert.Equal(t, "919876543210", NormalizePhone("(91) 98765 43210"))
	assert.Equal(t, "", NormalizePhone("call me"))
}

func TestLogin_CreatesUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc, j := newTestService(repo)

	res, err := svc.Login(context.Background(), domain.LoginRequest{Phone: "+62 812 0000 1111", Name: "Rina"})
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.Equal(t, "6281200001111", res.User.Phone)
	assert.Equal(t, "Rina", res.User.Name)

	id, _, err := j.GetUserIDByToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, id)
}

func TestLogin_ExistingUserUpdatesProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	first, err := svc.Login(ctx, domain.LoginRequest{Phone: "0812-1111"})
	require.NoError(t, err)

	second, err := svc.Login(ctx, domain.LoginRequest{Phone: "08121111", Name: "Budi", Email: "budi@example.com"})
	require.NoError(t, err)

	assert.False(t, second.Created)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, "Budi", second.User.Name)
	assert.Equal(t, "budi@example.com", second.User.Email)
	assert.Equal(t, 1, repo.updated)

	_, err = svc.Login(ctx, domain.LoginRequest{Phone: "08121111"})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.updated)
}

func TestLogin_InvalidPhone(t *testing.T) {
	svc, _ := newTestService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), domain.LoginRequest{Phone: "+-- --"})
	assert.ErrorIs(t, err, domain.ErrInvalidPhone)
}

func TestLogin_CreateFails(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = errors.New("db down")
	svc, _ := newTestService(repo)

	_, err := svc.Login(context.Background(), domain.LoginRequest{Phone: "0812"})
	assert.EqualError(t, err, "db down")
}

func TestGetUserByID(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	res, err := svc.Login(ctx, domain.LoginRequest{Phone: "0812"})
	require.NoError(t, err)

	got, err := svc.GetUserByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "0812", got.Phone)

	_, err = svc.GetUserByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrParseUUID)

	_, err = svc.GetUserByID(ctx, "00000000-0000-0000-0000-000000000001")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
