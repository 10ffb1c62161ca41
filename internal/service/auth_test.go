package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/model"
)

type fakeUserRepo struct {
	byEmail map[string]*model.User
	byID    map[int64]*model.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*model.User{}, byID: map[int64]*model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) List(_ context.Context, role string) ([]model.User, error) {
	var users []model.User
	for _, u := range f.byID {
		if role == "" || u.Role == role {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func newAuthService(users *fakeUserRepo, addresses *fakeAddressRepo) *AuthService {
	if addresses == nil {
		addresses = newFakeAddressRepo()
	}
	return NewAuthService(users, addresses, "test-secret", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, nil)

	user, token, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name: "Tasnim", Email: "tasnim@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "tasnim@example.com", user.Email)
	assert.Equal(t, "customer", user.Role)
	assert.NotEqual(t, "password123", user.Password)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, nil)

	repo.byEmail["tasnim@example.com"] = &model.User{Email: "tasnim@example.com"}

	_, _, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name: "Tasnim", Email: "tasnim@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, nil)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	repo.byEmail["tasnim@example.com"] = &model.User{
		ID: 1, Email: "tasnim@example.com", Password: string(hashed), Role: "customer",
	}

	_, token, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "tasnim@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, nil)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	repo.byEmail["tasnim@example.com"] = &model.User{
		ID: 1, Email: "tasnim@example.com", Password: string(hashed),
	}

	_, _, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "tasnim@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthService(newFakeUserRepo(), nil)

	_, _, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "nobody@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_Profile_IncludesAddresses(t *testing.T) {
	users := newFakeUserRepo()
	addresses := newFakeAddressRepo()
	svc := newAuthService(users, addresses)

	users.byID[1] = &model.User{ID: 1, Email: "tasnim@example.com"}
	addresses.add(&model.Address{UserID: 1, AddressLine: "12 Moon St", City: "Dhaka", IsDefault: true})

	user, err := svc.Profile(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, user.Addresses, 1)
	assert.True(t, user.Addresses[0].IsDefault)
}

func TestAuthService_UpdateProfile_NothingToUpdate(t *testing.T) {
	svc := newAuthService(newFakeUserRepo(), nil)

	_, err := svc.UpdateProfile(context.Background(), 1, dto.UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)
}

func TestAuthService_UpdateProfile_RehashesPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, nil)

	users.byID[1] = &model.User{ID: 1, Email: "tasnim@example.com", Password: "old-hash"}

	newPassword := "changed-password"
	user, err := svc.UpdateProfile(context.Background(), 1, dto.UpdateProfileRequest{Password: &newPassword})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(newPassword)))
}
