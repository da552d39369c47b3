package user

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"worthy-waste/domain"
	"worthy-waste/entities"
	"worthy-waste/pkg/jwt"
)

type (
	UserService interface {
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		GetUserByID(ctx context.Context, id string) (domain.UserResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

// NormalizePhone keeps only the digits of a phone number.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	phone := NormalizePhone(req.Phone)
	if phone == "" {
		return domain.LoginResponse{}, domain.ErrInvalidPhone
	}
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)

	user, created, err := s.findOrCreate(ctx, phone, name, email)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	if !created && ((name != "" && name != user.Name) || (email != "" && email != user.Email)) {
		if name != "" {
			user.Name = name
		}
		if email != "" {
			user.Email = email
		}
		if err := s.userRepository.UpdateUser(ctx, user); err != nil {
			return domain.LoginResponse{}, err
		}
	}

	return domain.LoginResponse{
		Token:   s.jwtService.GenerateTokenUser(user.ID.String(), domain.RoleUser),
		Created: created,
		User:    toUserResponse(user),
	}, nil
}

func (s *userService) findOrCreate(ctx context.Context, phone, name, email string) (*entities.User, bool, error) {
	user, err := s.userRepository.GetUserByPhone(ctx, phone)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user = &entities.User{
		ID:       uuid.New(),
		Phone:    phone,
		Name:     name,
		Email:    email,
		IsActive: true,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		// a concurrent login may have created the same phone first
		existing, getErr := s.userRepository.GetUserByPhone(ctx, phone)
		if getErr != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	log.Infof("created user %s", user.ID)
	return user, true, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (domain.UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.UserResponse{}, domain.ErrParseUUID
	}
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:             u.ID.String(),
		Phone:          u.Phone,
		Name:           u.Name,
		Email:          u.Email,
		GreenCoins:     u.GreenCoins,
		TotalKgSold:    u.TotalKgSold,
		TotalEarned:    u.TotalEarned,
		SavedFoodCount: u.SavedFoodCount,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
	}
}
