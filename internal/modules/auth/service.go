package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

// usernameRe mirrors the classic unicode username rule: word characters plus
// the . @ + - punctuation set.
var usernameRe = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

const reservedUsername = "me"

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}

type Service struct {
	users   repository.UserRepository
	follows repository.FollowRepository
	jwt     jwtService
}

func NewService(users repository.UserRepository, follows repository.FollowRepository, jwt jwtService) *Service {
	return &Service{users: users, follows: follows, jwt: jwt}
}

func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return ErrInvalidUsername
	}
	if strings.EqualFold(username, reservedUsername) {
		return ErrReservedUsername
	}
	return nil
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if err := ValidateUsername(req.Username); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// pre-checks race with concurrent registrations; the unique index wins
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (string, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.jwt.GenerateToken(user.ID, string(user.Role))
}

func (s *Service) Me(ctx context.Context, userID int64) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := toUserResponse(user, false)
	return &resp, nil
}

func (s *Service) GetUser(ctx context.Context, viewer domain.Viewer, id int64) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	subscribed := false
	if viewer.Authenticated {
		subscribed, err = s.follows.Exists(ctx, viewer.ID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	resp := toUserResponse(user, subscribed)
	return &resp, nil
}

func (s *Service) ListUsers(ctx context.Context, viewer domain.Viewer, limit, offset int) ([]UserResponse, int64, error) {
	users, total, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	following := map[int64]bool{}
	if viewer.Authenticated {
		ids, err := s.follows.ListFollowingIDs(ctx, viewer.ID)
		if err != nil {
			return nil, 0, err
		}
		for _, id := range ids {
			following[id] = true
		}
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i], following[users[i].ID]))
	}
	return out, total, nil
}

func toUserResponse(u *domain.User, subscribed bool) UserResponse {
	return UserResponse{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}
