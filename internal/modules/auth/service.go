package auth

import (
	"context"
	"errors"
	"strings"

	"fdrs/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type jwtService interface {
	GenerateToken(userID int64, isAdmin bool) (string, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

type ResourceReader interface {
	ListByOwner(ctx context.Context, userID int64) ([]domain.Resource, error)
}

type FavoriteReader interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error)
}

// Service contains the account logic: registration, login, profile.
type Service struct {
	users     UserRepository
	resources ResourceReader
	favorites FavoriteReader
	jwt       jwtService
}

func NewService(users UserRepository, resources ResourceReader, favorites FavoriteReader, jwt jwtService) *Service {
	return &Service{
		users:     users,
		resources: resources,
		favorites: favorites,
		jwt:       jwt,
	}
}

// Register creates an account. Username and email uniqueness ride on the
// storage-level unique indexes; a constraint hit maps to the conflict
// sentinels.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u := &domain.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(strings.ToLower(req.Email)),
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, u); err != nil {
		if isUniqueViolation(err) {
			if _, lookupErr := s.users.GetByEmail(ctx, u.Email); lookupErr == nil {
				return nil, "", ErrEmailTaken
			}
			return nil, "", ErrUsernameTaken
		}
		return nil, "", err
	}

	token, err := s.jwt.GenerateToken(u.ID, u.IsAdmin)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(u.ID, u.IsAdmin)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// Profile returns the account with its submitted resources and bookmarks.
func (s *Service) Profile(ctx context.Context, userID int64) (*ProfileResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	resources, err := s.resources.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProfileResponse{
		User:      u,
		Resources: resources,
		Favorites: favorites,
	}, nil
}

// UpdateProfile changes username and/or email. Uniqueness is checked
// against other accounts; the unique index backs the check up under
// concurrency.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.NewUsername != "" && req.NewUsername != u.Username {
		if existing, err := s.users.GetByUsername(ctx, req.NewUsername); err == nil && existing.ID != userID {
			return nil, ErrUsernameTaken
		}
		u.Username = strings.TrimSpace(req.NewUsername)
	}

	if req.NewEmail != "" && !strings.EqualFold(req.NewEmail, u.Email) {
		if existing, err := s.users.GetByEmail(ctx, req.NewEmail); err == nil && existing.ID != userID {
			return nil, ErrEmailTaken
		}
		u.Email = strings.TrimSpace(strings.ToLower(req.NewEmail))
	}

	if err := s.users.Update(ctx, u); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
