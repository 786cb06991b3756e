package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cartx/internal/models"
	"cartx/internal/repositories"
	"cartx/internal/session"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles signup, login and the sessions they open.
type AuthService struct {
	userRepo   repositories.UserRepository
	sessions   *session.Store
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, sessions *session.Store, jwtSecret string, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		sessions:   sessions,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
		logger:     logger,
	}
}

// RegisterUser creates an account from a signup form. The display name is
// the username and the address is assembled from its parts.
func (s *AuthService) RegisterUser(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	if exists {
		return nil, ErrAlreadyRegistered
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:    req.Username,
		Password:    string(hashedPassword),
		Email:       req.Email,
		Name:        req.Username,
		PhoneNumber: req.Phone,
		Address:     fmt.Sprintf("%s %s, %s", req.Building, req.Street, req.City),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	s.logger.Info("user registered", zap.String("username", user.Username))
	return user, nil
}

// LoginUser authenticates a user, opens a session and returns a JWT bound to it.
func (s *AuthService) LoginUser(ctx context.Context, username, password string) (string, *session.Context, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			s.logger.Error("login lookup failed", zap.String("username", username), zap.Error(err))
		}
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	sess := s.sessions.Create(user.ID, user.Username)

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    user.ID,
		"username":   user.Username,
		"session_id": sess.ID,
		"exp":        now.Add(s.tokenDurat).Unix(),
		"iat":        now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		s.sessions.Delete(sess.ID)
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user logged in", zap.String("username", user.Username), zap.String("session_id", sess.ID))
	return tokenString, sess, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// Session resolves the live session named by a token's claims.
func (s *AuthService) Session(claims jwt.MapClaims) (*session.Context, error) {
	id, _ := claims["session_id"].(string)
	if id == "" {
		return nil, session.ErrSessionNotFound
	}
	return s.sessions.Get(id)
}

// Logout ends the session and discards its cart.
func (s *AuthService) Logout(sess *session.Context) {
	if _, err := sess.Navigate(session.EventLogout); err != nil {
		s.logger.Debug("logout from unexpected screen", zap.String("screen", string(sess.Screen())))
	}
	s.sessions.Delete(sess.ID)
	s.logger.Info("user logged out", zap.String("username", sess.Username), zap.String("session_id", sess.ID))
}
