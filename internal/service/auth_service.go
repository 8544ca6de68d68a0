package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-chathub-be/internal/config"
	"ai-chathub-be/internal/dto"
	"ai-chathub-be/internal/entity"
	"ai-chathub-be/internal/pkg/logger"
	"ai-chathub-be/internal/repository/specification"
	"ai-chathub-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

type IAuthService interface {
	GetLoginURL() (*dto.LoginResponse, error)
	HandleCallback(ctx context.Context, code string) (*dto.CallbackResponse, error)
}

type authService struct {
	uowFactory  unitofwork.RepositoryFactory
	oauthConf   *oauth2.Config
	userInfoURL string
	jwtSecret   string
	logger      logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, cfg config.AuthConfig, log logger.ILogger) IAuthService {
	conf := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  cfg.AuthURL,
			TokenURL: cfg.TokenURL,
		},
	}

	return &authService{
		uowFactory:  uowFactory,
		oauthConf:   conf,
		userInfoURL: cfg.UserInfoURL,
		jwtSecret:   cfg.JWTSecret,
		logger:      log,
	}
}

func (s *authService) GetLoginURL() (*dto.LoginResponse, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	state := base64.URLEncoding.EncodeToString(b)

	return &dto.LoginResponse{AuthURL: s.oauthConf.AuthCodeURL(state)}, nil
}

func (s *authService) HandleCallback(ctx context.Context, code string) (*dto.CallbackResponse, error) {
	token, err := s.oauthConf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	claims, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}
	if claims.Sub == "" {
		return nil, fmt.Errorf("identity provider returned no subject")
	}

	user, err := s.findOrCreateUser(ctx, claims)
	if err != nil {
		return nil, err
	}

	signed, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Auth", "User logged in", map[string]interface{}{"user_id": user.Id.String()})

	return &dto.CallbackResponse{
		Token: signed,
		User: dto.UserResponse{
			Id:        user.Id,
			Email:     user.Email,
			FullName:  user.FullName,
			AvatarURL: user.AvatarURL,
		},
	}, nil
}

type idpClaims struct {
	Sub     string `json:"sub"`
	Id      string `json:"id"` // some IdPs use "id" instead of "sub"
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *authService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*idpClaims, error) {
	client := s.oauthConf.Client(ctx, token)
	resp, err := client.Get(s.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request returned status %d", resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var claims idpClaims
	if err := json.Unmarshal(content, &claims); err != nil {
		return nil, err
	}
	if claims.Sub == "" {
		claims.Sub = claims.Id
	}
	return &claims, nil
}

// findOrCreateUser creates the user lazily on first authenticated visit and
// refreshes profile fields on later logins.
func (s *authService) findOrCreateUser(ctx context.Context, claims *idpClaims) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.BySubject{Subject: claims.Sub})
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &entity.User{
			Id:        uuid.New(),
			Subject:   claims.Sub,
			Email:     claims.Email,
			FullName:  claims.Name,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if claims.Picture != "" {
			user.AvatarURL = &claims.Picture
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("Auth", "Created user on first visit", map[string]interface{}{"user_id": user.Id.String()})
		return user, nil
	}

	changed := false
	if claims.Email != "" && claims.Email != user.Email {
		user.Email = claims.Email
		changed = true
	}
	if claims.Name != "" && claims.Name != user.FullName {
		user.FullName = claims.Name
		changed = true
	}
	if claims.Picture != "" && (user.AvatarURL == nil || *user.AvatarURL != claims.Picture) {
		user.AvatarURL = &claims.Picture
		changed = true
	}
	if changed {
		user.UpdatedAt = time.Now()
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (s *authService) issueToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
