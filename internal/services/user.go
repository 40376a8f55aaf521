package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"
	"time"

	"ecospin/internal/datastore"
	"ecospin/internal/models"
	"ecospin/internal/pkg/caching"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceUser struct {
	container  *do.Injector
	postgresDB *bun.DB
	cache      caching.Cache
}

func NewServiceUser(container *do.Injector) (*ServiceUser, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceUser{container, postgresDB, cache}, nil
}

func (service *ServiceUser) FindOrCreateUser(ctx context.Context, userAuth *models.UserFromAuth) (*models.User, error) {
	if userAuth == nil {
		return nil, errors.New("userAuth is nil")
	}

	user, err := service.FindUserByID(ctx, userAuth.ID)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	if user != nil {
		// keep auth-owned profile fields in sync with the token
		if userAuth.PhotoURL != user.PhotoURL || userAuth.LanguageCode != user.LanguageCode {
			user.PhotoURL = userAuth.PhotoURL
			user.LanguageCode = userAuth.LanguageCode
			user.UpdatedAt = time.Now()
			if _, err := datastore.EditUser(ctx, service.postgresDB, user); err != nil {
				return nil, err
			}
			//nolint:errcheck
			service.ClearUserCache(ctx, user.ID)
		}
		return user, nil
	}

	now := time.Now()
	newUser := &models.User{
		Username:     strings.ToLower(userAuth.Username),
		Email:        strings.ToLower(userAuth.Email),
		Role:         models.RoleUser,
		Level:        models.LevelBeginner,
		LanguageCode: userAuth.LanguageCode,
		PhotoURL:     userAuth.PhotoURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if userAuth.ID != 0 {
		newUser.ID = userAuth.ID
	}
	if userAuth.Role == models.RoleAdmin {
		newUser.Role = models.RoleAdmin
	}

	log.Println("Create new user:", "username:", newUser.Username)
	user, err = datastore.CreateUser(ctx, service.postgresDB, newUser)
	if err != nil {
		return nil, err
	}

	user.IsNewUser = true
	return user, nil
}

func (service *ServiceUser) FindUserByID(ctx context.Context, userID int64) (*models.User, error) {
	callback := func() (*models.User, error) {
		return datastore.FindUserByID(ctx, service.postgresDB, userID)
	}
	return caching.UseCache(ctx, service.cache, DBKeyUser(userID), CACHE_TTL_5_MINS, callback)
}

func (service *ServiceUser) GetProgress(ctx context.Context, userID int64) ([]*models.UserProgress, error) {
	return datastore.ListUserProgress(ctx, service.postgresDB, userID)
}

func (service *ServiceUser) ClearUserCache(ctx context.Context, userID int64) error {
	return service.cache.Delete(ctx, DBKeyUser(userID))
}
