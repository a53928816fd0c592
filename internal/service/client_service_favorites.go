package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-catalog-mirror/internal/adapter"
	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/internal/store"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

type clientFavoriteService struct {
	favorites store.FavoriteRepository
	remote    adapter.RemoteAdapter
	logger    *logger.Logger
}

// NewClientFavoriteService creates a favorites service. The user is the
// subject of the access token held by remote.
func NewClientFavoriteService(favorites store.FavoriteRepository, remote adapter.RemoteAdapter, log *logger.Logger) ClientFavoriteService {
	return &clientFavoriteService{favorites: favorites, remote: remote, logger: log}
}

func (f *clientFavoriteService) Add(ctx context.Context, recordID string) (models.FavoriteRecord, error) {
	userID, err := f.userID()
	if err != nil {
		return models.FavoriteRecord{}, err
	}

	favorite, err := f.favorites.AddFavorite(ctx, userID, recordID)
	if err != nil {
		return models.FavoriteRecord{}, fmt.Errorf("add favorite %s: %w", recordID, err)
	}
	return favorite, nil
}

func (f *clientFavoriteService) Remove(ctx context.Context, recordID string) error {
	userID, err := f.userID()
	if err != nil {
		return err
	}

	if err = f.favorites.RemoveFavorite(ctx, userID, recordID); err != nil {
		return fmt.Errorf("remove favorite %s: %w", recordID, err)
	}
	return nil
}

func (f *clientFavoriteService) List(ctx context.Context) ([]models.FavoriteRecord, error) {
	userID, err := f.userID()
	if err != nil {
		return nil, err
	}
	return f.favorites.GetFavorites(ctx, userID)
}

func (f *clientFavoriteService) userID() (string, error) {
	userID, ok := f.remote.UserID()
	if !ok {
		return "", ErrUnauthenticated
	}
	return userID, nil
}
