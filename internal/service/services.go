package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/knowledge-sync-api/internal/config"
	"github.com/knowledge-sync-api/internal/models"
)

// Authenticator obtains a bearer token for Salesforce REST calls
type Authenticator interface {
	Authenticate(ctx context.Context) (string, error)
}

// ArticleFetcher retrieves all published Knowledge articles, body included
type ArticleFetcher interface {
	FetchPublishedArticles(ctx context.Context, accessToken string) ([]*models.Article, error)
}

// DataStoreAdmin provisions the target search data store
type DataStoreAdmin interface {
	EnsureDataStore(ctx context.Context) error
}

// DocumentStore manages documents inside the data store
type DocumentStore interface {
	GetDocument(ctx context.Context, name string) (bool, error)
	CreateDocument(ctx context.Context, documentID string, fields map[string]string) error
	UpdateDocument(ctx context.Context, name string, fields map[string]string) error
}

// SyncService runs one full article resync
type SyncService interface {
	Run(ctx context.Context) *models.SyncResult
}

// Services holds all service interfaces
type Services struct {
	Sync SyncService
}

// NewServices creates all services
func NewServices(
	auth Authenticator,
	fetcher ArticleFetcher,
	admin DataStoreAdmin,
	docs DocumentStore,
	cfg *config.Config,
	log zerolog.Logger,
) *Services {
	return &Services{
		Sync: newSyncService(auth, fetcher, admin, docs, cfg, log),
	}
}
