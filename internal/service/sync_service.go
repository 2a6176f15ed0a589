package service

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/knowledge-sync-api/internal/config"
	"github.com/knowledge-sync-api/internal/models"
)

// syncService is the concrete implementation of SyncService
type syncService struct {
	auth    Authenticator
	fetcher ArticleFetcher
	admin   DataStoreAdmin
	docs    DocumentStore
	cfg     *config.Config
	log     zerolog.Logger
}

// newSyncService creates a new SyncService
func newSyncService(
	auth Authenticator,
	fetcher ArticleFetcher,
	admin DataStoreAdmin,
	docs DocumentStore,
	cfg *config.Config,
	log zerolog.Logger,
) *syncService {
	return &syncService{
		auth:    auth,
		fetcher: fetcher,
		admin:   admin,
		docs:    docs,
		cfg:     cfg,
		log:     log.With().Str("service", "sync").Logger(),
	}
}

// Run executes one full resync: authenticate, fetch all published articles,
// ensure the data store exists, then upsert one document per article.
// Authentication and fetch failures abort the run before any write; upsert
// failures are per-article and do not stop the remaining articles.
func (s *syncService) Run(ctx context.Context) *models.SyncResult {
	result := &models.SyncResult{
		SyncID:    uuid.New().String(),
		StartedAt: time.Now(),
	}
	log := s.log.With().Str("sync_id", result.SyncID).Logger()

	log.Info().Msg("Starting Knowledge article sync")

	token, err := s.auth.Authenticate(ctx)
	if err != nil || token == "" {
		log.Error().Err(err).Msg("Salesforce authentication failed")
		return finish(result, http.StatusForbidden, models.MsgNoAccessToken)
	}

	articles, err := s.fetcher.FetchPublishedArticles(ctx, token)
	if err != nil {
		log.Error().Err(err).Msg("Knowledge article fetch failed")
		return finish(result, http.StatusNotFound, models.MsgNoArticlesReturned)
	}
	if len(articles) == 0 {
		log.Warn().Msg("No published Knowledge articles found")
		return finish(result, http.StatusNotFound, models.MsgNoArticlesReturned)
	}
	result.Fetched = len(articles)

	if err := s.admin.EnsureDataStore(ctx); err != nil {
		log.Error().Err(err).Msg("Data store provisioning failed")
		return finish(result, http.StatusInternalServerError, models.MsgDataStoreNotReady)
	}

	s.upsertArticles(ctx, log, articles, result)

	log.Info().
		Int("fetched", result.Fetched).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("failed", result.Failed).
		Msg("Knowledge article sync completed")

	return finish(result, http.StatusOK, models.MsgImportCompleted)
}

// upsertArticles writes each article into the data store, creating the
// document when absent and replacing it when present. Failures are counted
// and logged per article; the loop always runs to completion.
func (s *syncService) upsertArticles(ctx context.Context, log zerolog.Logger, articles []*models.Article, result *models.SyncResult) {
	for _, article := range articles {
		name := s.cfg.Discovery.DocumentName(article.ID)

		exists, err := s.docs.GetDocument(ctx, name)
		if err != nil {
			// Probe errors other than a clean not-found are treated as
			// absent: the subsequent create surfaces the real problem.
			log.Warn().Err(err).
				Str("document_id", article.ID).
				Msg("Document existence probe failed, treating as absent")
			exists = false
		}

		if exists {
			if err := s.docs.UpdateDocument(ctx, name, article.DocumentFields()); err != nil {
				result.Failed++
				log.Error().Err(err).
					Str("document_id", article.ID).
					Msg("Failed to update document")
				continue
			}
			result.Updated++
			log.Info().
				Str("document_id", article.ID).
				Msg("Document updated")
		} else {
			if err := s.docs.CreateDocument(ctx, article.ID, article.DocumentFields()); err != nil {
				result.Failed++
				log.Error().Err(err).
					Str("document_id", article.ID).
					Msg("Failed to upload document")
				continue
			}
			result.Created++
			log.Info().
				Str("document_id", article.ID).
				Msg("Document uploaded")
		}
	}
}

// finish stamps the outcome and duration onto the result
func finish(result *models.SyncResult, status int, message string) *models.SyncResult {
	result.StatusCode = status
	result.Message = message
	result.DurationMs = time.Since(result.StartedAt).Milliseconds()
	return result
}
