package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	discoveryengine "google.golang.org/api/discoveryengine/v1"
	"google.golang.org/api/googleapi"

	"github.com/knowledge-sync-api/internal/config"
)

// DocumentClient manages documents inside the data store's default branch
type DocumentClient struct {
	svc *discoveryengine.Service
	cfg *config.DiscoveryConfig
	log zerolog.Logger
}

// NewDocumentClient creates a new DocumentClient
func NewDocumentClient(svc *discoveryengine.Service, cfg *config.DiscoveryConfig, log zerolog.Logger) *DocumentClient {
	return &DocumentClient{
		svc: svc,
		cfg: cfg,
		log: log.With().Str("client", "discovery-documents").Logger(),
	}
}

// GetDocument reports whether the document with the given fully qualified
// name exists. A 404 from the store is the absent signal, not an error.
func (c *DocumentClient) GetDocument(ctx context.Context, name string) (bool, error) {
	_, err := c.svc.Projects.Locations.Collections.DataStores.Branches.Documents.
		Get(name).
		Context(ctx).
		Do()
	if err == nil {
		return true, nil
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return false, nil
	}
	return false, fmt.Errorf("get document %s: %w", name, err)
}

// CreateDocument inserts a new document under the default branch, keyed by
// the article identifier.
func (c *DocumentClient) CreateDocument(ctx context.Context, documentID string, fields map[string]string) error {
	doc, err := buildDocument(fields)
	if err != nil {
		return err
	}

	_, err = c.svc.Projects.Locations.Collections.DataStores.Branches.Documents.
		Create(c.cfg.BranchParent(), doc).
		DocumentId(documentID).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("create document %s: %w", documentID, err)
	}
	return nil
}

// UpdateDocument replaces an existing document's fields in place
func (c *DocumentClient) UpdateDocument(ctx context.Context, name string, fields map[string]string) error {
	doc, err := buildDocument(fields)
	if err != nil {
		return err
	}
	doc.Name = name

	_, err = c.svc.Projects.Locations.Collections.DataStores.Branches.Documents.
		Patch(name, doc).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update document %s: %w", name, err)
	}
	return nil
}

// buildDocument wraps the article's fields as the document's struct data.
// Every field value is already text; the store receives no typed fields.
func buildDocument(fields map[string]string) (*discoveryengine.GoogleCloudDiscoveryengineV1Document, error) {
	structData, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal document fields: %w", err)
	}
	return &discoveryengine.GoogleCloudDiscoveryengineV1Document{
		StructData: googleapi.RawMessage(structData),
	}, nil
}
