// Package discovery wraps the Vertex AI Search (Discovery Engine) REST API
// for data-store provisioning and document upserts.
package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	discoveryengine "google.golang.org/api/discoveryengine/v1"
	"google.golang.org/api/option"

	"github.com/knowledge-sync-api/internal/config"
)

// NewService builds the Discovery Engine API client. Production callers rely
// on application default credentials; tests inject option.WithEndpoint and
// option.WithoutAuthentication.
func NewService(ctx context.Context, opts ...option.ClientOption) (*discoveryengine.Service, error) {
	return discoveryengine.NewService(ctx, opts...)
}

// AdminClient provisions the target data store
type AdminClient struct {
	svc *discoveryengine.Service
	cfg *config.DiscoveryConfig
	log zerolog.Logger
}

// NewAdminClient creates a new AdminClient
func NewAdminClient(svc *discoveryengine.Service, cfg *config.DiscoveryConfig, log zerolog.Logger) *AdminClient {
	return &AdminClient{
		svc: svc,
		cfg: cfg,
		log: log.With().Str("client", "discovery-admin").Logger(),
	}
}

// EnsureDataStore makes sure the configured data store exists, creating it on
// first run. The check and the create are not atomic; concurrent runs against
// the same store must be serialized by the caller.
func (c *AdminClient) EnsureDataStore(ctx context.Context) error {
	exists, err := c.dataStoreExists(ctx)
	if err != nil {
		return fmt.Errorf("list data stores: %w", err)
	}
	if exists {
		c.log.Info().
			Str("data_store", c.cfg.DataStoreID).
			Msg("Data store already exists")
		return nil
	}

	dataStore := &discoveryengine.GoogleCloudDiscoveryengineV1DataStore{
		DisplayName:      c.cfg.DataStoreDisplayName,
		IndustryVertical: "GENERIC",
	}

	_, err = c.svc.Projects.Locations.Collections.DataStores.
		Create(c.cfg.CollectionParent(), dataStore).
		DataStoreId(c.cfg.DataStoreID).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("create data store %s: %w", c.cfg.DataStoreID, err)
	}

	c.log.Info().
		Str("data_store", c.cfg.DataStoreID).
		Msg("Data store created")
	return nil
}

// dataStoreExists reports whether a data store with the configured id exists
// under the collection parent, matching on the trailing name segment.
func (c *AdminClient) dataStoreExists(ctx context.Context) (bool, error) {
	found := false
	err := c.svc.Projects.Locations.Collections.DataStores.
		List(c.cfg.CollectionParent()).
		Pages(ctx, func(resp *discoveryengine.GoogleCloudDiscoveryengineV1ListDataStoresResponse) error {
			for _, ds := range resp.DataStores {
				parts := strings.Split(ds.Name, "/")
				if parts[len(parts)-1] == c.cfg.DataStoreID {
					found = true
				}
			}
			return nil
		})
	if err != nil {
		return false, err
	}
	return found, nil
}
