package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Fixed identifiers for the sync pipeline. The Salesforce endpoints and the
// Discovery Engine partition names are not deployment-configurable.
const (
	// SalesforceTokenURL is the OAuth2 password-grant token endpoint.
	SalesforceTokenURL = "https://login.salesforce.com/services/oauth2/token"

	// SalesforceAPIVersion is the REST API version used for Knowledge calls.
	SalesforceAPIVersion = "v61.0"

	// ArticlePageSize is the page size requested from the Knowledge listing.
	ArticlePageSize = 100

	// BranchID is the Discovery Engine branch documents are written to.
	BranchID = "default_branch"

	// CollectionID is the Discovery Engine collection data stores live under.
	CollectionID = "default_collection"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Salesforce connection settings
	Salesforce SalesforceConfig

	// Discovery Engine (Vertex AI Search) settings
	Discovery DiscoveryConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// SalesforceConfig holds Salesforce credentials and endpoints
type SalesforceConfig struct {
	ClientID      string
	ClientSecret  string
	Username      string
	Password      string
	SecurityToken string

	// Domain is the My Domain instance URL all Knowledge calls go to.
	Domain string

	// ArticleBaseURL is the Lightning URL prefix public article links
	// are built from.
	ArticleBaseURL string

	// TokenURL is the OAuth token endpoint, overridable in tests only.
	TokenURL string

	// DetailConcurrency bounds the number of in-flight article detail
	// fetches. 1 means strictly sequential.
	DetailConcurrency int
}

// DiscoveryConfig holds Discovery Engine resource identifiers
type DiscoveryConfig struct {
	ProjectID            string
	Location             string
	DataStoreID          string
	DataStoreDisplayName string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 600*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Salesforce: SalesforceConfig{
			ClientID:          getEnv("SF_CLIENT_ID", ""),
			ClientSecret:      getEnv("SF_CLIENT_SECRET", ""),
			Username:          getEnv("SF_USERNAME", ""),
			Password:          getEnv("SF_PASSWORD", ""),
			SecurityToken:     getEnv("SF_SECURITY_TOKEN", ""),
			Domain:            "https://yourdomain-dev-ed.develop.my.salesforce.com",
			ArticleBaseURL:    "https://yourdomain-dev-ed.develop.lightning.force.com/lightning/r/Knowledge__kav/",
			TokenURL:          SalesforceTokenURL,
			DetailConcurrency: getIntEnv("SF_DETAIL_CONCURRENCY", 4),
		},
		Discovery: DiscoveryConfig{
			ProjectID:            getEnv("GCP_PROJECT_ID", ""),
			Location:             getEnv("GCP_LOCATION", ""),
			DataStoreID:          getEnv("DATA_STORE_ID", ""),
			DataStoreDisplayName: getEnv("DATA_STORE_DISPLAY_NAME", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	sf := &c.Salesforce
	if sf.ClientID == "" {
		return fmt.Errorf("SF_CLIENT_ID is required")
	}
	if sf.ClientSecret == "" {
		return fmt.Errorf("SF_CLIENT_SECRET is required")
	}
	if sf.Username == "" {
		return fmt.Errorf("SF_USERNAME is required")
	}
	if sf.Password == "" {
		return fmt.Errorf("SF_PASSWORD is required")
	}
	if sf.SecurityToken == "" {
		return fmt.Errorf("SF_SECURITY_TOKEN is required")
	}
	if sf.DetailConcurrency < 1 {
		return fmt.Errorf("SF_DETAIL_CONCURRENCY must be at least 1")
	}
	d := &c.Discovery
	if d.ProjectID == "" {
		return fmt.Errorf("GCP_PROJECT_ID is required")
	}
	if d.Location == "" {
		return fmt.Errorf("GCP_LOCATION is required")
	}
	if d.DataStoreID == "" {
		return fmt.Errorf("DATA_STORE_ID is required")
	}
	if d.DataStoreDisplayName == "" {
		return fmt.Errorf("DATA_STORE_DISPLAY_NAME is required")
	}
	return nil
}

// CollectionParent returns the collection path data stores are scoped to.
func (d *DiscoveryConfig) CollectionParent() string {
	return fmt.Sprintf(
		"projects/%s/locations/%s/collections/%s",
		d.ProjectID, d.Location, CollectionID,
	)
}

// DataStoreName returns the fully qualified name of the configured data store.
func (d *DiscoveryConfig) DataStoreName() string {
	return fmt.Sprintf("%s/dataStores/%s", d.CollectionParent(), d.DataStoreID)
}

// BranchParent returns the branch path documents are created under.
func (d *DiscoveryConfig) BranchParent() string {
	return fmt.Sprintf("%s/branches/%s", d.DataStoreName(), BranchID)
}

// DocumentName returns the fully qualified name of a single document.
func (d *DiscoveryConfig) DocumentName(documentID string) string {
	return fmt.Sprintf("%s/documents/%s", d.BranchParent(), documentID)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
