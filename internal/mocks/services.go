package mocks

import (
	"context"

	"github.com/knowledge-sync-api/internal/models"
	"github.com/knowledge-sync-api/internal/service"
)

// MockAuthenticator is a mock implementation of service.Authenticator
type MockAuthenticator struct {
	Token            string
	Err              error
	AuthenticateFunc func(ctx context.Context) (string, error)
	Calls            int
}

// Verify interface compliance
var _ service.Authenticator = (*MockAuthenticator)(nil)

func NewMockAuthenticator() *MockAuthenticator {
	return &MockAuthenticator{Token: "mock-access-token"}
}

func (m *MockAuthenticator) Authenticate(ctx context.Context) (string, error) {
	m.Calls++
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx)
	}
	return m.Token, m.Err
}

// MockArticleFetcher is a mock implementation of service.ArticleFetcher
type MockArticleFetcher struct {
	Articles   []*models.Article
	Err        error
	FetchFunc  func(ctx context.Context, accessToken string) ([]*models.Article, error)
	Calls      int
	SeenTokens []string
}

// Verify interface compliance
var _ service.ArticleFetcher = (*MockArticleFetcher)(nil)

func NewMockArticleFetcher() *MockArticleFetcher {
	return &MockArticleFetcher{}
}

func (m *MockArticleFetcher) FetchPublishedArticles(ctx context.Context, accessToken string) ([]*models.Article, error) {
	m.Calls++
	m.SeenTokens = append(m.SeenTokens, accessToken)
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, accessToken)
	}
	return m.Articles, m.Err
}

// MockDataStoreAdmin is a mock implementation of service.DataStoreAdmin
type MockDataStoreAdmin struct {
	Err   error
	Calls int
}

// Verify interface compliance
var _ service.DataStoreAdmin = (*MockDataStoreAdmin)(nil)

func NewMockDataStoreAdmin() *MockDataStoreAdmin {
	return &MockDataStoreAdmin{}
}

func (m *MockDataStoreAdmin) EnsureDataStore(ctx context.Context) error {
	m.Calls++
	return m.Err
}

// MockDocumentStore is a mock implementation of service.DocumentStore.
// Documents maps fully qualified names to stored field sets; existing names
// route upserts to the update path.
type MockDocumentStore struct {
	Documents map[string]map[string]string

	// QualifyName maps a document id to the fully qualified name used as
	// the Documents key, so created documents are visible to later probes.
	// Defaults to the id itself.
	QualifyName func(documentID string) string

	GetErr    map[string]error
	CreateErr map[string]error
	UpdateErr map[string]error

	GetCalls    []string
	CreateCalls []string
	UpdateCalls []string
}

// Verify interface compliance
var _ service.DocumentStore = (*MockDocumentStore)(nil)

func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{
		Documents: make(map[string]map[string]string),
		GetErr:    make(map[string]error),
		CreateErr: make(map[string]error),
		UpdateErr: make(map[string]error),
	}
}

func (m *MockDocumentStore) GetDocument(ctx context.Context, name string) (bool, error) {
	m.GetCalls = append(m.GetCalls, name)
	if err := m.GetErr[name]; err != nil {
		return false, err
	}
	_, exists := m.Documents[name]
	return exists, nil
}

func (m *MockDocumentStore) CreateDocument(ctx context.Context, documentID string, fields map[string]string) error {
	m.CreateCalls = append(m.CreateCalls, documentID)
	if err := m.CreateErr[documentID]; err != nil {
		return err
	}
	m.Documents[m.qualify(documentID)] = fields
	return nil
}

func (m *MockDocumentStore) qualify(documentID string) string {
	if m.QualifyName != nil {
		return m.QualifyName(documentID)
	}
	return documentID
}

func (m *MockDocumentStore) UpdateDocument(ctx context.Context, name string, fields map[string]string) error {
	m.UpdateCalls = append(m.UpdateCalls, name)
	if err := m.UpdateErr[name]; err != nil {
		return err
	}
	m.Documents[name] = fields
	return nil
}

// MockSyncService is a mock implementation of service.SyncService
type MockSyncService struct {
	Result  *models.SyncResult
	RunFunc func(ctx context.Context) *models.SyncResult
	Calls   int
}

// Verify interface compliance
var _ service.SyncService = (*MockSyncService)(nil)

func NewMockSyncService() *MockSyncService {
	return &MockSyncService{}
}

func (m *MockSyncService) Run(ctx context.Context) *models.SyncResult {
	m.Calls++
	if m.RunFunc != nil {
		return m.RunFunc(ctx)
	}
	return m.Result
}
