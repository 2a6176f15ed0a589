package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/knowledge-sync-api/internal/config"
	"github.com/knowledge-sync-api/internal/mocks"
	"github.com/knowledge-sync-api/internal/models"
	"github.com/knowledge-sync-api/internal/service"
)

func benchArticles(count int) []*models.Article {
	articles := make([]*models.Article, 0, count)
	for i := 0; i < count; i++ {
		articles = append(articles, &models.Article{
			ID:                fmt.Sprintf("ka%06d", i),
			ArticleNumber:     fmt.Sprintf("%06d", i),
			Title:             fmt.Sprintf("Benchmark Article %d", i),
			LastPublishedDate: "2024-06-01T00:00:00Z",
			Text:              "A reasonably sized article body used for benchmarking the upsert path.",
			URL:               fmt.Sprintf("https://example.lightning.force.com/lightning/r/Knowledge__kav/ka%06d/view", i),
		})
	}
	return articles
}

// BenchmarkDocumentFields benchmarks the article-to-document field coercion
func BenchmarkDocumentFields(b *testing.B) {
	articles := benchArticles(100)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		for _, article := range articles {
			_ = article.DocumentFields()
		}
	}
}

// BenchmarkSyncRun benchmarks a full sync run over mocked backends
func BenchmarkSyncRun(b *testing.B) {
	cfg := &config.Config{
		Discovery: config.DiscoveryConfig{
			ProjectID:            "bench-project",
			Location:             "global",
			DataStoreID:          "sf-articles",
			DataStoreDisplayName: "Salesforce Articles",
		},
	}

	auth := mocks.NewMockAuthenticator()
	fetcher := mocks.NewMockArticleFetcher()
	fetcher.Articles = benchArticles(1000)
	admin := mocks.NewMockDataStoreAdmin()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		// Fresh store each iteration so every run takes the create path.
		docs := mocks.NewMockDocumentStore()
		services := service.NewServices(auth, fetcher, admin, docs, cfg, zerolog.Nop())

		result := services.Sync.Run(context.Background())
		if !result.Succeeded() {
			b.Fatalf("Sync run failed: %s", result.Message)
		}
	}
}
