package salesforce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/knowledge-sync-api/internal/config"
	"github.com/knowledge-sync-api/internal/models"
)

// defaultTimeout bounds every Salesforce REST call.
const defaultTimeout = 30 * time.Second

// Client calls the Salesforce Knowledge REST API
type Client struct {
	cfg        *config.SalesforceConfig
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a new Salesforce Knowledge client
func NewClient(cfg *config.SalesforceConfig, log zerolog.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        log.With().Str("client", "salesforce").Logger(),
	}
}

// articleSummary is one entry of the Knowledge listing response
type articleSummary struct {
	ID                string `json:"id"`
	ArticleNumber     string `json:"articleNumber"`
	Title             string `json:"title"`
	LastPublishedDate string `json:"lastPublishedDate"`
	URL               string `json:"url"`
}

// articlePage is one page of the Knowledge listing response
type articlePage struct {
	Articles    []articleSummary `json:"articles"`
	NextPageURL string           `json:"nextPageUrl"`
}

// articleDetail is the per-article detail response; the body text is the
// value of the first layout item.
type articleDetail struct {
	LayoutItems []struct {
		Value string `json:"value"`
	} `json:"layoutItems"`
}

// FetchPublishedArticles pages through all published Knowledge articles and
// resolves each one's body text with a per-article detail call. The returned
// slice preserves listing order. Any listing or detail failure aborts the
// whole fetch: a partial article list is never returned.
func (c *Client) FetchPublishedArticles(ctx context.Context, accessToken string) ([]*models.Article, error) {
	pageURL := fmt.Sprintf(
		"%s/services/data/%s/support/knowledgeArticles?pageSize=%d&published=true",
		c.cfg.Domain, config.SalesforceAPIVersion, config.ArticlePageSize,
	)

	var articles []*models.Article
	pages := 0

	for pageURL != "" {
		var page articlePage
		if err := c.getJSON(ctx, accessToken, pageURL, &page); err != nil {
			return nil, fmt.Errorf("list articles: %w", err)
		}
		pages++

		records, err := c.resolvePage(ctx, accessToken, page.Articles)
		if err != nil {
			return nil, err
		}
		articles = append(articles, records...)

		if page.NextPageURL == "" {
			break
		}
		pageURL = c.cfg.Domain + page.NextPageURL
	}

	c.log.Info().
		Int("pages", pages).
		Int("articles", len(articles)).
		Msg("Fetched published Knowledge articles")

	return articles, nil
}

// resolvePage fetches the body text for every summary on one listing page.
// Detail calls run concurrently up to the configured limit; results keep the
// listing order, and the first failure cancels the rest.
func (c *Client) resolvePage(ctx context.Context, accessToken string, summaries []articleSummary) ([]*models.Article, error) {
	records := make([]*models.Article, len(summaries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.DetailConcurrency)

	for i, summary := range summaries {
		i, summary := i, summary
		g.Go(func() error {
			text, err := c.fetchArticleText(gctx, accessToken, summary.URL)
			if err != nil {
				return fmt.Errorf("article %s detail: %w", summary.ID, err)
			}
			records[i] = &models.Article{
				ID:                summary.ID,
				ArticleNumber:     summary.ArticleNumber,
				Title:             summary.Title,
				LastPublishedDate: summary.LastPublishedDate,
				Text:              text,
				URL:               c.cfg.ArticleBaseURL + summary.ID + "/view",
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// fetchArticleText retrieves one article's detail payload and extracts the
// text of its first layout item.
func (c *Client) fetchArticleText(ctx context.Context, accessToken, relativeURL string) (string, error) {
	var detail articleDetail
	if err := c.getJSON(ctx, accessToken, c.cfg.Domain+relativeURL, &detail); err != nil {
		return "", err
	}
	if len(detail.LayoutItems) == 0 {
		return "", fmt.Errorf("detail payload has no layout items")
	}
	return detail.LayoutItems[0].Value, nil
}

// getJSON performs an authenticated GET and decodes the JSON response
func (c *Client) getJSON(ctx context.Context, accessToken, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en-US")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("request %s failed with status %d: %s", url, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", url, err)
	}
	return nil
}
