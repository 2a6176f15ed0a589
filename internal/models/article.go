package models

// Article is a published Salesforce Knowledge article normalized for indexing
type Article struct {
	ID                string `json:"id"`
	ArticleNumber     string `json:"articleNumber"`
	Title             string `json:"title"`
	LastPublishedDate string `json:"lastPublishedDate"`
	Text              string `json:"text"`
	URL               string `json:"url"`
}

// DocumentFields returns the article as the flat field set stored in the
// index document. Every value is text, whatever its native type upstream.
func (a *Article) DocumentFields() map[string]string {
	return map[string]string{
		"id":                a.ID,
		"articleNumber":     a.ArticleNumber,
		"title":             a.Title,
		"lastPublishedDate": a.LastPublishedDate,
		"text":              a.Text,
		"url":               a.URL,
	}
}
