package shared

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
)

// Valid reports whether s is one of the known article statuses.
func (s ArticleStatus) Valid() bool {
	return s == ArticleStatusDraft || s == ArticleStatusPublished
}

type ArticleDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Slug            string             `bson:"slug" json:"slug"`
	Keyword         string             `bson:"keyword" json:"keyword"`
	MetaDescription string             `bson:"metaDescription" json:"metaDescription"`
	Content         string             `bson:"content" json:"content"`
	Tags            []string           `bson:"tags" json:"tags"`
	Status          ArticleStatus      `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ArticlePayload is the body accepted by create and replace.
type ArticlePayload struct {
	Title           string        `json:"title"`
	Slug            string        `json:"slug"`
	Keyword         string        `json:"keyword"`
	MetaDescription string        `json:"metaDescription"`
	Content         string        `json:"content"`
	Tags            []string      `json:"tags"`
	Status          ArticleStatus `json:"status"`
}

// Normalize trims string fields, drops blank tags and applies the draft default.
func (p *ArticlePayload) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Slug = strings.TrimSpace(p.Slug)
	p.Keyword = strings.TrimSpace(p.Keyword)
	p.MetaDescription = strings.TrimSpace(p.MetaDescription)
	p.Tags = CleanTags(p.Tags)
	if p.Status == "" {
		p.Status = ArticleStatusDraft
	}
}

// ArticlePatch holds a partial update; nil fields are left untouched.
type ArticlePatch struct {
	Title           *string        `json:"title"`
	Slug            *string        `json:"slug"`
	Keyword         *string        `json:"keyword"`
	MetaDescription *string        `json:"metaDescription"`
	Content         *string        `json:"content"`
	Tags            *[]string      `json:"tags"`
	Status          *ArticleStatus `json:"status"`
}

// Empty reports whether the patch sets nothing.
func (p ArticlePatch) Empty() bool {
	return p.Title == nil && p.Slug == nil && p.Keyword == nil && p.MetaDescription == nil &&
		p.Content == nil && p.Tags == nil && p.Status == nil
}

type ArticleFilter struct {
	Status  ArticleStatus
	Keyword string
	Limit   int64
	Skip    int64
}

// SEOAnalysisRequest is the input of the keyword/length analysis.
type SEOAnalysisRequest struct {
	Title           string `json:"title"`
	MetaDescription string `json:"metaDescription"`
	Content         string `json:"content"`
	Keyword         string `json:"keyword"`
}

type SEOReport struct {
	Keyword               string   `json:"keyword"`
	TitleLength           int      `json:"titleLength"`
	MetaDescriptionLength int      `json:"metaDescriptionLength"`
	ContentLength         int      `json:"contentLength"`
	KeywordCount          int      `json:"keywordCount"`
	KeywordDensity        float64  `json:"keywordDensity"`
	KeywordInTitle        bool     `json:"keywordInTitle"`
	KeywordInMeta         bool     `json:"keywordInMeta"`
	Issues                []string `json:"issues"`
	Score                 int      `json:"score"`
}

// CleanTags trims tags and drops the blank ones.
func CleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

