package handlers

import (
	"math"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/seoforge/seo-api/database"
	"github.com/seoforge/seo-api/shared"
)

// Length and density targets used by Analyze.
const (
	minTitleRunes   = 30
	maxTitleRunes   = 60
	minMetaRunes    = 70
	maxMetaRunes    = 160
	minContentRunes = 300
	minDensity      = 1.0
	maxDensity      = 3.0
	issuePenalty    = 15
)

// SEO is the collaborator mounted on /api/seo.
type SEO struct {
	store StoreFunc
}

func NewSEO(conn *database.Connection) *SEO {
	return &SEO{store: ConnectionStore(conn)}
}

func (h *SEO) Mount(g *echo.Group) {
	g.POST("/analyze", h.AnalyzeContent)
	g.POST("/slug", h.GenerateSlug)
	g.GET("/articles/:id", h.AnalyzeArticle)
}

// AnalyzeContent handles POST /api/seo/analyze
func (h *SEO) AnalyzeContent(c echo.Context) error {
	var req shared.SEOAnalysisRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}
	if strings.TrimSpace(req.Content) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content is required"})
	}
	if strings.TrimSpace(req.Keyword) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "keyword is required"})
	}
	return c.JSON(http.StatusOK, Analyze(req))
}

// GenerateSlug handles POST /api/seo/slug
func (h *SEO) GenerateSlug(c echo.Context) error {
	var req struct {
		Title string `json:"title"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}
	slug := shared.Slugify(req.Title)
	if slug == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "title must contain letters or digits",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"slug": slug})
}

// AnalyzeArticle handles GET /api/seo/articles/:id
func (h *SEO) AnalyzeArticle(c echo.Context) error {
	id, ok := parseArticleID(c)
	if !ok {
		return invalidID(c)
	}

	store, err := h.store()
	if err != nil {
		return databaseUnavailable(c)
	}

	article, err := store.GetArticleByID(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, Analyze(shared.SEOAnalysisRequest{
		Title:           article.Title,
		MetaDescription: article.MetaDescription,
		Content:         article.Content,
		Keyword:         article.Keyword,
	}))
}

// Analyze scores title, meta description and content against the focus
// keyword. Lengths are in runes and keyword density is measured in
// characters, so text without word spacing is handled.
func Analyze(req shared.SEOAnalysisRequest) shared.SEOReport {
	title := strings.TrimSpace(req.Title)
	meta := strings.TrimSpace(req.MetaDescription)
	keyword := strings.ToLower(strings.TrimSpace(req.Keyword))
	content := strings.ToLower(req.Content)

	report := shared.SEOReport{
		Keyword:               keyword,
		TitleLength:           utf8.RuneCountInString(title),
		MetaDescriptionLength: utf8.RuneCountInString(meta),
		ContentLength:         utf8.RuneCountInString(content),
		Issues:                make([]string, 0),
	}

	if keyword != "" {
		report.KeywordCount = strings.Count(content, keyword)
		if report.ContentLength > 0 {
			chars := report.KeywordCount * utf8.RuneCountInString(keyword)
			report.KeywordDensity = round2(float64(chars) / float64(report.ContentLength) * 100)
		}
		report.KeywordInTitle = strings.Contains(strings.ToLower(title), keyword)
		report.KeywordInMeta = strings.Contains(strings.ToLower(meta), keyword)
	}

	issue := func(msg string) { report.Issues = append(report.Issues, msg) }

	switch {
	case report.TitleLength == 0:
		issue("Title is missing")
	case report.TitleLength < minTitleRunes:
		issue("Title is shorter than 30 characters")
	case report.TitleLength > maxTitleRunes:
		issue("Title is longer than 60 characters")
	}

	switch {
	case report.MetaDescriptionLength == 0:
		issue("Meta description is missing")
	case report.MetaDescriptionLength < minMetaRunes:
		issue("Meta description is shorter than 70 characters")
	case report.MetaDescriptionLength > maxMetaRunes:
		issue("Meta description is longer than 160 characters")
	}

	if report.ContentLength < minContentRunes {
		issue("Content is shorter than 300 characters")
	}

	if keyword == "" {
		issue("No focus keyword set")
	} else {
		if !report.KeywordInTitle {
			issue("Keyword does not appear in the title")
		}
		if !report.KeywordInMeta {
			issue("Keyword does not appear in the meta description")
		}
		switch {
		case report.KeywordDensity < minDensity:
			issue("Keyword density is below 1%")
		case report.KeywordDensity > maxDensity:
			issue("Keyword density is above 3%")
		}
	}

	report.Score = max(0, 100-issuePenalty*len(report.Issues))
	return report
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
