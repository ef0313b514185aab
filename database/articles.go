package database

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/seoforge/seo-api/shared"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrDuplicateSlug   = errors.New("an article with this slug already exists")
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type ArticleCollection struct {
	collection *mongo.Collection
}

func NewArticleCollection(db *mongo.Database) *ArticleCollection {
	return &ArticleCollection{collection: db.Collection("articles")}
}

// EnsureIndexes creates the unique slug index and the listing index.
func (a *ArticleCollection) EnsureIndexes(ctx context.Context) error {
	_, err := a.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("slug_unique"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("createdAt_desc"),
		},
	})
	return err
}

func (a *ArticleCollection) CreateArticle(ctx context.Context, data shared.ArticlePayload) (*shared.ArticleDocument, error) {
	now := time.Now().UTC()
	id := primitive.NewObjectID()

	doc := shared.ArticleDocument{
		ID:              id,
		Title:           data.Title,
		Slug:            articleSlug(data.Slug, data.Title, id),
		Keyword:         data.Keyword,
		MetaDescription: data.MetaDescription,
		Content:         data.Content,
		Tags:            data.Tags,
		Status:          data.Status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := a.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}
	return &doc, nil
}

func (a *ArticleCollection) GetArticleByID(ctx context.Context, id primitive.ObjectID) (*shared.ArticleDocument, error) {
	var article shared.ArticleDocument
	err := a.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&article)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// ListArticles returns articles newest first. Keyword matches the keyword
// or the title, case-insensitively.
func (a *ArticleCollection) ListArticles(ctx context.Context, f shared.ArticleFilter) ([]shared.ArticleDocument, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Keyword != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Keyword), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"keyword": pattern},
			bson.M{"title": pattern},
		}
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetSkip(f.Skip)

	cursor, err := a.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	articles := make([]shared.ArticleDocument, 0)
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// ReplaceArticle overwrites every editable field and returns the new version.
func (a *ArticleCollection) ReplaceArticle(ctx context.Context, id primitive.ObjectID, data shared.ArticlePayload) (*shared.ArticleDocument, error) {
	set := bson.M{
		"title":           data.Title,
		"slug":            articleSlug(data.Slug, data.Title, id),
		"keyword":         data.Keyword,
		"metaDescription": data.MetaDescription,
		"content":         data.Content,
		"tags":            data.Tags,
		"status":          data.Status,
	}
	return a.update(ctx, id, set)
}

// PatchArticle sets only the fields present in the patch.
func (a *ArticleCollection) PatchArticle(ctx context.Context, id primitive.ObjectID, patch shared.ArticlePatch) (*shared.ArticleDocument, error) {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Slug != nil {
		set["slug"] = shared.Slugify(*patch.Slug)
	}
	if patch.Keyword != nil {
		set["keyword"] = *patch.Keyword
	}
	if patch.MetaDescription != nil {
		set["metaDescription"] = *patch.MetaDescription
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Tags != nil {
		set["tags"] = shared.CleanTags(*patch.Tags)
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	return a.update(ctx, id, set)
}

func (a *ArticleCollection) update(ctx context.Context, id primitive.ObjectID, set bson.M) (*shared.ArticleDocument, error) {
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var article shared.ArticleDocument
	err := a.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&article)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, ErrArticleNotFound
	case mongo.IsDuplicateKeyError(err):
		return nil, ErrDuplicateSlug
	case err != nil:
		return nil, err
	}
	return &article, nil
}

func (a *ArticleCollection) DeleteArticle(ctx context.Context, id primitive.ObjectID) error {
	res, err := a.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrArticleNotFound
	}
	return nil
}

// articleSlug falls back to the title, then to the id, when no slug is given.
func articleSlug(slug, title string, id primitive.ObjectID) string {
	if s := shared.Slugify(slug); s != "" {
		return s
	}
	if s := shared.Slugify(title); s != "" {
		return s
	}
	return id.Hex()
}
