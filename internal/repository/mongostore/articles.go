package mongostore

import (
	"context"

	"github.com/jkco/site-core/internal/models"
	"github.com/jkco/site-core/internal/pkg/apperr"
	"github.com/jkco/site-core/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ArticleRepo stores articles in the "articles" collection.
type ArticleRepo struct {
	col           *mongo.Collection
	defaultAuthor string
}

func NewArticleRepo(db *mongo.Database, defaultAuthor string) *ArticleRepo {
	if defaultAuthor == "" {
		defaultAuthor = models.DefaultAuthor
	}
	return &ArticleRepo{col: db.Collection(articlesCollection), defaultAuthor: defaultAuthor}
}

func articleFilter(f repository.ArticleFilter) bson.M {
	filter := bson.M{}
	if !f.IncludeUnpublished {
		filter["isPublished"] = true
	}
	if f.Category != "" {
		filter["category"] = string(f.Category)
	}
	return filter
}

func (r *ArticleRepo) List(ctx context.Context, f repository.ArticleFilter, page repository.Page) (repository.ListResult[models.Article], error) {
	var out repository.ListResult[models.Article]
	filter := articleFilter(f)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return out, wrap(err)
	}
	cursor, err := r.col.Find(ctx, filter, findOptions(bson.D{{Key: "publishedAt", Value: -1}}, page))
	if err != nil {
		return out, wrap(err)
	}
	defer cursor.Close(ctx)

	var docs []articleDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return out, wrap(err)
	}
	out.Total = total
	out.Items = make([]models.Article, 0, len(docs))
	for _, d := range docs {
		out.Items = append(out.Items, d.model())
	}
	return out, nil
}

func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc articleDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, wrap(err)
	}
	a := doc.model()
	return &a, nil
}

func (r *ArticleRepo) Create(ctx context.Context, a *models.Article) error {
	a.Normalize(r.defaultAuthor)
	if err := models.ValidateArticle(a); err != nil {
		return err
	}
	ts := now()
	a.Touch(ts)
	if a.PublishedAt.IsZero() {
		a.PublishedAt = ts
	}
	doc := newArticleDoc(a)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return wrap(err)
	}
	a.ID = doc.ID.Hex()
	return nil
}

func (r *ArticleRepo) Update(ctx context.Context, id string, p models.ArticlePatch) (*models.Article, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateArticlePatch(p); err != nil {
		return nil, err
	}
	var doc articleDoc
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, articleUpdate(p, now()), afterUpdate()).Decode(&doc)
	if err != nil {
		return nil, wrap(err)
	}
	a := doc.model()
	return &a, nil
}

func (r *ArticleRepo) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return wrap(err)
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
