// Package mongostore implements the content repositories on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"time"

	"github.com/jkco/site-core/internal/pkg/apperr"
	"github.com/jkco/site-core/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	articlesCollection = "articles"
	galleryCollection  = "gallery_images"
	component          = "repository"
)

// New returns both repositories backed by db.
func New(db *mongo.Database, defaultAuthor string) repository.Stores {
	return repository.Stores{
		Articles: NewArticleRepo(db, defaultAuthor),
		Gallery:  NewGalleryRepo(db),
	}
}

// EnsureIndexes creates the listing indexes. It is safe to call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(articlesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "publishedAt", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "isPublished", Value: 1}}},
	})
	if err != nil {
		return apperr.Dependency(component, err)
	}
	_, err = db.Collection(galleryCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "displayOrder", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "isVisible", Value: 1}}},
	})
	if err != nil {
		return apperr.Dependency(component, err)
	}
	return nil
}

// objectID parses a hex id; anything unparsable cannot exist.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.ErrNotFound
	}
	return oid, nil
}

func wrap(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.ErrNotFound
	}
	return apperr.Dependency(component, err)
}

func findOptions(sort bson.D, page repository.Page) *options.FindOptions {
	opts := options.Find().SetSort(sort)
	if page.Offset > 0 {
		opts.SetSkip(int64(page.Offset))
	}
	if page.Limit > 0 {
		opts.SetLimit(int64(page.Limit))
	}
	return opts
}

func afterUpdate() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

var now = func() time.Time { return time.Now().UTC() }
