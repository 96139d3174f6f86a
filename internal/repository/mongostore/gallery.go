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

// GalleryRepo stores gallery images in the "gallery_images" collection.
type GalleryRepo struct {
	col *mongo.Collection
}

func NewGalleryRepo(db *mongo.Database) *GalleryRepo {
	return &GalleryRepo{col: db.Collection(galleryCollection)}
}

func galleryFilter(f repository.GalleryFilter) bson.M {
	filter := bson.M{}
	if !f.IncludeHidden {
		filter["isVisible"] = true
	}
	if f.Category != "" {
		filter["category"] = string(f.Category)
	}
	return filter
}

var gallerySort = bson.D{{Key: "displayOrder", Value: 1}, {Key: "createdAt", Value: -1}}

func (r *GalleryRepo) List(ctx context.Context, f repository.GalleryFilter, page repository.Page) (repository.ListResult[models.GalleryImage], error) {
	var out repository.ListResult[models.GalleryImage]
	filter := galleryFilter(f)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return out, wrap(err)
	}
	cursor, err := r.col.Find(ctx, filter, findOptions(gallerySort, page))
	if err != nil {
		return out, wrap(err)
	}
	defer cursor.Close(ctx)

	var docs []galleryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return out, wrap(err)
	}
	out.Total = total
	out.Items = make([]models.GalleryImage, 0, len(docs))
	for _, d := range docs {
		out.Items = append(out.Items, d.model())
	}
	return out, nil
}

func (r *GalleryRepo) GetByID(ctx context.Context, id string) (*models.GalleryImage, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc galleryDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, wrap(err)
	}
	g := doc.model()
	return &g, nil
}

func (r *GalleryRepo) Create(ctx context.Context, g *models.GalleryImage) error {
	g.Normalize()
	if err := models.ValidateGalleryImage(g); err != nil {
		return err
	}
	ts := now()
	g.Touch(ts)
	doc := newGalleryDoc(g)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return wrap(err)
	}
	g.ID = doc.ID.Hex()
	return nil
}

func (r *GalleryRepo) Update(ctx context.Context, id string, p models.GalleryPatch) (*models.GalleryImage, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateGalleryPatch(p); err != nil {
		return nil, err
	}
	var doc galleryDoc
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, galleryUpdate(p, now()), afterUpdate()).Decode(&doc)
	if err != nil {
		return nil, wrap(err)
	}
	g := doc.model()
	return &g, nil
}

func (r *GalleryRepo) Delete(ctx context.Context, id string) error {
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
