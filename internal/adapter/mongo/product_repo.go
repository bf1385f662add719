package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/EhteshamRajpot/shop-o-backend/internal/app/config"
	"github.com/EhteshamRajpot/shop-o-backend/internal/entity"
	"github.com/EhteshamRajpot/shop-o-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productsCollectionName = "products"

type productRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(client *mongo.Client, cfg config.MongoDBConfig) repository.ProductRepository {
	return newProductRepository(client.Database(cfg.Database))
}

func newProductRepository(db *mongo.Database) *productRepository {
	return &productRepository{collection: db.Collection(productsCollectionName)}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	doc := toProductDocument(product)
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	objectID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to convert inserted ID to ObjectID")
	}
	doc.ID = objectID

	created := doc.toEntity()
	return &created, nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id format: %w", repository.ErrNotFound)
	}

	var doc productDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}

	p := doc.toEntity()
	return &p, nil
}

func (r *productRepository) ListByShop(ctx context.Context, shopID string) ([]entity.Product, error) {
	return r.list(ctx, bson.M{"shopId": shopID}, options.Find())
}

func (r *productRepository) ListAll(ctx context.Context) ([]entity.Product, error) {
	return r.list(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *productRepository) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]entity.Product, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]entity.Product, 0, len(docs))
	for i := range docs {
		products = append(products, docs[i].toEntity())
	}
	return products, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid product id format: %w", repository.ErrNotFound)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
