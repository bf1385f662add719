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

const (
	usersCollectionName = "users"
	shopsCollectionName = "shops"
)

var withoutPassword = bson.M{"password": 0}

type accountRepository struct {
	kind       entity.Kind
	collection *mongo.Collection
}

// NewAccountRepository returns the store for kind: users live in "users",
// sellers in "shops".
func NewAccountRepository(client *mongo.Client, cfg config.MongoDBConfig, kind entity.Kind) repository.AccountRepository {
	return newAccountRepository(client.Database(cfg.Database), kind)
}

func newAccountRepository(db *mongo.Database, kind entity.Kind) *accountRepository {
	name := usersCollectionName
	if kind == entity.KindSeller {
		name = shopsCollectionName
	}
	return &accountRepository{
		kind:       kind,
		collection: db.Collection(name),
	}
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, bson.M{"email": email}, options.FindOne().SetProjection(withoutPassword))
}

func (r *accountRepository) FindByEmailWithSecret(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, bson.M{"email": email}, options.FindOne())
}

func (r *accountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid %s id format: %w", r.kind, repository.ErrNotFound)
	}
	return r.findOne(ctx, bson.M{"_id": objID}, options.FindOne().SetProjection(withoutPassword))
}

func (r *accountRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*entity.Account, error) {
	var doc accountDocument
	err := r.collection.FindOne(ctx, filter, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find %s: %w", r.kind, err)
	}
	return doc.toEntity(r.kind), nil
}

func (r *accountRepository) Create(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	doc, err := toAccountDocument(account)
	if err != nil {
		return nil, err
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create %s: %w", r.kind, err)
	}

	objectID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to convert inserted ID to ObjectID")
	}
	doc.ID = objectID

	created := doc.toEntity(r.kind)
	created.Password = ""
	return created, nil
}
