// Package mongodb stores accounts in a MongoDB users collection.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/CrestNiraj12/rivalsnexus/domain"
)

const connectTimeout = 15 * time.Second

// Connect dials uri and pings the deployment before returning.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}
	return client, nil
}

type userDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Name              string             `bson:"name"`
	Username          string             `bson:"username"`
	Email             string             `bson:"email"`
	Password          string             `bson:"password"`
	Avatar            string             `bson:"avatar"`
	Bio               string             `bson:"bio"`
	FavoriteCharacter string             `bson:"favoriteCharacter"`
	MainHeroID        string             `bson:"mainHeroId"`
	Rank              string             `bson:"rank"`
	Winrate           float64            `bson:"winrate"`
	Role              string             `bson:"role"`
	BannedUntil       *time.Time         `bson:"bannedUntil"`
	CreatedAt         time.Time          `bson:"createdAt"`
}

func toDoc(rec *domain.UserRecord) (userDoc, error) {
	doc := userDoc{
		Name:              rec.Name,
		Username:          rec.Username,
		Email:             rec.Email,
		Password:          rec.PasswordHash,
		Avatar:            rec.Avatar,
		Bio:               rec.Bio,
		FavoriteCharacter: rec.FavoriteCharacter,
		MainHeroID:        rec.MainHeroID,
		Rank:              rec.Rank,
		Winrate:           rec.Winrate,
		Role:              string(rec.Role),
		BannedUntil:       rec.BannedUntil,
		CreatedAt:         rec.CreatedAt,
	}
	if rec.ID != "" {
		id, err := primitive.ObjectIDFromHex(rec.ID)
		if err != nil {
			return userDoc{}, fmt.Errorf("%w: invalid user id %q", domain.ErrNotFound, rec.ID)
		}
		doc.ID = id
	}
	return doc, nil
}

func (d userDoc) record() *domain.UserRecord {
	return &domain.UserRecord{
		Account: domain.Account{
			ID:                d.ID.Hex(),
			Name:              d.Name,
			Username:          d.Username,
			Email:             d.Email,
			Avatar:            d.Avatar,
			Bio:               d.Bio,
			FavoriteCharacter: d.FavoriteCharacter,
			MainHeroID:        d.MainHeroID,
			Rank:              d.Rank,
			Winrate:           d.Winrate,
			Role:              domain.Role(d.Role),
			BannedUntil:       d.BannedUntil,
			CreatedAt:         d.CreatedAt,
		},
		PasswordHash: d.Password,
	}
}

// Users implements domain.UserRepository over a collection.
type Users struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewUsers returns a repository over db.users and ensures the unique
// email index exists.
func NewUsers(ctx context.Context, db *mongo.Database) (*Users, error) {
	coll := db.Collection("users")
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("creating email index: %w", err)
	}
	return &Users{coll: coll, now: time.Now}, nil
}

func (u *Users) Create(ctx context.Context, rec *domain.UserRecord) error {
	rec.CreatedAt = u.now().UTC().Truncate(time.Millisecond)
	doc, err := toDoc(rec)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := u.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	rec.ID = doc.ID.Hex()
	return nil
}

func (u *Users) FindByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	return u.findOne(ctx, bson.M{"email": domain.NormalizeEmail(email)})
}

func (u *Users) FindByID(ctx context.Context, id string) (*domain.UserRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return u.findOne(ctx, bson.M{"_id": oid})
}

func (u *Users) findOne(ctx context.Context, filter bson.M) (*domain.UserRecord, error) {
	var doc userDoc
	err := u.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return doc.record(), nil
}

func (u *Users) List(ctx context.Context) ([]domain.UserRecord, error) {
	cur, err := u.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}
	out := make([]domain.UserRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d.record())
	}
	return out, nil
}

func (u *Users) Save(ctx context.Context, rec *domain.UserRecord) error {
	doc, err := toDoc(rec)
	if err != nil {
		return err
	}
	res, err := u.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("saving user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (u *Users) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := u.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
