package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/isdelr/exercise-tracker-be/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
}

type exerciseDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"userId"`
	Description string             `bson:"description"`
	Duration    float64            `bson:"duration"`
	Date        time.Time          `bson:"date"`
}

// MongoStore keeps users and exercises in two MongoDB collections.
type MongoStore struct {
	client    *mongo.Client
	users     *mongo.Collection
	exercises *mongo.Collection
}

// NewMongoStore connects to uri and ensures the indexes the store relies on exist.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	s := &MongoStore{
		client:    client,
		users:     db.Collection("users"),
		exercises: db.Collection("exercises"),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	_, err = s.exercises.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create exercise index: %w", err)
	}
	return nil
}

// ListUsers retrieves every user ordered by ObjectID, which follows insertion order.
func (s *MongoStore) ListUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := s.users.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toModel())
	}
	return users, nil
}

// FindUserByID retrieves a user by its hex ObjectID.
func (s *MongoStore) FindUserByID(ctx context.Context, id string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, fmt.Errorf("invalid user id %q: %w", id, err)
	}
	return s.findUser(ctx, bson.D{{Key: "_id", Value: oid}})
}

// FindUserByUsername retrieves a user by exact username.
func (s *MongoStore) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return s.findUser(ctx, bson.D{{Key: "username", Value: username}})
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.D) (models.User, error) {
	var doc userDocument
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return doc.toModel(), nil
}

// InsertUser saves a new user; the server-side ObjectID becomes user.ID.
func (s *MongoStore) InsertUser(ctx context.Context, user *models.User) error {
	res, err := s.users.InsertOne(ctx, userDocument{Username: user.Username})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = objectIDHex(res.InsertedID)
	return nil
}

// InsertExercise saves a new exercise and assigns exercise.ID.
func (s *MongoStore) InsertExercise(ctx context.Context, exercise *models.Exercise) error {
	res, err := s.exercises.InsertOne(ctx, exerciseDocument{
		UserID:      exercise.UserID,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date.UTC(),
	})
	if err != nil {
		return fmt.Errorf("insert exercise: %w", err)
	}
	exercise.ID = objectIDHex(res.InsertedID)
	return nil
}

// FindExercises retrieves a user's exercises within the filter's inclusive date range.
func (s *MongoStore) FindExercises(ctx context.Context, filter ExerciseFilter) ([]models.Exercise, error) {
	query := bson.D{
		{Key: "userId", Value: filter.UserID},
		{Key: "date", Value: bson.D{
			{Key: "$gte", Value: filter.From.UTC()},
			{Key: "$lte", Value: filter.To.UTC()},
		}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := s.exercises.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find exercises: %w", err)
	}
	var docs []exerciseDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("find exercises: %w", err)
	}

	exercises := make([]models.Exercise, 0, len(docs))
	for _, doc := range docs {
		exercises = append(exercises, models.Exercise{
			ID:          doc.ID.Hex(),
			UserID:      doc.UserID,
			Description: doc.Description,
			Duration:    doc.Duration,
			Date:        doc.Date.UTC(),
		})
	}
	return exercises, nil
}

// Ping verifies the primary is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Maintain checks connectivity; MongoDB needs no client-driven housekeeping.
func (s *MongoStore) Maintain(ctx context.Context) error {
	return s.Ping(ctx)
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (d userDocument) toModel() models.User {
	return models.User{ID: d.ID.Hex(), Username: d.Username}
}

func objectIDHex(id interface{}) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}

var (
	_ Store      = (*MongoStore)(nil)
	_ Maintainer = (*MongoStore)(nil)
)
