package storage

import (
	"context"
	"fmt"
	"time"

	"boards/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const mongoOpTimeout = 10 * time.Second

// MongoStore implements domain.BoardStore against a MongoDB collection.
// Boards are stored one document per board with the manifest JSON inline.
type MongoStore struct {
	client *mongo.Client
	boards *mongo.Collection
}

// mongoBoard is the collection document shape.
type mongoBoard struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Manifest  string    `bson:"manifest"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// OpenMongo connects to a MongoDB-hosted board library. uri is a standard
// mongodb:// or mongodb+srv:// connection string.
func OpenMongo(uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{
		client: client,
		boards: client.Database(database).Collection("boards"),
	}, nil
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

func (s *MongoStore) CreateBoard(b *domain.Board) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()
	_, err := s.boards.InsertOne(ctx, mongoBoard{
		ID:        b.ID,
		Name:      b.Name,
		Manifest:  b.Manifest,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	})
	return err
}

func (s *MongoStore) GetBoard(id string) (*domain.Board, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	var doc mongoBoard
	if err := s.boards.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	return &domain.Board{
		ID:        doc.ID,
		Name:      doc.Name,
		Manifest:  doc.Manifest,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (s *MongoStore) ListBoards() ([]domain.Board, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	cursor, err := s.boards.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var boards []domain.Board
	for cursor.Next(ctx) {
		var doc mongoBoard
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		boards = append(boards, domain.Board{
			ID:        doc.ID,
			Name:      doc.Name,
			Manifest:  doc.Manifest,
			CreatedAt: doc.CreatedAt,
			UpdatedAt: doc.UpdatedAt,
		})
	}
	return boards, cursor.Err()
}

func (s *MongoStore) UpdateBoard(b *domain.Board) error {
	b.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()
	_, err := s.boards.UpdateOne(ctx,
		bson.M{"_id": b.ID},
		bson.M{"$set": bson.M{
			"name":       b.Name,
			"manifest":   b.Manifest,
			"updated_at": b.UpdatedAt,
		}},
	)
	return err
}

func (s *MongoStore) DeleteBoard(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()
	_, err := s.boards.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
