// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/report-desk/internal/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// mongoDocumentStore maps collections onto MongoDB collections and document
// ids onto string _id values.
type mongoDocumentStore struct {
	client *mongo.Client
	db     *mongo.Database
	ids    IDGenerator
	logger *logger.Logger
}

// NewConnectMongo connects to the MongoDB deployment at uri and pings it.
func NewConnectMongo(ctx context.Context, uri, database string, ids IDGenerator, log *logger.Logger) (DocumentStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error occurred during database connection")
		return nil, classifyMongoError(err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error connecting database (ping)")
		_ = client.Disconnect(context.Background())
		return nil, classifyMongoError(err)
	}
	log.Info().Str("func", "NewConnectMongo").Str("database", database).Msg("connected to database successfully")

	return newMongoDocumentStore(client, client.Database(database), ids, log), nil
}

func newMongoDocumentStore(client *mongo.Client, db *mongo.Database, ids IDGenerator, log *logger.Logger) *mongoDocumentStore {
	return &mongoDocumentStore{client: client, db: db, ids: ids, logger: log}
}

func (s *mongoDocumentStore) Get(ctx context.Context, collection, id string) (Snapshot, error) {
	raw, err := s.db.Collection(collection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Snapshot{}, fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}
	if err != nil {
		s.logger.Err(err).Str("func", "*mongoDocumentStore.Get").Msg("error finding document")
		return Snapshot{}, classifyMongoError(err)
	}

	return newBSONSnapshot(id, raw), nil
}

func (s *mongoDocumentStore) Add(ctx context.Context, collection string, data any) (string, error) {
	id := s.ids.Generate()
	if err := s.Create(ctx, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

func (s *mongoDocumentStore) Create(ctx context.Context, collection, id string, data any) error {
	doc, err := withMongoID(id, data)
	if err != nil {
		return err
	}

	if _, err = s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
		}
		s.logger.Err(err).Str("func", "*mongoDocumentStore.Create").Msg("error inserting document")
		return classifyMongoError(err)
	}

	return nil
}

func (s *mongoDocumentStore) Set(ctx context.Context, collection, id string, data any) error {
	doc, err := withMongoID(id, data)
	if err != nil {
		return err
	}

	_, err = s.db.Collection(collection).ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: id}}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		s.logger.Err(err).Str("func", "*mongoDocumentStore.Set").Msg("error replacing document")
		return classifyMongoError(err)
	}

	return nil
}

func (s *mongoDocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	set := make(bson.D, 0, len(fields))
	for k, v := range fields {
		set = append(set, bson.E{Key: k, Value: v})
	}

	res, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		s.logger.Err(err).Str("func", "*mongoDocumentStore.Update").Msg("error updating document")
		return classifyMongoError(err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}

	return nil
}

func (s *mongoDocumentStore) Query(ctx context.Context, collection string, q Query) ([]Snapshot, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	filter := bson.D{}
	for _, f := range q.Filters {
		filter = append(filter, bson.E{Key: f.Field, Value: f.Value})
	}

	opts := options.Find()
	if q.OrderBy != "" {
		direction := 1
		if q.Desc {
			direction = -1
		}
		opts.SetSort(bson.D{{Key: q.OrderBy, Value: direction}, {Key: "_id", Value: 1}})
	} else {
		opts.SetSort(bson.D{{Key: "_id", Value: 1}})
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cur, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		s.logger.Err(err).Str("func", "*mongoDocumentStore.Query").Msg("error querying documents")
		return nil, classifyMongoError(err)
	}
	defer cur.Close(ctx)

	var out []Snapshot
	for cur.Next(ctx) {
		raw := append(bson.Raw(nil), cur.Current...)
		id, ok := raw.Lookup("_id").StringValueOK()
		if !ok {
			return nil, fmt.Errorf("%w: non-string _id in %s", ErrDecodingDocument, collection)
		}
		out = append(out, newBSONSnapshot(id, raw))
	}
	if err = cur.Err(); err != nil {
		return nil, classifyMongoError(err)
	}

	return out, nil
}

func (s *mongoDocumentStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func newBSONSnapshot(id string, raw bson.Raw) Snapshot {
	return NewSnapshot(id, func(v any) error {
		return bson.Unmarshal(raw, v)
	})
}

// withMongoID converts data into a BSON document whose first element is _id.
func withMongoID(id string, data any) (bson.D, error) {
	payload, err := bson.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	var fields bson.D
	if err = bson.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	doc := make(bson.D, 0, len(fields)+1)
	doc = append(doc, bson.E{Key: "_id", Value: id})
	for _, f := range fields {
		if f.Key != "_id" {
			doc = append(doc, f)
		}
	}
	return doc, nil
}
