package etl

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoLoader appends rows as documents to the collection named after the
// destination table. Field order follows the CSV header.
type MongoLoader struct {
	Client   *mongo.Client
	Database string
}

func NewMongoLoader(client *mongo.Client, database string) *MongoLoader {
	return &MongoLoader{Client: client, Database: database}
}

func (m *MongoLoader) Append(ctx context.Context, table string, columns []string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	docs := toDocuments(columns, rows)
	coll := m.Client.Database(m.Database).Collection(table)
	res, err := coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	if len(res.InsertedIDs) != len(docs) {
		return fmt.Errorf("insert into %s: %d of %d documents inserted", table, len(res.InsertedIDs), len(docs))
	}
	return nil
}

// toDocuments keeps field order by building bson.D rather than maps.
// NULL cells are stored as explicit nulls.
func toDocuments(columns []string, rows [][]interface{}) []interface{} {
	docs := make([]interface{}, len(rows))
	for i, row := range rows {
		doc := make(bson.D, len(columns))
		for c, col := range columns {
			doc[c] = bson.E{Key: col, Value: row[c]}
		}
		docs[i] = doc
	}
	return docs
}
