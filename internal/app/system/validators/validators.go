// internal/app/system/validators/validators.go
// Package validators creates the admin collections and attaches
// JSON-Schema validators where the server supports them.
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Collections lists every top-level collection EnsureAll creates.
func Collections() []string {
	out := []string{"users", "vouchers", "Donors", "notifications"}
	for _, d := range models.Domains {
		out = append(out, d.CategoryCollection(), d.ItemCollection())
	}
	return out
}

// EnsureAll creates missing collections and tries to attach validators.
// Deployments without collMod support are logged and skipped.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	schemas := map[string]bson.M{
		"vouchers":      vouchersSchema(),
		"Donors":        donorsSchema(),
		"notifications": notificationsSchema(),
		"medicines":     itemSchema("name"),
		"prescriptions": itemSchema("title"),
		"labReports":    itemSchema("title"),
	}
	for _, d := range models.Domains {
		schemas[d.CategoryCollection()] = categorySchema()
	}

	var problems []string
	for _, coll := range Collections() {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			continue
		}
		schema := schemas[coll]
		if schema == nil {
			continue
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				continue
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection reports created=true only when it made the collection.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	if exists, err := collectionExists(ctx, db, name); err == nil && exists {
		return false, nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	return db.RunCommand(ctx, cmd).Err()
}

func commandErrorMatches(err error, code int32, fragments ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == code {
		return true
	}
	s := strings.ToLower(err.Error())
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

func isNamespaceExistsErr(err error) bool {
	return commandErrorMatches(err, 48, "already exists", "namespace exists")
}

func isNoSuchCommand(err error) bool {
	return commandErrorMatches(err, 59, "no such command")
}

func isNotImplemented(err error) bool {
	return commandErrorMatches(err, 115, "not implemented", "not supported")
}

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func categorySchema() bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"name"},
		"properties": bson.M{
			"name":        nonBlank,
			"description": bson.M{"bsonType": "string"},
			"image_url":   bson.M{"bsonType": "string"},
		},
	}}
}

func itemSchema(titleField string) bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{titleField},
		"properties": bson.M{
			titleField:   nonBlank,
			"categoryId": bson.M{"bsonType": "string"},
			"images_url": bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
		},
	}}
}

func vouchersSchema() bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"title", "creditCost"},
		"properties": bson.M{
			"title":      nonBlank,
			"creditCost": bson.M{"bsonType": bson.A{"int", "long", "double"}, "minimum": 0},
			"code":       bson.M{"bsonType": "string"},
			"isActive":   bson.M{"bsonType": "bool"},
		},
	}}
}

func donorsSchema() bson.M {
	groups := bson.A{}
	for _, g := range models.BloodGroups {
		groups = append(groups, g)
	}
	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"name", "bloodGroup"},
		"properties": bson.M{
			"name":       nonBlank,
			"bloodGroup": bson.M{"enum": groups},
		},
	}}
}

func notificationsSchema() bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"title", "body", "topic", "sentAt", "successful"},
		"properties": bson.M{
			"title":      nonBlank,
			"body":       nonBlank,
			"topic":      bson.M{"bsonType": "string"},
			"sentAt":     bson.M{"bsonType": "date"},
			"successful": bson.M{"bsonType": "bool"},
			"imageUrl":   bson.M{"bsonType": bson.A{"string", "null"}},
		},
	}}
}
