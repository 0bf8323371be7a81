// internal/app/system/indexes/indexes.go
// Package indexes reconciles the MongoDB indexes the admin backend relies on.
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/medisow/medisowadmin/internal/app/store/docstore"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Set is the desired index list for one collection.
type Set struct {
	Collection string
	Models     []mongo.IndexModel
}

// Desired returns every index set EnsureAll reconciles.
func Desired() []Set {
	sets := []Set{
		{Collection: "vouchers", Models: []mongo.IndexModel{
			// Codes are optional; only non-empty ones must be unique.
			{
				Keys: bson.D{{Key: "code", Value: 1}},
				Options: options.Index().
					SetName("uniq_voucher_code").
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"code": bson.M{"$gt": ""}}),
			},
		}},
		{Collection: "medicines", Models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "categoryId", Value: 1}}, Options: options.Index().SetName("idx_medicine_category")},
			{Keys: bson.D{{Key: "subCategoryId", Value: 1}}, Options: options.Index().SetName("idx_medicine_subcategory")},
		}},
		{Collection: "prescriptions", Models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "categoryId", Value: 1}}, Options: options.Index().SetName("idx_prescription_category")},
		}},
		{Collection: "labReports", Models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "categoryId", Value: 1}}, Options: options.Index().SetName("idx_labreport_category")},
		}},
		{Collection: "notifications", Models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "sentAt", Value: -1}}, Options: options.Index().SetName("idx_notification_sent")},
		}},
		{Collection: "users.vouchers", Models: []mongo.IndexModel{
			{Keys: bson.D{{Key: docstore.ParentField, Value: 1}}, Options: options.Index().SetName("idx_parent")},
		}},
	}
	for _, d := range models.Domains {
		sets = append(sets, Set{
			Collection: d.CategoryCollection() + ".subCategories",
			Models: []mongo.IndexModel{
				{Keys: bson.D{{Key: docstore.ParentField, Value: 1}}, Options: options.Index().SetName("idx_parent")},
			},
		})
	}
	return sets
}

// EnsureAll is called at startup. Every set is attempted and the problems
// are joined so startup can fail with the full picture.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string
	for _, s := range Desired() {
		if err := ensureIndexSet(ctx, db.Collection(s.Collection), s.Models); err != nil {
			problems = append(problems, s.Collection+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	return (a != nil && *a) == (b != nil && *b)
}

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// Some servers report IndexOptionsConflict when the keys exist under
// another name or with other options.
func isOptionsConflictErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}

func listExisting(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	out := map[string]existingIndex{}
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		// Missing collection; everything gets created.
		return out
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("decode existing index", zap.String("collection", coll.Name()), zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, want []mongo.IndexModel) error {
	var errs []string
	existing := listExisting(ctx, coll)

	for _, m := range want {
		var name string
		var unique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			unique = m.Options.Unique
		}
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()
		fields := []zap.Field{
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", unique != nil && *unique),
		}

		ex, found := existing[sig]
		if found && sameBoolPtr(unique, ex.Unique) && (name == "" || ex.Name == name) {
			zap.L().Info("reusing existing index", fields...)
			continue
		}
		if found {
			// Name or uniqueness differs: drop and recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s: drop %s failed: %v", name, ex.Name, err))
				continue
			}
		}

		_, err := coll.Indexes().CreateOne(ctx, m)
		if isOptionsConflictErr(err) {
			if again, ok := listExisting(ctx, coll)[sig]; ok {
				if sameBoolPtr(unique, again.Unique) {
					zap.L().Info("reusing existing index (post-conflict)", fields...)
					continue
				}
				if _, dropErr := coll.Indexes().DropOne(ctx, again.Name); dropErr != nil {
					zap.L().Warn("drop conflicting index", append(fields, zap.Error(dropErr))...)
				}
				_, err = coll.Indexes().CreateOne(ctx, m)
			}
		}
		if err != nil {
			if isDuplicateKeyErr(err) && unique != nil && *unique {
				errs = append(errs, fmt.Sprintf("%s: cannot create unique index on %s, duplicates present", name, sig))
			} else {
				errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			}
			zap.L().Warn("index ensure failed", append(fields, zap.Error(err))...)
			continue
		}
		zap.L().Info("index ensured", append(fields, zap.Duration("took", time.Since(start)))...)
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
