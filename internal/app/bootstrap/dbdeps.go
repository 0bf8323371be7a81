// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/medisow/medisowadmin/internal/app/store/docstore"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the open document store. The Mongo handles are nil on the
// bolt backend.
type DBDeps struct {
	Backend       string
	Docs          docstore.Store
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	// Background owns goroutines started by BuildHandler; Shutdown stops them.
	Background *Background
}
