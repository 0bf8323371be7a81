// internal/app/store/labreports/labreportstore.go
// Package labreportstore manages lab report templates.
package labreportstore

import (
	"github.com/medisow/medisowadmin/internal/app/store/docstore"
	"github.com/medisow/medisowadmin/internal/app/store/itemnames"
	templatestore "github.com/medisow/medisowadmin/internal/app/store/templates"
	"github.com/medisow/medisowadmin/internal/domain/models"
)

const Collection = "labReports"

type Store = templatestore.Store[models.LabReport]

func New(ds docstore.Store, names *itemnames.Resolver) *Store {
	return templatestore.New[models.LabReport](ds, names, templatestore.Config{
		Collection: Collection,
		Domain:     models.DomainLabReport,
		Kind:       "lab report",
	})
}
