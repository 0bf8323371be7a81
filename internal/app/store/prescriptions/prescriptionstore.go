// internal/app/store/prescriptions/prescriptionstore.go
// Package prescriptionstore manages prescription templates.
package prescriptionstore

import (
	"github.com/medisow/medisowadmin/internal/app/store/docstore"
	"github.com/medisow/medisowadmin/internal/app/store/itemnames"
	templatestore "github.com/medisow/medisowadmin/internal/app/store/templates"
	"github.com/medisow/medisowadmin/internal/domain/models"
)

const Collection = "prescriptions"

type Store = templatestore.Store[models.Prescription]

func New(ds docstore.Store, names *itemnames.Resolver) *Store {
	return templatestore.New[models.Prescription](ds, names, templatestore.Config{
		Collection: Collection,
		Domain:     models.DomainPrescription,
		Kind:       "prescription",
	})
}
