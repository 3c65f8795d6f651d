package services

import (
	"context"

	"github.com/dropDatabas3/fluency/internal/store/core"
)

// ClassesService expone el catálogo de clases (read-only, regla pública).
type ClassesService struct {
	Store core.Repository
}

func NewClassesService(store core.Repository) *ClassesService {
	return &ClassesService{Store: store}
}

// List lista clases, opcionalmente filtradas por status.
func (s *ClassesService) List(ctx context.Context, status string) ([]core.Class, error) {
	return s.Store.ListClasses(ctx, status)
}
