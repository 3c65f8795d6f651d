package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dropDatabas3/fluency/internal/http/dto"
	"github.com/dropDatabas3/fluency/internal/observability/logger"
	"github.com/dropDatabas3/fluency/internal/policy"
	"github.com/dropDatabas3/fluency/internal/store/core"
	"github.com/dropDatabas3/fluency/internal/token"
)

// CartService maneja el carrito de un estudiante. Todas las operaciones
// son self-owned: el claim debe coincidir con el email dueño.
type CartService struct {
	Store core.Repository
}

func NewCartService(store core.Repository) *CartService {
	return &CartService{Store: store}
}

// List devuelve los items del dueño, opcionalmente filtrados por status.
func (s *CartService) List(ctx context.Context, claim token.Claim, email, status string) ([]core.CartItem, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmailRequired
	}
	if d := policy.AuthorizeOwner(claim, policy.OpCartRead, email); d.Deny() {
		return nil, ErrForbidden
	}
	return s.Store.ListCartItems(ctx, email, status)
}

// Add es insert-or-return-existing por (studentEmail, classId).
// Máquina de estados del item: absent -> present -> absent; ningún caller
// observa present -> present — el create duplicado devuelve el item previo
// intacto, también cuando la carrera la resuelve el unique del store.
func (s *CartService) Add(ctx context.Context, claim token.Claim, email string, req dto.AddCartItemRequest) (*core.CartItem, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmailRequired
	}
	if strings.TrimSpace(req.ClassID) == "" {
		return nil, ErrClassRequired
	}
	if d := policy.AuthorizeOwner(claim, policy.OpCartCreate, email); d.Deny() {
		return nil, ErrForbidden
	}

	// Probe por natural key
	if existing, err := s.Store.FindCartItem(ctx, email, req.ClassID); err == nil {
		return existing, nil
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	it := &core.CartItem{
		StudentEmail: email,
		ClassID:      req.ClassID,
		Status:       req.Status,
	}
	err := s.Store.CreateCartItem(ctx, it)
	if errors.Is(err, core.ErrConflict) {
		// Carrera perdida: el unique del store ganó por nosotros
		return s.Store.FindCartItem(ctx, email, req.ClassID)
	}
	if err != nil {
		return nil, err
	}

	logger.From(ctx).Info("cart item created",
		logger.Email(it.StudentEmail),
		logger.ClassID(it.ClassID),
		logger.CartItemID(it.ID),
	)
	return it, nil
}

// Delete borra un item por id, solo para su dueño.
// El lookup va primero: 404 si no existe, 403 si el dueño no coincide.
func (s *CartService) Delete(ctx context.Context, claim token.Claim, id string) error {
	it, err := s.Store.GetCartItem(ctx, id)
	if err != nil {
		return err
	}
	if d := policy.AuthorizeOwner(claim, policy.OpCartDelete, it.StudentEmail); d.Deny() {
		return ErrForbidden
	}
	if err := s.Store.DeleteCartItem(ctx, id); err != nil {
		return err
	}

	logger.From(ctx).Info("cart item deleted",
		logger.CartItemID(id),
		logger.Email(it.StudentEmail),
	)
	return nil
}
