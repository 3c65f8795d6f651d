package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/fluency/internal/http/dto"
	"github.com/dropDatabas3/fluency/internal/store/core"
	"github.com/dropDatabas3/fluency/internal/store/memory"
)

func newCartFixture(t *testing.T) (*CartService, *memory.Store) {
	t.Helper()
	st := memory.New()
	return NewCartService(st), st
}

func TestCartAddIsIdempotentPerStudentClass(t *testing.T) {
	svc, _ := newCartFixture(t)
	ctx := context.Background()
	cl := claimFor("s@e.com")

	first, err := svc.Add(ctx, cl, "s@e.com", dto.AddCartItemRequest{ClassID: "c1", Status: "pending"})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	// Duplicado: devuelve el item previo, status original intacto
	second, err := svc.Add(ctx, cl, "s@e.com", dto.AddCartItemRequest{ClassID: "c1", Status: "otro"})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "pending", second.Status)

	// Otra clase sí crea un item nuevo
	third, err := svc.Add(ctx, cl, "s@e.com", dto.AddCartItemRequest{ClassID: "c2"})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, third.ID)
}

// racingCartStore simula perder la carrera probe-then-insert del carrito:
// un create concurrente se adelanta entre el FindCartItem y el CreateCartItem.
type racingCartStore struct {
	*memory.Store
	winner *core.CartItem
}

func (s *racingCartStore) CreateCartItem(ctx context.Context, it *core.CartItem) error {
	if err := s.Store.CreateCartItem(ctx, s.winner); err != nil {
		return err
	}
	return core.ErrConflict
}

func TestCartAddRecoversFromCreateRace(t *testing.T) {
	st := &racingCartStore{
		Store:  memory.New(),
		winner: &core.CartItem{StudentEmail: "s@e.com", ClassID: "c1", Status: "pending"},
	}
	svc := NewCartService(st)

	// Conflict del store → Add relee por (student, class) y devuelve el
	// item existente sin error.
	it, err := svc.Add(context.Background(), claimFor("s@e.com"), "s@e.com",
		dto.AddCartItemRequest{ClassID: "c1", Status: "otro"})
	require.NoError(t, err)
	require.Equal(t, st.winner.ID, it.ID)
	require.Equal(t, "pending", it.Status)
}

func TestCartAddEnforcesOwnership(t *testing.T) {
	svc, _ := newCartFixture(t)

	_, err := svc.Add(context.Background(), claimFor("a@e.com"), "b@e.com",
		dto.AddCartItemRequest{ClassID: "c1"})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestCartAddValidatesInput(t *testing.T) {
	svc, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, claimFor("a@e.com"), "", dto.AddCartItemRequest{ClassID: "c1"})
	require.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Add(ctx, claimFor("a@e.com"), "a@e.com", dto.AddCartItemRequest{})
	require.ErrorIs(t, err, ErrClassRequired)
}

func TestCartListEnforcesOwnership(t *testing.T) {
	svc, st := newCartFixture(t)
	ctx := context.Background()

	require.NoError(t, st.CreateCartItem(ctx, &core.CartItem{StudentEmail: "a@e.com", ClassID: "c1"}))

	items, err := svc.List(ctx, claimFor("a@e.com"), "a@e.com", "")
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, err = svc.List(ctx, claimFor("a@e.com"), "b@e.com", "")
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.List(ctx, claimFor("a@e.com"), "", "")
	require.ErrorIs(t, err, ErrEmailRequired)
}

func TestCartDeleteLookupComesFirst(t *testing.T) {
	svc, st := newCartFixture(t)
	ctx := context.Background()

	it := &core.CartItem{StudentEmail: "owner@e.com", ClassID: "c1"}
	require.NoError(t, st.CreateCartItem(ctx, it))

	// Inexistente: 404 antes que cualquier check de ownership
	err := svc.Delete(ctx, claimFor("otro@e.com"), "no-such-id")
	require.ErrorIs(t, err, core.ErrNotFound)

	// Existente pero ajeno: forbidden
	err = svc.Delete(ctx, claimFor("otro@e.com"), it.ID)
	require.ErrorIs(t, err, ErrForbidden)

	// El dueño borra; el segundo delete ya no lo encuentra
	require.NoError(t, svc.Delete(ctx, claimFor("owner@e.com"), it.ID))
	err = svc.Delete(ctx, claimFor("owner@e.com"), it.ID)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestCartDeleteFreesNaturalKey(t *testing.T) {
	svc, _ := newCartFixture(t)
	ctx := context.Background()
	cl := claimFor("s@e.com")

	first, err := svc.Add(ctx, cl, "s@e.com", dto.AddCartItemRequest{ClassID: "c1"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, cl, first.ID))

	// Tras borrar, el par (student, class) puede reusarse con identidad nueva
	again, err := svc.Add(ctx, cl, "s@e.com", dto.AddCartItemRequest{ClassID: "c1"})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, again.ID)
}
