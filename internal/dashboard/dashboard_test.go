package dashboard

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"productmanager/internal/apierr"
	"productmanager/internal/models"
)

type fakeService struct {
	products []models.Product

	getAllErr error
	createErr error
	updateErr error
	deleteErr error

	getAllCalls int
	createCalls []models.Product
	updateCalls []string
	deleteCalls []string
}

func (f *fakeService) GetAll(_ context.Context) ([]models.Product, error) {
	f.getAllCalls++
	if f.getAllErr != nil {
		return nil, f.getAllErr
	}
	out := make([]models.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeService) Create(_ context.Context, p models.Product) (*models.Product, error) {
	f.createCalls = append(f.createCalls, p)
	if f.createErr != nil {
		return nil, f.createErr
	}
	p.ID = "assigned-id"
	f.products = append(f.products, p)
	return &p, nil
}

func (f *fakeService) Update(_ context.Context, id string, p models.Product) (*models.Product, error) {
	f.updateCalls = append(f.updateCalls, id)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.products {
		if f.products[i].ID == id {
			p.ID = id
			f.products[i] = p
			return &p, nil
		}
	}
	return nil, apierr.HTTP(404, "Product not found with id: "+id)
}

func (f *fakeService) Delete(_ context.Context, id string) error {
	f.deleteCalls = append(f.deleteCalls, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.products[:0]
	for _, p := range f.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.products = kept
	return nil
}

type fakeNotifier struct {
	successes []string
	errors    []string
}

func (n *fakeNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *fakeNotifier) Error(message string)   { n.errors = append(n.errors, message) }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleProducts() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Widget", Description: "A widget", Price: 9.99, Stock: 5, Category: "Tools"},
		{ID: "2", Name: "Gadget", Description: "Handy gadget", Price: 19.99, Stock: 50, Category: "Electronics"},
		{ID: "3", Name: "Doohickey", Description: "For widget repairs", Price: 4.5, Stock: 12, Category: "Tools"},
	}
}

func newTestController(svc *fakeService) (*Controller, *fakeNotifier) {
	notifier := &fakeNotifier{}
	return NewController(svc, notifier, testLogger()), notifier
}

func TestFilter(t *testing.T) {
	products := sampleProducts()

	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query returns everything", "", []string{"1", "2", "3"}},
		{"matches name case-insensitively", "wIdGeT", []string{"1", "3"}},
		{"matches category", "electronics", []string{"2"}},
		{"matches description", "repairs", []string{"3"}},
		{"no match", "plumbus", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(products, tc.query)
			var ids []string
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			require.Equal(t, tc.want, ids)
		})
	}
}

func TestFilterMatchesNaiveSubsetForAllQueries(t *testing.T) {
	products := sampleProducts()
	containsFold := func(s, q string) bool {
		return strings.Contains(strings.ToLower(s), strings.ToLower(q))
	}

	for _, q := range []string{"", "a", "e", "widget", "TOOLS", "handy", "zzz", "9.99"} {
		got := Filter(products, q)

		var want []models.Product
		for _, p := range products {
			if containsFold(p.Name, q) || containsFold(p.Category, q) || containsFold(p.Description, q) {
				want = append(want, p)
			}
		}
		require.Equal(t, want, got, "query %q", q)
	}
}

func TestLoadPopulatesList(t *testing.T) {
	svc := &fakeService{products: sampleProducts()}
	ctrl, notifier := newTestController(svc)

	ctrl.Load(context.Background())

	state := ctrl.State()
	require.False(t, state.Loading)
	require.Len(t, state.Products, 3)
	require.Equal(t, state.Products, state.Visible)
	require.Empty(t, notifier.errors)
}

func TestLoadFailureEmptiesListAndNotifies(t *testing.T) {
	svc := &fakeService{getAllErr: apierr.HTTP(500, "Failed to fetch products")}
	ctrl, notifier := newTestController(svc)

	ctrl.Load(context.Background())

	state := ctrl.State()
	require.False(t, state.Loading)
	require.Empty(t, state.Products)
	require.Equal(t, []string{"Failed to fetch products"}, notifier.errors)
}

func TestSetQueryRecomputesVisible(t *testing.T) {
	svc := &fakeService{products: sampleProducts()}
	ctrl, _ := newTestController(svc)
	ctrl.Load(context.Background())

	ctrl.SetQuery("tools")
	require.Len(t, ctrl.State().Visible, 2)

	ctrl.SetQuery("")
	require.Len(t, ctrl.State().Visible, 3)

	// recomputation is pure: the full list is untouched
	require.Len(t, ctrl.State().Products, 3)
}

func TestSubmitCreateSuccessClosesFormAndReloads(t *testing.T) {
	svc := &fakeService{}
	ctrl, notifier := newTestController(svc)
	ctrl.Load(context.Background())

	ctrl.OpenCreate()
	require.True(t, ctrl.State().FormOpen)

	product := models.Product{Name: "Widget", Description: "A widget", Price: 9.99, Stock: 5, Category: "Tools"}
	err := ctrl.Submit(context.Background(), product)
	require.NoError(t, err)

	state := ctrl.State()
	require.False(t, state.FormOpen)
	require.Nil(t, state.Editing)
	require.Len(t, state.Products, 1)
	require.Equal(t, "assigned-id", state.Products[0].ID)
	require.Equal(t, "Widget", state.Products[0].Name)
	require.Equal(t, []string{"Product created successfully"}, notifier.successes)
}

func TestSubmitCreateFailureKeepsFormOpen(t *testing.T) {
	svc := &fakeService{products: sampleProducts(), createErr: apierr.HTTP(400, "Invalid price")}
	ctrl, notifier := newTestController(svc)
	ctrl.Load(context.Background())
	before := ctrl.State().Products

	ctrl.OpenCreate()
	err := ctrl.Submit(context.Background(), models.Product{Name: "Widget"})
	require.Error(t, err)

	state := ctrl.State()
	require.True(t, state.FormOpen)
	require.Equal(t, before, state.Products)
	require.Equal(t, []string{"Invalid price"}, notifier.errors)
}

func TestSubmitWithEditTargetCallsUpdate(t *testing.T) {
	svc := &fakeService{products: sampleProducts()}
	ctrl, notifier := newTestController(svc)
	ctrl.Load(context.Background())

	target := ctrl.State().Products[1]
	ctrl.OpenEdit(target)

	updated := target
	updated.Price = 24.99
	require.NoError(t, ctrl.Submit(context.Background(), updated))

	require.Equal(t, []string{"2"}, svc.updateCalls)
	require.Empty(t, svc.createCalls)
	require.False(t, ctrl.State().FormOpen)
	require.Equal(t, []string{"Product updated successfully"}, notifier.successes)
	require.Equal(t, 24.99, ctrl.State().Products[1].Price)
}

func TestRequestDeleteArmsWithoutNetworkCall(t *testing.T) {
	svc := &fakeService{products: sampleProducts()}
	ctrl, _ := newTestController(svc)
	ctrl.Load(context.Background())

	ctrl.RequestDelete("2")
	require.Equal(t, "2", ctrl.State().PendingDelete)
	require.Empty(t, svc.deleteCalls)
}

func TestCancelDeleteDisarmsWithoutNetworkCall(t *testing.T) {
	svc := &fakeService{products: sampleProducts()}
	ctrl, _ := newTestController(svc)
	ctrl.Load(context.Background())
	before := ctrl.State().Products

	ctrl.RequestDelete("2")
	ctrl.CancelDelete()

	state := ctrl.State()
	require.Empty(t, state.PendingDelete)
	require.Equal(t, before, state.Products)
	require.Empty(t, svc.deleteCalls)
}

func TestConfirmDeleteDeletesAndReloads(t *testing.T) {
	svc := &fakeService{products: sampleProducts()}
	ctrl, notifier := newTestController(svc)
	ctrl.Load(context.Background())

	ctrl.RequestDelete("2")
	require.NoError(t, ctrl.ConfirmDelete(context.Background()))

	state := ctrl.State()
	require.Empty(t, state.PendingDelete)
	require.Equal(t, []string{"2"}, svc.deleteCalls)
	require.Len(t, state.Products, 2)
	require.Equal(t, []string{"Product deleted successfully"}, notifier.successes)
}

func TestConfirmDeleteWithoutArmedTargetDoesNothing(t *testing.T) {
	svc := &fakeService{products: sampleProducts()}
	ctrl, _ := newTestController(svc)
	ctrl.Load(context.Background())

	require.NoError(t, ctrl.ConfirmDelete(context.Background()))
	require.Empty(t, svc.deleteCalls)
}

func TestConfirmDeleteFailureStaysArmed(t *testing.T) {
	svc := &fakeService{products: sampleProducts(), deleteErr: apierr.HTTP(500, "Failed to delete product")}
	ctrl, notifier := newTestController(svc)
	ctrl.Load(context.Background())

	ctrl.RequestDelete("3")
	require.Error(t, ctrl.ConfirmDelete(context.Background()))

	require.Equal(t, "3", ctrl.State().PendingDelete)
	require.Equal(t, []string{"Failed to delete product"}, notifier.errors)
}

func TestSubscribeSeesEveryTransition(t *testing.T) {
	svc := &fakeService{products: sampleProducts()}
	ctrl, _ := newTestController(svc)

	var queries []string
	ctrl.Subscribe(func(s State) { queries = append(queries, s.Query) })

	ctrl.SetQuery("a")
	ctrl.SetQuery("ab")
	require.Equal(t, []string{"a", "ab"}, queries)
}
