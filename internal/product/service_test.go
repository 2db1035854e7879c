package product

import (
	"context"
	"errors"
	"testing"
)

type fakeStore struct {
	byID map[string]*Product
}

func newFakeStore() *fakeStore {
	return &fakeStore{byID: make(map[string]*Product)}
}

func (s *fakeStore) Create(_ context.Context, p *Product) error {
	copied := *p
	s.byID[p.ID] = &copied
	return nil
}

func (s *fakeStore) Find(_ context.Context, id string) (*Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *fakeStore) List(_ context.Context) ([]*Product, error) {
	var res []*Product
	for _, p := range s.byID {
		copied := *p
		res = append(res, &copied)
	}
	return res, nil
}

func (s *fakeStore) Update(_ context.Context, p *Product) error {
	if _, ok := s.byID[p.ID]; !ok {
		return ErrNotFound
	}
	copied := *p
	s.byID[p.ID] = &copied
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func TestCreateRequiresTitle(t *testing.T) {
	svc := NewService(newFakeStore())
	_, err := svc.Create(context.Background(), CreateInput{Title: "   ", Price: 10})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	svc := NewService(newFakeStore())
	_, err := svc.Create(context.Background(), CreateInput{Title: "Chair", Price: -1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	svc := NewService(newFakeStore())
	created, err := svc.Create(context.Background(), CreateInput{
		Title:    "Chair",
		Price:    100,
		Quantity: 5,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	price := 149.99
	updated, err := svc.Update(context.Background(), created.ID, UpdateInput{Price: &price})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Price != 149.99 {
		t.Fatalf("price not updated: %v", updated.Price)
	}
	if updated.Title != "Chair" || updated.Quantity != 5 {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateMissingProduct(t *testing.T) {
	svc := NewService(newFakeStore())
	title := "x"
	_, err := svc.Update(context.Background(), "missing", UpdateInput{Title: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
