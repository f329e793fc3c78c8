package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/temple-api/internal/domain/entity"
	"github.com/sangkips/temple-api/pkg/money"
)

type fakeOfferingTypeRepo struct {
	types   []entity.OfferingType
	created []entity.OfferingTypeForm
}

func (f *fakeOfferingTypeRepo) List(ctx context.Context) ([]entity.OfferingType, error) {
	return f.types, nil
}

func (f *fakeOfferingTypeRepo) GetByID(ctx context.Context, id string) (*entity.OfferingType, error) {
	for i := range f.types {
		if f.types[i].ID.String() == id {
			return &f.types[i], nil
		}
	}
	return nil, nil
}

func (f *fakeOfferingTypeRepo) Create(ctx context.Context, form entity.OfferingTypeForm) (*entity.OfferingType, error) {
	f.created = append(f.created, form)
	return &entity.OfferingType{ID: "new", Name: form.Name, Amount: form.Amount, Status: form.Status}, nil
}

func (f *fakeOfferingTypeRepo) Update(ctx context.Context, id string, form entity.OfferingTypeForm) (*entity.OfferingType, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeOfferingTypeRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func TestListActiveOfferingTypes(t *testing.T) {
	repo := &fakeOfferingTypeRepo{types: []entity.OfferingType{
		{ID: "1", Name: "Lamp of Wisdom", Status: "ACTIVE"},
		{ID: "2", Name: "Retired Lamp", Status: "INACTIVE"},
		{ID: "3", Name: "Legacy Lamp"},
	}}
	s := NewOfferingTypeService(repo)

	active, err := s.ListOfferingTypes(context.Background(), true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 2 || active[1].ID != "3" {
		t.Fatalf("unexpected active types %+v", active)
	}
}

func TestCreateOfferingTypeNormalizes(t *testing.T) {
	repo := &fakeOfferingTypeRepo{}
	s := NewOfferingTypeService(repo)

	ot, err := s.CreateOfferingType(context.Background(), entity.OfferingTypeForm{Name: "  Lamp of Health ", Amount: money.MustParse("38")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ot.Name != "Lamp of Health" || ot.Status != "ACTIVE" {
		t.Fatalf("unexpected offering type %+v", ot)
	}

	_, err = s.CreateOfferingType(context.Background(), entity.OfferingTypeForm{Status: "archived", Amount: money.MustParse("-5")})
	if appCode(err) != http.StatusUnprocessableEntity {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatal("invalid forms must not reach the backend")
	}
}

func TestOfferingTypeNotFound(t *testing.T) {
	s := NewOfferingTypeService(&fakeOfferingTypeRepo{})

	if err := s.DeleteOfferingType(context.Background(), "9"); appCode(err) != http.StatusNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := s.UpdateOfferingType(context.Background(), "9", entity.OfferingTypeForm{Name: "X"}); appCode(err) != http.StatusNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
