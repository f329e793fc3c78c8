package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/sangkips/temple-api/internal/domain/entity"
	domainRepo "github.com/sangkips/temple-api/internal/domain/repository"
)

const offeringTypesPath = "/bookings/buddha-lamp/types"

type offeringTypeRepository struct {
	client *Client
}

// NewOfferingTypeRepository creates a backend offering type repository
func NewOfferingTypeRepository(client *Client) domainRepo.OfferingTypeRepository {
	return &offeringTypeRepository{client: client}
}

func (r *offeringTypeRepository) List(ctx context.Context) ([]entity.OfferingType, error) {
	var raw json.RawMessage
	if err := r.client.Get(ctx, offeringTypesPath, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[entity.OfferingType](raw)
}

func (r *offeringTypeRepository) GetByID(ctx context.Context, id string) (*entity.OfferingType, error) {
	var ot entity.OfferingType
	err := r.client.Get(ctx, offeringTypesPath+"/"+url.PathEscape(id), nil, &ot)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ot, nil
}

func (r *offeringTypeRepository) Create(ctx context.Context, form entity.OfferingTypeForm) (*entity.OfferingType, error) {
	var ot entity.OfferingType
	if err := r.client.Post(ctx, offeringTypesPath, form, &ot); err != nil {
		return nil, err
	}
	return &ot, nil
}

func (r *offeringTypeRepository) Update(ctx context.Context, id string, form entity.OfferingTypeForm) (*entity.OfferingType, error) {
	var ot entity.OfferingType
	err := r.client.Put(ctx, offeringTypesPath+"/"+url.PathEscape(id), form, &ot)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ot, nil
}

func (r *offeringTypeRepository) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, offeringTypesPath+"/"+url.PathEscape(id))
}
