package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/sangkips/temple-api/internal/domain/entity"
	domainRepo "github.com/sangkips/temple-api/internal/domain/repository"
)

const bookingsPath = "/bookings/buddha-lamp"

type bookingRepository struct {
	client *Client
}

// NewBookingRepository creates a backend booking repository
func NewBookingRepository(client *Client) domainRepo.BookingRepository {
	return &bookingRepository{client: client}
}

func (r *bookingRepository) List(ctx context.Context) ([]entity.BookingRecord, error) {
	var raw json.RawMessage
	if err := r.client.Get(ctx, bookingsPath, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[entity.BookingRecord](raw)
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*entity.BookingRecord, error) {
	var booking entity.BookingRecord
	err := r.client.Get(ctx, bookingsPath+"/"+url.PathEscape(id), nil, &booking)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, form entity.BookingForm) (*entity.BookingRecord, error) {
	var booking entity.BookingRecord
	if err := r.client.Post(ctx, bookingsPath, form, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, id string, form entity.BookingForm) (*entity.BookingRecord, error) {
	var booking entity.BookingRecord
	err := r.client.Put(ctx, bookingsPath+"/"+url.PathEscape(id), form, &booking)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Cancel(ctx context.Context, id string) (*entity.BookingRecord, error) {
	var booking entity.BookingRecord
	err := r.client.Post(ctx, bookingsPath+"/"+url.PathEscape(id)+"/cancel", struct{}{}, &booking)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
