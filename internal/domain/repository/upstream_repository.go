package repository

import (
	"context"

	"github.com/sangkips/temple-api/internal/domain/entity"
	"github.com/sangkips/temple-api/internal/domain/enum"
)

// Repositories in this file are served by the temple backend REST API.
// A missing record is returned as nil, nil.

// SettingsRepository reads system settings
type SettingsRepository interface {
	// SystemValues returns GET /settings?type=SYSTEM data.values
	SystemValues(ctx context.Context) (map[string]any, error)
}

// BookingRepository accesses Buddha Lamp bookings
type BookingRepository interface {
	List(ctx context.Context) ([]entity.BookingRecord, error)
	GetByID(ctx context.Context, id string) (*entity.BookingRecord, error)
	Create(ctx context.Context, form entity.BookingForm) (*entity.BookingRecord, error)
	Update(ctx context.Context, id string, form entity.BookingForm) (*entity.BookingRecord, error)
	Cancel(ctx context.Context, id string) (*entity.BookingRecord, error)
}

// OfferingTypeRepository accesses lamp offering master data
type OfferingTypeRepository interface {
	List(ctx context.Context) ([]entity.OfferingType, error)
	GetByID(ctx context.Context, id string) (*entity.OfferingType, error)
	Create(ctx context.Context, form entity.OfferingTypeForm) (*entity.OfferingType, error)
	Update(ctx context.Context, id string, form entity.OfferingTypeForm) (*entity.OfferingType, error)
	Delete(ctx context.Context, id string) error
}

// PurchaseReportRepository reads purchase reports
type PurchaseReportRepository interface {
	Get(ctx context.Context, kind enum.ReportKind, filter entity.ReportFilter) (*entity.UpstreamReport, error)
	// ExportURL returns the backend download URL for a report format
	ExportURL(kind enum.ReportKind, format string, filter entity.ReportFilter) string
}

// SupplierStatementRepository reads supplier statements
type SupplierStatementRepository interface {
	Get(ctx context.Context, supplierID, fromDate, toDate string) (*entity.SupplierStatement, error)
}
