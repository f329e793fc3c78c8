package upstream

import (
	"context"
	"errors"
	"net/url"

	"github.com/sangkips/temple-api/internal/domain/entity"
	"github.com/sangkips/temple-api/internal/domain/enum"
	domainRepo "github.com/sangkips/temple-api/internal/domain/repository"
)

type purchaseReportRepository struct {
	client *Client
}

// NewPurchaseReportRepository creates a backend purchase report repository
func NewPurchaseReportRepository(client *Client) domainRepo.PurchaseReportRepository {
	return &purchaseReportRepository{client: client}
}

func reportPath(kind enum.ReportKind) string {
	return "/purchase/reports/" + string(kind)
}

func (r *purchaseReportRepository) Get(ctx context.Context, kind enum.ReportKind, filter entity.ReportFilter) (*entity.UpstreamReport, error) {
	var report entity.UpstreamReport
	err := r.client.Get(ctx, reportPath(kind), filter.Query(), &report)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *purchaseReportRepository) ExportURL(kind enum.ReportKind, format string, filter entity.ReportFilter) string {
	return r.client.URL(reportPath(kind)+"/"+format, filter.Query())
}

type supplierStatementRepository struct {
	client *Client
}

// NewSupplierStatementRepository creates a backend supplier statement repository
func NewSupplierStatementRepository(client *Client) domainRepo.SupplierStatementRepository {
	return &supplierStatementRepository{client: client}
}

func (r *supplierStatementRepository) Get(ctx context.Context, supplierID, fromDate, toDate string) (*entity.SupplierStatement, error) {
	q := url.Values{}
	if fromDate != "" {
		q.Set("from_date", fromDate)
	}
	if toDate != "" {
		q.Set("to_date", toDate)
	}
	var stmt entity.SupplierStatement
	err := r.client.Get(ctx, "/purchase/suppliers/"+url.PathEscape(supplierID)+"/suppliers-statement", q, &stmt)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stmt, nil
}
