package upstream

import (
	"context"
	"net/url"

	domainRepo "github.com/sangkips/temple-api/internal/domain/repository"
)

// logoSetting may hold a path relative to the backend
const logoSetting = "temple_logo"

type settingsRepository struct {
	client *Client
}

// NewSettingsRepository creates a backend settings repository
func NewSettingsRepository(client *Client) domainRepo.SettingsRepository {
	return &settingsRepository{client: client}
}

func (r *settingsRepository) SystemValues(ctx context.Context) (map[string]any, error) {
	var data struct {
		Values map[string]any `json:"values"`
	}
	if err := r.client.Get(ctx, "/settings", url.Values{"type": {"SYSTEM"}}, &data); err != nil {
		return nil, err
	}
	if data.Values == nil {
		data.Values = map[string]any{}
	}
	if logo, ok := data.Values[logoSetting].(string); ok && logo != "" {
		data.Values[logoSetting] = r.client.ResolveURL(logo)
	}
	return data.Values, nil
}
