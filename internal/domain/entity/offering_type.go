package entity

import "github.com/sangkips/temple-api/pkg/money"

// OfferingType is a lamp offering master-data entry
type OfferingType struct {
	ID            ID           `json:"id"`
	Name          string       `json:"name"`
	NameSecondary string       `json:"name_secondary"`
	Description   string       `json:"description"`
	Amount        money.Amount `json:"amount"`
	Status        string       `json:"status"`
}

// OfferingTypeForm holds the writable offering type fields
type OfferingTypeForm struct {
	Name          string       `json:"name"`
	NameSecondary string       `json:"name_secondary"`
	Description   string       `json:"description"`
	Amount        money.Amount `json:"amount"`
	Status        string       `json:"status,omitempty"`
}
