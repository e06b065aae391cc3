package models

import "time"

// EpsProvider is a health-insurance provider (Entidad Promotora de Salud).
type EpsProvider struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Code      string    `bson:"code" json:"code"`
	ParserKey string    `bson:"parserKey" json:"parserKey"`
	IsActive  bool      `bson:"isActive" json:"isActive"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type EpsProviderSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

func (p *EpsProvider) Summary() EpsProviderSummary {
	return EpsProviderSummary{ID: p.ID, Name: p.Name, Code: p.Code}
}
