package models

import "time"

// DocumentType is a Colombian identity document kind.
type DocumentType string

const (
	DocumentCC  DocumentType = "CC"  // cédula de ciudadanía
	DocumentTI  DocumentType = "TI"  // tarjeta de identidad
	DocumentCE  DocumentType = "CE"  // cédula de extranjería
	DocumentPA  DocumentType = "PA"  // pasaporte
	DocumentRC  DocumentType = "RC"  // registro civil
	DocumentPEP DocumentType = "PEP" // permiso especial de permanencia
	DocumentPPT DocumentType = "PPT" // permiso por protección temporal
)

// Valid reports whether d is one of the known document types.
func (d DocumentType) Valid() bool {
	switch d {
	case DocumentCC, DocumentTI, DocumentCE, DocumentPA, DocumentRC, DocumentPEP, DocumentPPT:
		return true
	}
	return false
}

// FamilyMember is a dependent registered by a user. Optional columns are pointers
// so partial updates can tell "absent" from "empty".
type FamilyMember struct {
	ID             string        `bson:"_id" json:"id"`
	UserID         string        `bson:"userId" json:"userId"`
	EpsProviderID  *string       `bson:"epsProviderId,omitempty" json:"epsProviderId"`
	FullName       string        `bson:"fullName" json:"fullName"`
	DocumentType   *DocumentType `bson:"documentType,omitempty" json:"documentType"`
	DocumentNumber *string       `bson:"documentNumber,omitempty" json:"documentNumber"`
	BirthDate      *time.Time    `bson:"birthDate,omitempty" json:"birthDate"`
	Address        *string       `bson:"address,omitempty" json:"address"`
	Phone          *string       `bson:"phone,omitempty" json:"phone"`
	Cellphone      *string       `bson:"cellphone,omitempty" json:"cellphone"`
	Email          *string       `bson:"email,omitempty" json:"email"`
	Department     *string       `bson:"department,omitempty" json:"department"`
	City           *string       `bson:"city,omitempty" json:"city"`
	Regime         *string       `bson:"regime,omitempty" json:"regime"`
	Relationship   string        `bson:"relationship" json:"relationship"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`

	EpsProvider *EpsProviderSummary `bson:"-" json:"epsProvider"`
}

// FamilyMemberPatch carries the fields of a partial update; nil means unchanged.
type FamilyMemberPatch struct {
	EpsProviderID  *string
	FullName       *string
	DocumentType   *DocumentType
	DocumentNumber *string
	BirthDate      *time.Time
	Address        *string
	Phone          *string
	Cellphone      *string
	Email          *string
	Department     *string
	City           *string
	Regime         *string
	Relationship   *string
}

// Apply copies the non-nil fields of p onto m.
func (p FamilyMemberPatch) Apply(m *FamilyMember) {
	if p.EpsProviderID != nil {
		m.EpsProviderID = p.EpsProviderID
	}
	if p.FullName != nil {
		m.FullName = *p.FullName
	}
	if p.DocumentType != nil {
		m.DocumentType = p.DocumentType
	}
	if p.DocumentNumber != nil {
		m.DocumentNumber = p.DocumentNumber
	}
	if p.BirthDate != nil {
		m.BirthDate = p.BirthDate
	}
	if p.Address != nil {
		m.Address = p.Address
	}
	if p.Phone != nil {
		m.Phone = p.Phone
	}
	if p.Cellphone != nil {
		m.Cellphone = p.Cellphone
	}
	if p.Email != nil {
		m.Email = p.Email
	}
	if p.Department != nil {
		m.Department = p.Department
	}
	if p.City != nil {
		m.City = p.City
	}
	if p.Regime != nil {
		m.Regime = p.Regime
	}
	if p.Relationship != nil {
		m.Relationship = *p.Relationship
	}
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
