package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserJSONOmitsPasswordHash(t *testing.T) {
	u := &User{ID: "1", Email: "a@x.com", PasswordHash: "secret-hash", FullName: "A", IsActive: true}
	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret-hash")

	b, err = json.Marshal(u.Summary())
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret-hash")
	assert.Contains(t, string(b), `"fullName":"A"`)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1990-05-17")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("1990-05-17T10:00:00Z")
	require.NoError(t, err)

	_, err = ParseDate("17/05/1990")
	require.Error(t, err)
}

func TestFamilyMemberPatchApply(t *testing.T) {
	city := "Cali"
	m := &FamilyMember{FullName: "Old", Relationship: "Hijo"}
	name := "New"
	FamilyMemberPatch{FullName: &name, City: &city}.Apply(m)
	assert.Equal(t, "New", m.FullName)
	assert.Equal(t, "Hijo", m.Relationship)
	require.NotNil(t, m.City)
	assert.Equal(t, "Cali", *m.City)
	assert.True(t, DocumentPPT.Valid())
	assert.False(t, DocumentType("XX").Valid())
}
