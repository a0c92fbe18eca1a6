package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_Value(t *testing.T) {
	t.Run("nil list stored as empty array", func(t *testing.T) {
		var l StringList
		v, err := l.Value()
		require.NoError(t, err)
		assert.Equal(t, []byte("[]"), v)
	})

	t.Run("populated list", func(t *testing.T) {
		v, err := StringList{"penicillin", "latex"}.Value()
		require.NoError(t, err)
		assert.JSONEq(t, `["penicillin","latex"]`, string(v.([]byte)))
	})
}

func TestStringList_Scan(t *testing.T) {
	var l StringList

	require.NoError(t, l.Scan([]byte(`["asthma"]`)))
	assert.Equal(t, StringList{"asthma"}, l)

	require.NoError(t, l.Scan(`["diabetes","asthma"]`))
	assert.Len(t, l, 2)

	require.NoError(t, l.Scan(nil))
	assert.Nil(t, l)

	assert.Error(t, l.Scan(42))
}

func TestPatientUpdate_IsEmpty(t *testing.T) {
	assert.True(t, PatientUpdate{}.IsEmpty())

	phone := "555-0101"
	assert.False(t, PatientUpdate{PhoneNumber: &phone}.IsEmpty())

	insured := false
	assert.False(t, PatientUpdate{HasInsurance: &insured}.IsEmpty())
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, User{Role: RoleAdmin}.IsAdmin())
	assert.False(t, User{Role: RolePatient}.IsAdmin())
	assert.False(t, User{}.IsAdmin())
}
