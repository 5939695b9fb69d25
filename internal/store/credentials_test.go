package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialStoreRoundTrip(t *testing.T) {
	s := NewCredentialStore(newTestDB(t))

	_, _, err := s.Link()
	assert.ErrorIs(t, err, ErrNotLinked)

	require.NoError(t, s.SaveLink("token-1", "555"))

	token, userID, err := s.Link()
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)
	assert.Equal(t, "555", userID)
}

func TestCredentialStoreOverwritesWholesale(t *testing.T) {
	s := NewCredentialStore(newTestDB(t))

	require.NoError(t, s.SaveLink("token-1", "555"))
	require.NoError(t, s.SaveLink("token-2", "777"))

	token, userID, err := s.Link()
	require.NoError(t, err)
	assert.Equal(t, "token-2", token)
	assert.Equal(t, "777", userID)
}

func TestUserStoreDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	s := NewUserStore(db)

	require.NoError(t, s.Create(testUser("ana")))
	err := s.Create(testUser("ana"))
	assert.ErrorIs(t, err, ErrDuplicateUser)

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
