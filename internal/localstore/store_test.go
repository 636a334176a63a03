package localstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wingscafe/inventory_client/internal/apiclient"
)

func TestRosterKeepsSignupOrder(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)

	_, err = s.AppendRosterUser("alice", "1")
	require.NoError(t, err)
	_, err = s.AppendRosterUser("bob", "2")
	require.NoError(t, err)
	// Duplicates go in as-is.
	_, err = s.AppendRosterUser("alice", "3")
	require.NoError(t, err)

	users, err := s.RosterUsers()
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Equal(t, "alice", users[0].Username)
	require.Equal(t, "1", users[0].Password)
	require.Equal(t, "bob", users[1].Username)
	require.Equal(t, "alice", users[2].Username)
}

func TestCurrentUserRoundTrip(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)

	current, err := s.CurrentUser()
	require.NoError(t, err)
	require.Empty(t, current)

	require.NoError(t, s.SetCurrentUser("alice"))
	current, err = s.CurrentUser()
	require.NoError(t, err)
	require.Equal(t, "alice", current)

	require.NoError(t, s.SetCurrentUser("bob"))
	current, err = s.CurrentUser()
	require.NoError(t, err)
	require.Equal(t, "bob", current)

	require.NoError(t, s.ClearCurrentUser())
	current, err = s.CurrentUser()
	require.NoError(t, err)
	require.Empty(t, current)
}

func TestStateSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.AppendRosterUser("alice", "1")
	require.NoError(t, err)
	require.NoError(t, s.SetCurrentUser("alice"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	users, err := s.RosterUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)

	current, err := s.CurrentUser()
	require.NoError(t, err)
	require.Equal(t, "alice", current)
}

func TestSaveProductsReplacesSnapshot(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)

	first := []apiclient.Product{
		{ProductID: 1, Name: "Tea", Price: 5, Quantity: 10},
		{ProductID: 2, Name: "Coffee", Price: 8, Quantity: 3},
	}
	require.NoError(t, s.SaveProducts(first))

	cached, err := s.CachedProducts()
	require.NoError(t, err)
	require.Len(t, cached, 2)
	require.Equal(t, "Tea", cached[0].Name)
	require.Equal(t, 5.0, cached[0].Price)

	second := []apiclient.Product{
		{ProductID: 2, Name: "Coffee", Price: 8, Quantity: 1},
	}
	require.NoError(t, s.SaveProducts(second))

	cached, err = s.CachedProducts()
	require.NoError(t, err)
	require.Len(t, cached, 1)
	require.Equal(t, 1, cached[0].Quantity)
}
