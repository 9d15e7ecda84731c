package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	c := NewClient("a", 1)

	_, ok := reg.Lookup("a")
	req.False(ok)

	reg.Register("a", c)
	got, ok := reg.Lookup("a")
	req.True(ok)
	req.Same(c, got)
	req.Equal(1, reg.Len())

	reg.Unregister("a")
	reg.Unregister("a")
	_, ok = reg.Lookup("a")
	req.False(ok)
	req.Zero(reg.Len())
}

func TestIdentityStoreRejectsEmptyName(t *testing.T) {
	req := require.New(t)
	store := NewIdentityStore()

	req.ErrorIs(store.SetName("a", ""), ErrValidation)
	_, ok := store.Name("a")
	req.False(ok)

	req.NoError(store.SetName("a", "alice"))
	req.ErrorIs(store.SetName("a", ""), ErrValidation)
	name, ok := store.Name("a")
	req.True(ok)
	req.Equal("alice", name)
}

func TestIdentityStoreAllowsDuplicateNames(t *testing.T) {
	req := require.New(t)
	store := NewIdentityStore()

	req.NoError(store.SetName("a", "sam"))
	req.NoError(store.SetName("b", "sam"))
	req.Equal(2, store.Len())

	store.Remove("a")
	_, ok := store.Name("a")
	req.False(ok)
	req.Equal(1, store.Len())
}

func TestMembershipTracker(t *testing.T) {
	req := require.New(t)
	m := NewMembership()

	_, ok := m.RoomOf("a")
	req.False(ok)

	m.Set("a", "r1")
	room, ok := m.RoomOf("a")
	req.True(ok)
	req.Equal(RoomID("r1"), room)

	m.Clear("a")
	_, ok = m.RoomOf("a")
	req.False(ok)
}

func TestDirectoryCreateUsesHostID(t *testing.T) {
	req := require.New(t)
	dir := NewDirectory()

	room, err := dir.Create("host-1")
	req.NoError(err)
	req.Equal(RoomID("host-1"), room.ID)
	req.Equal(ClientID("host-1"), room.Host)
	req.Equal([]ClientID{"host-1"}, room.Members())

	_, err = dir.Create("host-1")
	req.ErrorIs(err, ErrInvalidState)

	got, ok := dir.Get("host-1")
	req.True(ok)
	req.Same(room, got)

	dir.Delete("host-1")
	_, ok = dir.Get("host-1")
	req.False(ok)
	req.Zero(dir.Len())
}

func TestDirectoryListIsSorted(t *testing.T) {
	req := require.New(t)
	dir := NewDirectory()

	for _, id := range []ClientID{"c", "a", "b"} {
		_, err := dir.Create(id)
		req.NoError(err)
	}

	ids := make([]RoomID, 0, 3)
	for _, room := range dir.List() {
		ids = append(ids, room.ID)
	}
	req.Equal([]RoomID{"a", "b", "c"}, ids)
}

func TestAsCoreErrorCodes(t *testing.T) {
	req := require.New(t)

	req.Nil(AsCoreError(nil))
	req.Equal(ErrCodeValidation, AsCoreError(ErrValidation).Code)
	req.Equal(ErrCodeRoomNotFound, AsCoreError(ErrRoomNotFound).Code)
	req.Equal(ErrCodeInvalidState, AsCoreError(invalidState("x")).Code)

	ce := AsCoreError(invalidState("not in room"))
	req.ErrorIs(ce, ErrInvalidState)
	req.Same(ce, AsCoreError(ce))
}
