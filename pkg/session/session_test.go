package session

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_fileStore_RoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)

	err = store.Save(&Session{UserID: "user1", Email: "u@example.com", AccessToken: "token"})
	require.NoError(t, err)

	loaded, err = store.Load()
	require.NoError(t, err)
	require.Equal(t, "user1", loaded.UserID)
	require.Equal(t, "token", loaded.AccessToken)

	require.NoError(t, store.Clear())

	loaded, err = store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func Test_Manager_Events(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	manager := NewManager(store)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var events []EventType

	wg.Add(2)
	manager.OnAuthStateChange(func(ctx context.Context, event EventType, session *Session) {
		mu.Lock()
		events = append(events, event)
		mu.Unlock()
		wg.Done()
	})

	err := manager.SignIn(context.Background(), &Session{UserID: "user1"})
	require.NoError(t, err)
	require.Equal(t, "user1", manager.Current().UserID)

	require.NoError(t, manager.SignOut(context.Background()))
	require.Nil(t, manager.Current())

	wg.Wait()
	mu.Lock()
	defer mu.Unlock()
	require.ElementsMatch(t, []EventType{SignedIn, SignedOut}, events)
}

func Test_Manager_RecoverDoesNotFire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, NewFileStore(path).Save(&Session{UserID: "user1"}))

	manager := NewManager(NewFileStore(path))
	fired := make(chan struct{}, 1)
	manager.OnAuthStateChange(func(context.Context, EventType, *Session) {
		fired <- struct{}{}
	})

	session, err := manager.Recover()
	require.NoError(t, err)
	require.Equal(t, "user1", session.UserID)

	select {
	case <-fired:
		t.Fatal("recover must not fire auth events")
	default:
	}
}
