package art_serv

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rskv-p/artkv/pkg/x_art"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutGetDelete(t *testing.T) {
	s := NewStore(zerolog.Nop())

	_, replaced, err := s.Put([]byte("car"), []byte("1"))
	require.NoError(t, err)
	assert.False(t, replaced)

	old, replaced, err := s.Put([]byte("car"), []byte("2"))
	require.NoError(t, err)
	assert.True(t, replaced)
	assert.Equal(t, []byte("1"), old)

	v, ok := s.Get([]byte("car"))
	require.True(t, ok)
	assert.Equal(t, []byte("2"), v)

	// the returned value is a copy
	v[0] = 'X'
	v, _ = s.Get([]byte("car"))
	assert.Equal(t, []byte("2"), v)

	old, ok = s.Delete([]byte("car"))
	require.True(t, ok)
	assert.Equal(t, []byte("2"), old)
	_, ok = s.Get([]byte("car"))
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestStore_List(t *testing.T) {
	s := NewStore(zerolog.Nop())
	for _, k := range []string{"user/2", "user/1", "user/10", "group/1"} {
		_, _, err := s.Put([]byte(k), []byte(k))
		require.NoError(t, err)
	}

	var keys []string
	for _, kv := range s.List([]byte("user/"), 0) {
		keys = append(keys, string(kv.Key))
	}
	assert.Equal(t, []string{"user/1", "user/10", "user/2"}, keys)
	assert.Len(t, s.List([]byte("user/"), 2), 2)
	assert.Len(t, s.Snapshot(), 4)
}

func TestStore_LoadReplacesContent(t *testing.T) {
	s := NewStore(zerolog.Nop())
	_, _, _ = s.Put([]byte("old"), []byte("x"))

	require.NoError(t, s.Load([]KV{{Key: []byte("a"), Value: []byte("1")}, {Key: []byte("b"), Value: []byte("2")}}))
	assert.Equal(t, 2, s.Len())
	_, ok := s.Get([]byte("old"))
	assert.False(t, ok)
}

func TestStore_AllocationLimit(t *testing.T) {
	s := NewStore(zerolog.Nop(), x_art.WithMaxNodes(3))
	_, _, err := s.Put([]byte("a"), nil)
	require.NoError(t, err)
	_, _, err = s.Put([]byte("b"), nil)
	require.NoError(t, err)
	_, _, err = s.Put([]byte("c"), nil)
	assert.ErrorIs(t, err, x_art.ErrAllocation)
	assert.Equal(t, 2, s.Len())
}

func TestStore_Events(t *testing.T) {
	s := NewStore(zerolog.Nop())
	events, cancel := s.Subscribe(8)
	defer cancel()

	_, _, _ = s.Put([]byte("k"), []byte("v"))
	_, _ = s.Delete([]byte("k"))
	_, _ = s.Delete([]byte("missing"))

	ev := <-events
	assert.Equal(t, EventPut, ev.Type)
	assert.Equal(t, []byte("k"), ev.Key)
	assert.Equal(t, []byte("v"), ev.Value)
	assert.False(t, ev.Time.IsZero())

	ev = <-events
	assert.Equal(t, EventDelete, ev.Type)

	select {
	case ev := <-events:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestStore_EventsFollowMutationOrder(t *testing.T) {
	s := NewStore(zerolog.Nop())
	const writers, rounds = 8, 200
	events, cancel := s.Subscribe(writers * rounds)
	defer cancel()

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				_, _, err := s.Put([]byte("same"), []byte{byte(w), byte(i)})
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	var last Event
	for i := 0; i < writers*rounds; i++ {
		last = <-events
	}
	stored, ok := s.Get([]byte("same"))
	require.True(t, ok)
	assert.Equal(t, stored, last.Value)
}

func TestStore_SlowSubscriberDoesNotBlock(t *testing.T) {
	s := NewStore(zerolog.Nop())
	_, cancel := s.Subscribe(1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			_, _, _ = s.Put([]byte{byte(i)}, nil)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("writer blocked on a full subscriber")
	}
}

func TestStore_CloseEndsSubscriptions(t *testing.T) {
	s := NewStore(zerolog.Nop())
	events, cancel := s.Subscribe(1)
	s.Close()

	_, ok := <-events
	assert.False(t, ok)
	cancel() // no double close

	_, _, err := s.Put([]byte("k"), nil)
	assert.ErrorIs(t, err, x_art.ErrDestroyed)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore(zerolog.Nop())
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := []byte{byte(w), byte(i)}
				_, _, err := s.Put(key, key)
				assert.NoError(t, err)
				_, _ = s.Get(key)
				_ = s.Len()
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, 800, s.Len())
}

func TestStore_Dump(t *testing.T) {
	s := NewStore(zerolog.Nop())
	_, _, _ = s.Put([]byte("abc"), []byte("1"))
	var buf bytes.Buffer
	s.Dump(&buf)
	assert.Contains(t, buf.String(), "LEAF")
	assert.Equal(t, 1, s.Stats().Keys)
}
