package cache

import (
	"fmt"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	logger "github.com/nmhung1294/INT3505E-02-demo/logging"
)

func TestMain(m *testing.M) {
	logger.InitLogger(os.TempDir())
	os.Exit(m.Run())
}

func TestMakeKeyParameterOrderIndependence(t *testing.T) {
	a := MakeKey("/api/book_titles", url.Values{"page": {"1"}, "size": {"10"}})
	b := MakeKey("/api/book_titles", url.Values{"size": {"10"}, "page": {"1"}})

	assert.Equal(t, a, b)
	assert.Equal(t, "/api/book_titles", a.Path)
}

func TestMakeKeyMultiValueOrderIndependence(t *testing.T) {
	a := MakeKey("/api/book_titles", url.Values{"category": {"Fiction", "History"}})
	b := MakeKey("/api/book_titles", url.Values{"category": {"History", "Fiction"}})

	assert.Equal(t, a.Digest, b.Digest)
}

func TestMakeKeyDistinguishesPathsAndParams(t *testing.T) {
	params := url.Values{"page": {"1"}}

	k1 := MakeKey("/api/book_titles", params)
	k2 := MakeKey("/api/book_copies", params)
	assert.NotEqual(t, k1.Digest, k2.Digest)

	k3 := MakeKey("/api/book_titles", url.Values{"page": {"2"}})
	assert.NotEqual(t, k1.Digest, k3.Digest)

	k4 := MakeKey("/api/book_titles", nil)
	assert.NotEqual(t, k1.Digest, k4.Digest)
}

func TestGetReturnsFreshValue(t *testing.T) {
	c := New(time.Minute)
	key := MakeKey("/api/book_titles", nil)

	c.Set(key, "payload")

	got, ok := c.Get(key)
	assert.True(t, ok)
	assert.Equal(t, "payload", got)
}

func TestGetMissOnUnknownKey(t *testing.T) {
	c := New(time.Minute)

	got, ok := c.Get(MakeKey("/api/book_titles", nil))
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestExpiredEntryIsDroppedOnLookup(t *testing.T) {
	c := New(time.Minute)
	key := MakeKey("/api/book_titles", nil)

	c.Set(key, "payload")

	// Move the clock past the entry's TTL instead of sleeping.
	c.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	got, ok := c.Get(key)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.Equal(t, 0, c.Len(), "expired entry must not be retained after lookup")
}

func TestSetWithTTLOverridesDefault(t *testing.T) {
	c := New(time.Minute)
	key := MakeKey("/api/book_titles", nil)

	c.SetWithTTL(key, "payload", 50*time.Millisecond)

	_, ok := c.Get(key)
	assert.True(t, ok)

	time.Sleep(80 * time.Millisecond)

	_, ok = c.Get(key)
	assert.False(t, ok)
}

func TestSetOverwritesExisting(t *testing.T) {
	c := New(time.Minute)
	key := MakeKey("/api/book_titles", nil)

	c.Set(key, "old")
	c.Set(key, "new")

	got, ok := c.Get(key)
	assert.True(t, ok)
	assert.Equal(t, "new", got)
	assert.Equal(t, 1, c.Len())
}

func TestDeleteByPrefix(t *testing.T) {
	c := New(time.Minute)

	titles1 := MakeKey("/api/book_titles", url.Values{"page": {"1"}})
	titles2 := MakeKey("/api/book_titles", url.Values{"page": {"2"}})
	copies := MakeKey("/api/book_copies", nil)

	c.Set(titles1, 1)
	c.Set(titles2, 2)
	c.Set(copies, 3)

	deleted := c.DeleteByPrefix("/api/book_titles")
	assert.Equal(t, 2, deleted)

	_, ok := c.Get(titles1)
	assert.False(t, ok)
	_, ok = c.Get(titles2)
	assert.False(t, ok)

	got, ok := c.Get(copies)
	assert.True(t, ok)
	assert.Equal(t, 3, got)
}

func TestDeleteByPrefixNoMatches(t *testing.T) {
	c := New(time.Minute)
	c.Set(MakeKey("/api/book_copies", nil), 1)

	assert.Equal(t, 0, c.DeleteByPrefix("/api/borrowings"))
	assert.Equal(t, 1, c.Len())
}

func TestConcurrentAccess(t *testing.T) {
	c := New(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				path := fmt.Sprintf("/api/book_titles/%d", worker)
				key := MakeKey(path, url.Values{"j": {fmt.Sprint(j)}})
				c.Set(key, worker)
				if got, ok := c.Get(key); ok {
					assert.Equal(t, worker, got)
				}
				if j%50 == 0 {
					c.DeleteByPrefix(path)
				}
			}
		}(i)
	}
	wg.Wait()

	// Every surviving key must still map to its own worker's value.
	for i := 0; i < 16; i++ {
		key := MakeKey(fmt.Sprintf("/api/book_titles/%d", i), url.Values{"j": {"199"}})
		if got, ok := c.Get(key); ok {
			assert.Equal(t, i, got)
		}
	}
}
