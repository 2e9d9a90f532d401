package enode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeBookAddGet(t *testing.T) {
	book, err := NewNodeBook()
	require.NoError(t, err)

	uri := NewNodeURI(testNodeID(1), "10.0.0.5", 30303)
	require.NoError(t, book.Add(uri, URISourceManual))

	got, ok := book.Get(uri.ID())
	require.True(t, ok)
	assert.True(t, uri.Equal(got))

	source, ok := book.Source(uri.ID())
	require.True(t, ok)
	assert.Equal(t, URISourceManual, source)

	// 未知节点
	_, ok = book.Get(testNodeID(9))
	assert.False(t, ok)
}

func TestNodeBookNilURI(t *testing.T) {
	book, err := NewNodeBook()
	require.NoError(t, err)
	assert.ErrorIs(t, book.Add(nil, URISourceManual), ErrNilURI)
}

func TestNodeBookUpdate(t *testing.T) {
	book, err := NewNodeBook()
	require.NoError(t, err)

	id := testNodeID(1)
	require.NoError(t, book.Add(NewNodeURI(id, "10.0.0.5", 30303), URISourceBootstrap))
	require.NoError(t, book.Add(NewNodeURI(id, "10.0.0.6", 30303), URISourceDiscovery))

	// 同一节点保留最新地址
	got, ok := book.Get(id)
	require.True(t, ok)
	assert.Equal(t, "10.0.0.6", got.Host())
	assert.Equal(t, 1, book.Len())

	source, _ := book.Source(id)
	assert.Equal(t, URISourceDiscovery, source)
}

func TestNodeBookTTL(t *testing.T) {
	book, err := NewNodeBook(WithTTL(10 * time.Millisecond))
	require.NoError(t, err)

	uri := NewNodeURI(testNodeID(1), "10.0.0.5", 30303)
	require.NoError(t, book.Add(uri, URISourceManual))

	_, ok := book.Get(uri.ID())
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	// 过期条目读取时视为不存在
	_, ok = book.Get(uri.ID())
	assert.False(t, ok)
}

func TestNodeBookCleanup(t *testing.T) {
	book, err := NewNodeBook(WithTTL(10 * time.Millisecond))
	require.NoError(t, err)

	require.NoError(t, book.Add(NewNodeURI(testNodeID(1), "10.0.0.5", 30303), URISourceManual))
	require.NoError(t, book.Add(NewNodeURI(testNodeID(2), "10.0.0.6", 30303), URISourceManual))

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 2, book.Cleanup())
	assert.Equal(t, 0, book.Len())
}

func TestNodeBookCapacity(t *testing.T) {
	book, err := NewNodeBook(WithCapacity(2))
	require.NoError(t, err)

	require.NoError(t, book.Add(NewNodeURI(testNodeID(1), "10.0.0.1", 30303), URISourceManual))
	require.NoError(t, book.Add(NewNodeURI(testNodeID(2), "10.0.0.2", 30303), URISourceManual))
	require.NoError(t, book.Add(NewNodeURI(testNodeID(3), "10.0.0.3", 30303), URISourceManual))

	// 最久未访问的节点被淘汰
	assert.Equal(t, 2, book.Len())
	_, ok := book.Get(testNodeID(1))
	assert.False(t, ok)
	_, ok = book.Get(testNodeID(3))
	assert.True(t, ok)
}

func TestNodeBookPeersAndURIs(t *testing.T) {
	book, err := NewNodeBook()
	require.NoError(t, err)

	require.NoError(t, book.Add(NewNodeURI(testNodeID(1), "10.0.0.1", 30303), URISourceManual))
	require.NoError(t, book.Add(NewNodeURI(testNodeID(2), "10.0.0.2", 30303), URISourceManual))

	assert.Len(t, book.Peers(), 2)
	assert.Len(t, book.URIs(), 2)

	book.Remove(testNodeID(1))
	assert.Len(t, book.Peers(), 1)

	book.Purge()
	assert.Equal(t, 0, book.Len())
}

func TestURISourceString(t *testing.T) {
	assert.Equal(t, "manual", URISourceManual.String())
	assert.Equal(t, "bootstrap", URISourceBootstrap.String())
	assert.Equal(t, "discovery", URISourceDiscovery.String())
	assert.Equal(t, "incoming", URISourceIncoming.String())
	assert.Equal(t, "unknown", URISourceUnknown.String())
}
