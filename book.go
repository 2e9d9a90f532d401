package enode

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ============================================================================
//                              URISource - 地址来源
// ============================================================================

// URISource 节点地址的来源
type URISource int

const (
	// URISourceUnknown 未知来源
	URISourceUnknown URISource = iota
	// URISourceManual 手动配置
	URISourceManual
	// URISourceBootstrap 从引导列表 / 票据获取
	URISourceBootstrap
	// URISourceDiscovery 从发现协议获取
	URISourceDiscovery
	// URISourceIncoming 从入站连接获取
	URISourceIncoming
)

// String 返回地址来源的字符串表示
func (s URISource) String() string {
	switch s {
	case URISourceManual:
		return "manual"
	case URISourceBootstrap:
		return "bootstrap"
	case URISourceDiscovery:
		return "discovery"
	case URISourceIncoming:
		return "incoming"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              NodeBook - 节点地址簿
// ============================================================================

// 地址簿默认参数
const (
	// DefaultBookCapacity 默认容量上限
	DefaultBookCapacity = 1024

	// DefaultBookTTL 默认条目有效期
	DefaultBookTTL = time.Hour
)

// BookOption 地址簿配置选项
type BookOption func(*bookOptions)

type bookOptions struct {
	capacity int
	ttl      time.Duration
}

// WithCapacity 设置地址簿容量上限
//
// 超出容量时按 LRU 策略淘汰最久未访问的节点。
func WithCapacity(n int) BookOption {
	return func(o *bookOptions) {
		o.capacity = n
	}
}

// WithTTL 设置条目有效期
//
// 过期条目在读取时惰性移除，也可通过 Cleanup 主动清理。
func WithTTL(d time.Duration) BookOption {
	return func(o *bookOptions) {
		o.ttl = d
	}
}

// bookEntry 地址簿条目
type bookEntry struct {
	uri     *NodeURI
	source  URISource
	addedAt time.Time
}

// NodeBook 有界的节点地址簿
//
// 以 NodeID 为键存储最近一次观察到的节点地址，
// 容量受限（LRU 淘汰），条目带 TTL。并发安全由底层缓存保证。
type NodeBook struct {
	ttl   time.Duration
	cache *lru.Cache[NodeID, *bookEntry]
}

// NewNodeBook 创建节点地址簿
func NewNodeBook(opts ...BookOption) (*NodeBook, error) {
	o := &bookOptions{
		capacity: DefaultBookCapacity,
		ttl:      DefaultBookTTL,
	}
	for _, opt := range opts {
		opt(o)
	}

	cache, err := lru.NewWithEvict(o.capacity, func(id NodeID, _ *bookEntry) {
		log.Debugf("地址簿淘汰节点: %s", id.ShortString())
	})
	if err != nil {
		return nil, err
	}

	return &NodeBook{ttl: o.ttl, cache: cache}, nil
}

// Add 添加或更新节点地址
//
// 同一 NodeID 重复添加时保留最新地址并刷新 TTL。
func (b *NodeBook) Add(uri *NodeURI, source URISource) error {
	if uri == nil {
		return ErrNilURI
	}

	b.cache.Add(uri.ID(), &bookEntry{
		uri:     uri,
		source:  source,
		addedAt: time.Now(),
	})
	log.Debugf("地址簿记录节点: %s -> %s (来源: %s)", uri.ID().ShortString(), uri.String(), source)
	return nil
}

// Get 查询节点地址
//
// 条目已过期时视为不存在并惰性移除。
func (b *NodeBook) Get(id NodeID) (*NodeURI, bool) {
	entry, ok := b.cache.Get(id)
	if !ok {
		return nil, false
	}
	if b.expired(entry) {
		b.cache.Remove(id)
		return nil, false
	}
	return entry.uri, true
}

// Source 查询节点地址的来源
func (b *NodeBook) Source(id NodeID) (URISource, bool) {
	entry, ok := b.cache.Peek(id)
	if !ok || b.expired(entry) {
		return URISourceUnknown, false
	}
	return entry.source, true
}

// Peers 返回所有未过期节点的 ID
func (b *NodeBook) Peers() []NodeID {
	keys := b.cache.Keys()
	peers := make([]NodeID, 0, len(keys))
	for _, id := range keys {
		if entry, ok := b.cache.Peek(id); ok && !b.expired(entry) {
			peers = append(peers, id)
		}
	}
	return peers
}

// URIs 返回所有未过期的节点地址
func (b *NodeBook) URIs() []*NodeURI {
	keys := b.cache.Keys()
	uris := make([]*NodeURI, 0, len(keys))
	for _, id := range keys {
		if entry, ok := b.cache.Peek(id); ok && !b.expired(entry) {
			uris = append(uris, entry.uri)
		}
	}
	return uris
}

// Remove 移除节点
func (b *NodeBook) Remove(id NodeID) {
	b.cache.Remove(id)
}

// Len 返回当前条目数（含未清理的过期条目）
func (b *NodeBook) Len() int {
	return b.cache.Len()
}

// Cleanup 清理过期条目，返回移除数量
func (b *NodeBook) Cleanup() int {
	removed := 0
	for _, id := range b.cache.Keys() {
		if entry, ok := b.cache.Peek(id); ok && b.expired(entry) {
			b.cache.Remove(id)
			removed++
		}
	}
	if removed > 0 {
		log.Debugf("地址簿清理过期条目: %d", removed)
	}
	return removed
}

// Purge 清空地址簿
func (b *NodeBook) Purge() {
	b.cache.Purge()
}

func (b *NodeBook) expired(entry *bookEntry) bool {
	return b.ttl > 0 && time.Since(entry.addedAt) > b.ttl
}
