package enode

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/spaolacci/murmur3"
	"go.uber.org/multierr"
)

// URIScheme enode URI 的 scheme 字面量
//
// 解析时大小写不敏感，输出时恒为小写。
const URIScheme = "enode"

// discport 查询参数名
const discportParam = "discport="

// ============================================================================
//                              NodeURI - 节点地址
// ============================================================================

// NodeURI 解析后的节点地址
//
// 不可变值对象：构造成功后字段不再变化，规范字符串在构造时一次性生成。
// 可在并发读取者之间自由共享，无需同步。
type NodeURI struct {
	id   NodeID
	host string
	tcp  uint16
	udp  uint16

	// canonical 规范字符串，构造时生成并缓存
	canonical string
}

// ============================================================================
//                              解析入口
// ============================================================================

// ParseNodeURI 从字符串解析节点地址
//
// 语法（scheme 大小写不敏感，首尾空白容忍）：
//
//	enode://<hex 节点ID>@<host>:<tcp端口>[?discport=<udp端口>]
//
// 校验规则：
//   - 节点 ID 必须为 hex，解码后恰好 NodeIDSize 字节
//   - host 为任意非空白的非空 token（主机名或 IP 字面量）
//   - 端口取值范围 0-65535；未给出 discport 时 UDP 端口等于 TCP 端口
//
// 失败时返回具体错误：ErrInvalidURI（语法）、ErrInvalidNodeID /
// *NodeIDLengthError（节点 ID）、ErrInvalidTCPPort、ErrInvalidUDPPort。
func ParseNodeURI(rawuri string) (*NodeURI, error) {
	s := strings.TrimSpace(rawuri)
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidURI)
	}

	// 首尾空白之外的空白字符不属于任何 token
	if strings.ContainsAny(s, " \t\r\n\v\f") {
		return nil, fmt.Errorf("%w: whitespace inside URI", ErrInvalidURI)
	}

	// scheme 检查（大小写不敏感）
	if len(s) < len(URIScheme)+3 ||
		!strings.EqualFold(s[:len(URIScheme)], URIScheme) ||
		s[len(URIScheme):len(URIScheme)+3] != "://" {
		return nil, fmt.Errorf("%w: missing %s:// prefix", ErrInvalidURI, URIScheme)
	}
	rest := s[len(URIScheme)+3:]

	// 节点 ID 与主机地址以 '@' 分隔
	at := strings.IndexByte(rest, '@')
	if at < 0 {
		return nil, fmt.Errorf("%w: missing '@' separator", ErrInvalidURI)
	}
	idToken, hostport := rest[:at], rest[at+1:]

	if idToken == "" || !isHexToken(idToken) {
		return nil, fmt.Errorf("%w: node ID must be hexadecimal", ErrInvalidURI)
	}
	id, err := ParseNodeID(idToken)
	if err != nil {
		return nil, err
	}

	// 可选的 discport 查询参数
	var discToken string
	if q := strings.IndexByte(hostport, '?'); q >= 0 {
		query := hostport[q+1:]
		hostport = hostport[:q]
		if !strings.HasPrefix(query, discportParam) {
			return nil, fmt.Errorf("%w: unexpected query %q", ErrInvalidURI, query)
		}
		discToken = query[len(discportParam):]
		if strings.ContainsAny(discToken, "?&=") {
			return nil, fmt.Errorf("%w: unexpected query %q", ErrInvalidURI, query)
		}
	}

	// host 与 TCP 端口以最后一个 ':' 分隔（兼容含 ':' 的 IPv6 字面量）
	colon := strings.LastIndexByte(hostport, ':')
	if colon < 0 {
		return nil, fmt.Errorf("%w: missing port", ErrInvalidURI)
	}
	host, tcpToken := hostport[:colon], hostport[colon+1:]
	if host == "" {
		return nil, fmt.Errorf("%w: empty host", ErrInvalidURI)
	}

	tcp, err := parsePort(tcpToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTCPPort, tcpToken)
	}

	// UDP 发现端口默认等于 TCP 端口，仅在 discport 非空时覆盖
	udp := tcp
	if discToken != "" {
		udp, err = parsePort(discToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidUDPPort, discToken)
		}
	}

	return newNodeURI(id, host, tcp, udp), nil
}

// ParseURL 从已结构化的 URL 解析节点地址
//
// 委托给字符串解析，错误分类与 ParseNodeURI 一致。
func ParseURL(u *url.URL) (*NodeURI, error) {
	if u == nil {
		return nil, fmt.Errorf("%w: nil URL", ErrInvalidURI)
	}
	return ParseNodeURI(u.String())
}

// MustParseNodeURI 解析节点地址，失败时 panic
//
// 仅用于常量初始化或测试代码。
func MustParseNodeURI(rawuri string) *NodeURI {
	uri, err := ParseNodeURI(rawuri)
	if err != nil {
		panic("enode: " + err.Error())
	}
	return uri
}

// ParseNodeURIs 批量解析节点地址
//
// 单条失败不会中断整体解析：返回所有成功解析的地址，
// 并以聚合错误报告每一条失败的输入。
func ParseNodeURIs(rawuris []string) ([]*NodeURI, error) {
	var errs error
	uris := make([]*NodeURI, 0, len(rawuris))
	for _, s := range rawuris {
		uri, err := ParseNodeURI(s)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("parse %q: %w", s, err))
			continue
		}
		uris = append(uris, uri)
	}
	return uris, errs
}

// ============================================================================
//                              字段构造
// ============================================================================

// NewNodeURI 由字段直接构造节点地址（TCP 与 UDP 端口相同）
//
// 不做任何校验，信任调用方已持有合法数据。
// 不可信的外部输入应使用 ParseNodeURI。
func NewNodeURI(id NodeID, host string, port uint16) *NodeURI {
	return newNodeURI(id, host, port, port)
}

// NewNodeURIWithDiscPort 由字段直接构造节点地址（独立的 UDP 发现端口）
//
// 同 NewNodeURI，不做校验。tcp == udp 时规范字符串不含 discport 后缀。
func NewNodeURIWithDiscPort(id NodeID, host string, tcp, udp uint16) *NodeURI {
	return newNodeURI(id, host, tcp, udp)
}

// NewNodeURIFromIP 由 IP 地址构造节点地址
//
// host 取 ip.String() 的规范文本形式。
func NewNodeURIFromIP(id NodeID, ip net.IP, tcp, udp uint16) *NodeURI {
	return newNodeURI(id, ip.String(), tcp, udp)
}

// newNodeURI 构造 NodeURI 并生成规范字符串
//
// 规范化规则：
//   - scheme 与节点 ID hex 恒为小写
//   - tcp == udp 时省略 discport 后缀
func newNodeURI(id NodeID, host string, tcp, udp uint16) *NodeURI {
	n := &NodeURI{id: id, host: host, tcp: tcp, udp: udp}
	if tcp == udp {
		n.canonical = fmt.Sprintf("%s://%s@%s:%d", URIScheme, id.String(), host, tcp)
	} else {
		n.canonical = fmt.Sprintf("%s://%s@%s:%d?%s%d", URIScheme, id.String(), host, tcp, discportParam, udp)
	}
	return n
}

// ============================================================================
//                              访问器
// ============================================================================

// ID 返回节点 ID
func (n *NodeURI) ID() NodeID {
	return n.id
}

// Host 返回主机地址（主机名或 IP 字面量，按输入原样保留）
func (n *NodeURI) Host() string {
	return n.host
}

// TCPPort 返回 TCP 监听端口
func (n *NodeURI) TCPPort() uint16 {
	return n.tcp
}

// UDPPort 返回 UDP 发现端口
//
// 未显式指定 discport 时等于 TCPPort()。
func (n *NodeURI) UDPPort() uint16 {
	return n.udp
}

// IP 返回主机地址的 IP 解析结果
//
// host 不是 IP 字面量（如域名）时返回 nil。
func (n *NodeURI) IP() net.IP {
	return net.ParseIP(n.host)
}

// TCPAddr 返回 TCP 连接地址
//
// host 不是 IP 字面量时返回 nil。
func (n *NodeURI) TCPAddr() *net.TCPAddr {
	ip := n.IP()
	if ip == nil {
		return nil
	}
	return &net.TCPAddr{IP: ip, Port: int(n.tcp)}
}

// UDPAddr 返回 UDP 发现地址
//
// host 不是 IP 字面量时返回 nil。
func (n *NodeURI) UDPAddr() *net.UDPAddr {
	ip := n.IP()
	if ip == nil {
		return nil
	}
	return &net.UDPAddr{IP: ip, Port: int(n.udp)}
}

// String 返回缓存的规范字符串
func (n *NodeURI) String() string {
	return n.canonical
}

// Equal 比较两个节点地址是否相等
//
// 相等性以规范字符串为准：字段相同的两个实例必然相等，
// 与原始输入的大小写或空白无关。
func (n *NodeURI) Equal(other *NodeURI) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.canonical == other.canonical
}

// Hash 返回规范字符串的稳定哈希
//
// 满足：Equal 的两个实例哈希必然相同。
func (n *NodeURI) Hash() uint64 {
	return murmur3.Sum64([]byte(n.canonical))
}

// ============================================================================
//                              内部辅助
// ============================================================================

// parsePort 解析十进制端口 token（0-65535）
func parsePort(token string) (uint16, error) {
	p, err := strconv.ParseUint(token, 10, 16)
	if err != nil {
		return 0, err
	}
	return uint16(p), nil
}

// isHexToken 检查 token 是否全部由 hex 字符组成
func isHexToken(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
