package enode

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ============================================================================
//                          BootstrapTicket
// ============================================================================

// TicketPrefix 引导票据的前缀
const TicketPrefix = "enodes://"

// maxTicketPayload 票据载荷长度上限（防止超长输入）
const maxTicketPayload = 2048

// BootstrapTicket 引导地址票据
//
// 将一组节点地址打包为单个可分享的字符串（聊天/二维码/配置文件），
// 便于带外分发引导节点列表。
type BootstrapTicket struct {
	// URIs 节点地址列表（enode URI 规范形式）
	URIs []string `json:"uris"`

	// Timestamp 生成时间（可选，用于过期检查）
	Timestamp int64 `json:"timestamp,omitempty"`
}

// NewBootstrapTicket 由已解析的节点地址创建票据
func NewBootstrapTicket(uris []*NodeURI) *BootstrapTicket {
	strs := make([]string, 0, len(uris))
	for _, uri := range uris {
		if uri == nil {
			continue
		}
		strs = append(strs, uri.String())
	}
	return &BootstrapTicket{
		URIs:      strs,
		Timestamp: time.Now().Unix(),
	}
}

// Encode 编码为字符串
//
// 格式：enodes://base64url(json(ticket))
func (t *BootstrapTicket) Encode() (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("marshal ticket: %w", err)
	}
	return TicketPrefix + base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeBootstrapTicket 从字符串解码引导票据
//
// 安全检查：
//   - 前缀与载荷长度验证
//   - Base64 / JSON 解码
//   - 逐条解析内含的 enode URI，丢弃无效条目并规范化有效条目
//   - 至少保留一条有效地址，否则整体拒绝
func DecodeBootstrapTicket(s string) (*BootstrapTicket, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidTicket)
	}

	if !strings.HasPrefix(s, TicketPrefix) {
		return nil, fmt.Errorf("%w: missing %s prefix", ErrInvalidTicket, TicketPrefix)
	}

	encoded := strings.TrimPrefix(s, TicketPrefix)
	if encoded == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidTicket)
	}
	if len(encoded) > maxTicketPayload {
		return nil, fmt.Errorf("%w: payload too long (%d > %d)", ErrInvalidTicket, len(encoded), maxTicketPayload)
	}

	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}

	var ticket BootstrapTicket
	if err := json.Unmarshal(data, &ticket); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}

	// 逐条校验并规范化，静默丢弃无效条目
	valid := make([]string, 0, len(ticket.URIs))
	for _, raw := range ticket.URIs {
		uri, err := ParseNodeURI(raw)
		if err != nil {
			log.Debugf("票据中的无效地址被丢弃: %q: %v", raw, err)
			continue
		}
		valid = append(valid, uri.String())
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: no valid node URI", ErrInvalidTicket)
	}
	ticket.URIs = valid

	return &ticket, nil
}

// NodeURIs 返回票据中的节点地址
//
// 解码得到的票据已完成校验，此处仅做字符串到值对象的转换。
func (t *BootstrapTicket) NodeURIs() ([]*NodeURI, error) {
	return ParseNodeURIs(t.URIs)
}

// IsExpired 检查票据是否过期
func (t *BootstrapTicket) IsExpired(maxAge time.Duration) bool {
	if t.Timestamp == 0 {
		return false // 无时间戳，不过期
	}
	return time.Since(time.Unix(t.Timestamp, 0)) > maxAge
}
