package enode

import (
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ============================================================================
//                              NodeID - 节点标识
// ============================================================================

// NodeIDSize 节点 ID 的字节长度
//
// 节点 ID 是 secp256k1 公钥的未压缩坐标（X || Y，不含 0x04 前缀），
// 因此固定为 64 字节。
const NodeIDSize = 64

// NodeID 节点唯一标识符
//
// 外部表示格式：
//   - String(): 小写 hex 编码（URI 中的规范形式）
//   - ShortString(): hex 前缀（日志简短标识）
type NodeID [NodeIDSize]byte

// EmptyNodeID 空节点ID
var EmptyNodeID NodeID

// String 返回 NodeID 的小写 hex 字符串表示
//
// 这是 NodeID 在 enode URI 中的规范外部表示。
func (id NodeID) String() string {
	return hex.EncodeToString(id[:])
}

// ShortString 返回 NodeID 的短字符串表示
//
// 格式：hex 前 8 个字符，用于日志中的简短标识。
func (id NodeID) ShortString() string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// Bytes 返回 NodeID 的字节切片
func (id NodeID) Bytes() []byte {
	return id[:]
}

// Equal 比较两个 NodeID 是否相等
func (id NodeID) Equal(other NodeID) bool {
	return id == other
}

// IsEmpty 检查 NodeID 是否为空
func (id NodeID) IsEmpty() bool {
	return id == EmptyNodeID
}

// NodeIDFromBytes 从字节切片创建 NodeID
//
// 长度不等于 NodeIDSize 时返回 *NodeIDLengthError。
func NodeIDFromBytes(b []byte) (NodeID, error) {
	if len(b) != NodeIDSize {
		return EmptyNodeID, &NodeIDLengthError{Expected: NodeIDSize, Actual: len(b)}
	}
	var id NodeID
	copy(id[:], b)
	return id, nil
}

// ParseNodeID 从 hex 字符串解析 NodeID
//
// 输入的 hex 大小写不敏感；解码后长度必须恰好为 NodeIDSize 字节。
func ParseNodeID(s string) (NodeID, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return EmptyNodeID, fmt.Errorf("%w: invalid hex string", ErrInvalidNodeID)
	}
	return NodeIDFromBytes(b)
}

// ============================================================================
//                              公钥转换
// ============================================================================

// NodeIDFromPubkey 从 secp256k1 公钥派生 NodeID
//
// 取公钥未压缩序列化结果（65 字节）去掉 0x04 前缀后的 64 字节。
func NodeIDFromPubkey(pub *secp256k1.PublicKey) NodeID {
	var id NodeID
	copy(id[:], pub.SerializeUncompressed()[1:])
	return id
}

// Pubkey 将 NodeID 还原为 secp256k1 公钥
//
// 校验 NodeID 是否为曲线上的有效点，无效时返回错误。
func (id NodeID) Pubkey() (*secp256k1.PublicKey, error) {
	buf := make([]byte, 0, NodeIDSize+1)
	buf = append(buf, 0x04)
	buf = append(buf, id[:]...)

	pub, err := secp256k1.ParsePubKey(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: not a valid secp256k1 point: %v", ErrInvalidNodeID, err)
	}
	return pub, nil
}
