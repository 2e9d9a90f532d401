package enode

import (
	"errors"
	"fmt"
)

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// URI 解析错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrInvalidURI URI 不符合 enode 语法
	ErrInvalidURI = errors.New("invalid node URI format")

	// ErrInvalidNodeID 无效的节点 ID（非 hex 或长度错误）
	ErrInvalidNodeID = errors.New("invalid node ID")

	// ErrInvalidTCPPort TCP 端口无效（缺失、非数字或超出 0-65535）
	ErrInvalidTCPPort = errors.New("invalid TCP port")

	// ErrInvalidUDPPort UDP 发现端口无效（非数字或超出 0-65535）
	ErrInvalidUDPPort = errors.New("invalid UDP discovery port")

	// ────────────────────────────────────────────────────────────────────────
	// 地址簿 / 票据错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNilURI 空的 NodeURI
	ErrNilURI = errors.New("nil node URI")

	// ErrInvalidTicket 无效的引导票据
	ErrInvalidTicket = errors.New("invalid bootstrap ticket")
)

// NodeIDLengthError 节点 ID 字节长度错误
//
// 节点 ID 的 hex 解码结果必须恰好为 NodeIDSize 字节，
// 错误消息同时给出期望与实际字节数。
type NodeIDLengthError struct {
	// Expected 期望的字节数
	Expected int

	// Actual 实际解码出的字节数
	Actual int
}

func (e *NodeIDLengthError) Error() string {
	return fmt.Sprintf("invalid node ID length: expected %d bytes, got %d bytes", e.Expected, e.Actual)
}

// Unwrap 使 errors.Is(err, ErrInvalidNodeID) 成立
func (e *NodeIDLengthError) Unwrap() error {
	return ErrInvalidNodeID
}
