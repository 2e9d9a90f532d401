// Package enode 提供节点地址 URI 的解析、校验与规范化
//
// enode URI 是 P2P 网络中节点的文本标识。每条 URI 包含节点的公钥标识、
// 主机地址、TCP 监听端口，以及可选的独立 UDP 发现端口：
//
//	enode://<hex 节点ID>@<host>:<tcp端口>[?discport=<udp端口>]
//
// 示例：
//
//	enode://a1b2...c3d4@10.0.0.5:30303
//	enode://a1b2...c3d4@node.example.com:30303?discport=30301
//
// # 核心类型
//
//   - NodeURI: 不可变的地址值对象，解析自外部字符串或由字段直接构造
//   - NodeID: 64 字节的公钥派生节点标识（hex 编码）
//   - NodeBook: 有界的、并发安全的节点地址簿（LRU + TTL）
//   - BootstrapTicket: 可分享的引导地址票据（enodes://base64url 格式）
//
// # 快速开始
//
//	uri, err := enode.ParseNodeURI("enode://a1b2...@10.0.0.5:30303")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(uri.ID().ShortString(), uri.Host(), uri.TCPPort())
//
//	// 规范化输出（scheme 与 hex 均为小写，无多余空白）
//	fmt.Println(uri.String())
//
// # 信任边界
//
// 两类构造入口有意保持不同的校验强度：
//
//   - ParseNodeURI / ParseURL: 解析不可信的外部输入，完整校验语法、
//     节点 ID 长度与端口范围，任一违例立即返回具体错误
//   - NewNodeURI / NewNodeURIWithDiscPort: 内部已校验数据的直接构造，
//     不做二次校验，仅生成规范字符串
//
// 解析过程无 I/O、无共享可变状态；NodeURI 构造后不可变，
// 可在并发读取者之间自由共享。
package enode
