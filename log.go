package enode

import (
	logging "github.com/dep2p/log"
)

// 包级别日志实例
var log = logging.Logger("enode")
