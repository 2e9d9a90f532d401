// Package main 提供 enode 命令行工具
//
// 解析并规范化 enode URI，或将一组地址打包为引导票据：
//
//	enode [选项] <uri> [<uri>...]
//	enode -ticket <uri> [<uri>...]          # 生成票据
//	enode enodes://...                      # 解码票据
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	logging "github.com/dep2p/log"

	"github.com/dep2p/go-enode"
)

var logger = logging.Logger("enode/cmd")

var (
	jsonOut = flag.Bool("json", false, "以 JSON 输出解析结果")
	ticket  = flag.Bool("ticket", false, "将所有输入地址打包为引导票据")
)

// uriFields JSON 输出结构
type uriFields struct {
	ID      string `json:"id"`
	Host    string `json:"host"`
	TCPPort uint16 `json:"tcp_port"`
	UDPPort uint16 `json:"udp_port"`
	URI     string `json:"uri"`
}

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "用法: enode [选项] <uri> [<uri>...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if *ticket {
		os.Exit(runTicket(args))
	}
	os.Exit(runParse(args))
}

// runParse 解析并输出每条输入
func runParse(args []string) int {
	code := 0
	for _, arg := range args {
		// 票据输入：解码后展开为地址列表
		if strings.HasPrefix(strings.TrimSpace(arg), enode.TicketPrefix) {
			t, err := enode.DecodeBootstrapTicket(arg)
			if err != nil {
				logger.Errorf("解码票据失败: %v", err)
				code = 1
				continue
			}
			for _, s := range t.URIs {
				if err := printURI(s); err != nil {
					code = 1
				}
			}
			continue
		}

		if err := printURI(arg); err != nil {
			code = 1
		}
	}
	return code
}

func printURI(raw string) error {
	uri, err := enode.ParseNodeURI(raw)
	if err != nil {
		logger.Errorf("解析失败: %q: %v", raw, err)
		return err
	}

	if *jsonOut {
		out, err := json.Marshal(uriFields{
			ID:      uri.ID().String(),
			Host:    uri.Host(),
			TCPPort: uri.TCPPort(),
			UDPPort: uri.UDPPort(),
			URI:     uri.String(),
		})
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println(uri.String())
	return nil
}

// runTicket 将全部输入打包为一张票据
func runTicket(args []string) int {
	uris, err := enode.ParseNodeURIs(args)
	if err != nil {
		logger.Errorf("部分地址解析失败: %v", err)
		return 1
	}

	t := enode.NewBootstrapTicket(uris)
	encoded, err := t.Encode()
	if err != nil {
		logger.Errorf("编码票据失败: %v", err)
		return 1
	}

	fmt.Println(encoded)
	return 0
}
