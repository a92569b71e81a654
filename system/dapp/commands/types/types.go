// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types commands中结构体定义
package types

import (
	"encoding/json"
)

// AccountResult defines account result command
type AccountResult struct {
	Addr    string `json:"addr,omitempty"`
	Label   string `json:"label,omitempty"`
	Balance string `json:"balance"`
}

// HeightResult 当前高度
type HeightResult struct {
	Height int64 `json:"height"`
}

// ReceiptLogResult 便于阅读的日志
type ReceiptLogResult struct {
	Ty   int32           `json:"ty"`
	Name string          `json:"name,omitempty"`
	Log  json.RawMessage `json:"log,omitempty"`
}

// TxResult defines txresult command
type TxResult struct {
	Hash      string              `json:"hash"`
	Height    int64               `json:"height"`
	Index     int32               `json:"index"`
	BlockTime int64               `json:"blockTime"`
	Execer    string              `json:"execer"`
	From      string              `json:"from"`
	Nonce     int64               `json:"nonce"`
	Payload   json.RawMessage     `json:"payload"`
	Ty        int32               `json:"ty"`
	Logs      []*ReceiptLogResult `json:"logs,omitempty"`
	// 命令行计算出来的附加信息，比如新游戏的地址
	Extra interface{} `json:"extra,omitempty"`
}
