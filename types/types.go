// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"

	"github.com/33cn/coinflip/common/address"
)

//KeyValue 状态变化，Value 为 nil 表示删除
type KeyValue struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

//ReceiptLog 执行日志
type ReceiptLog struct {
	Ty  int32  `json:"ty"`
	Log []byte `json:"log"`
}

//Receipt 一次成功执行产生的状态变化与日志
type Receipt struct {
	Ty   int32         `json:"ty"`
	KV   []*KeyValue   `json:"kv"`
	Logs []*ReceiptLog `json:"logs"`
}

//ReceiptData ExecLocal 使用的收据，不带 KV
type ReceiptData struct {
	Ty   int32         `json:"ty"`
	Logs []*ReceiptLog `json:"logs"`
}

//LocalDBSet 本地数据库的变化
type LocalDBSet struct {
	KV []*KeyValue `json:"kv"`
}

//GetTy ty
func (r *ReceiptData) GetTy() int32 {
	if r == nil {
		return 0
	}
	return r.Ty
}

//ToData Receipt -> ReceiptData
func (r *Receipt) ToData() *ReceiptData {
	return &ReceiptData{Ty: r.Ty, Logs: r.Logs}
}

//Account 账户
type Account struct {
	Addr    address.Address `json:"addr"`
	Balance uint64          `json:"balance"`
}

//ReceiptAccountTransfer 账户余额变化日志
type ReceiptAccountTransfer struct {
	Prev    *Account `json:"prev"`
	Current *Account `json:"current"`
}

//Encode 状态与日志统一使用 json 编码
func Encode(data interface{}) []byte {
	b, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	return b
}

//Decode 解码
func Decode(data []byte, msg interface{}) error {
	if err := json.Unmarshal(data, msg); err != nil {
		return ErrDecode
	}
	return nil
}

//MustDecode 解码失败直接 panic，用于配置
func MustDecode(data []byte, v interface{}) {
	if data == nil {
		return
	}
	err := json.Unmarshal(data, v)
	if err != nil {
		panic(err)
	}
}

//CheckAmount 检查金额
func CheckAmount(amount uint64) bool {
	return amount > 0 && amount < MaxCoin
}

//MergeReceipt 合并收据
func MergeReceipt(receipt1, receipt2 *Receipt) *Receipt {
	if receipt2 != nil {
		receipt1.KV = append(receipt1.KV, receipt2.KV...)
		receipt1.Logs = append(receipt1.Logs, receipt2.Logs...)
	}
	return receipt1
}

//TxResult 交易的执行结果，执行成功后写入本地数据库
type TxResult struct {
	Height    int64        `json:"height"`
	Index     int32        `json:"index"`
	BlockTime int64        `json:"blockTime"`
	Hash      []byte       `json:"hash"`
	Tx        *Transaction `json:"tx"`
	Receipt   *ReceiptData `json:"receipt"`
}
