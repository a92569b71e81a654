// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/coinflip/common"
	"github.com/33cn/coinflip/common/address"
)

//Transaction 交易，From 由外部运行时完成签名验证
type Transaction struct {
	Execer  string          `json:"execer"`
	From    address.Address `json:"from"`
	Payload []byte          `json:"payload"`
	Nonce   int64           `json:"nonce"`
}

//Hash 交易哈希
func (tx *Transaction) Hash() []byte {
	return common.Sha256(Encode(tx))
}

//Check 基本检查
func (tx *Transaction) Check() error {
	if tx == nil || tx.Execer == "" || len(tx.Payload) == 0 {
		return ErrEmptyTx
	}
	if tx.From.IsZero() {
		return ErrInvalidAddress
	}
	return nil
}
