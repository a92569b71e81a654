// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
	"math/big"
	"math/rand"
	"strings"
	"time"

	"github.com/33cn/coinflip/common"
	"github.com/33cn/coinflip/common/address"
	"github.com/33cn/coinflip/types"
	"github.com/shopspring/decimal"
)

// CoinPrecision 主币精度
const CoinPrecision = types.Coin

var (
	coinDecimal = decimal.New(int64(CoinPrecision), 0)
	maxDecimal  = decimal.New(int64(types.MaxCoin), 0)
)

// 日志类型名，dapp 可以注册自己的
var logNames = map[int32]string{
	types.TyLogErr:      "LogErr",
	types.TyLogTransfer: "LogTransfer",
	types.TyLogGenesis:  "LogGenesis",
	types.TyLogDeposit:  "LogDeposit",
	types.TyLogPayout:   "LogPayout",
}

// RegisterLogName 注册日志类型的名字
func RegisterLogName(ty int32, name string) {
	logNames[ty] = name
}

// ParseCoins "1.5" -> 150000000，精度超过 1e-8 或者金额越界都返回 ErrAmount
func ParseCoins(s string) (uint64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, types.ErrAmount
	}
	amount := d.Mul(coinDecimal)
	if !amount.Equal(amount.Truncate(0)) || amount.Sign() <= 0 {
		return 0, types.ErrAmount
	}
	if amount.GreaterThanOrEqual(maxDecimal) {
		return 0, types.ErrAmount
	}
	return uint64(amount.IntPart()), nil
}

// FormatCoins 150000000 -> "1.5000"
func FormatCoins(amount uint64) string {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(amount), 0)
	return d.Div(coinDecimal).StringFixed(4)
}

// ParseAddress 解析 base58 地址，不是合法地址的时候当作名字，推导出本地测试身份
func ParseAddress(s string) (address.Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return address.Zero, types.ErrInvalidAddress
	}
	if addr, err := address.NewAddrFromString(s); err == nil {
		return addr, nil
	}
	return address.FromLabel(s), nil
}

// DecodeAccount 账户转换成便于阅读的格式
func DecodeAccount(acc *types.Account, label string) *AccountResult {
	return &AccountResult{
		Addr:    acc.Addr.String(),
		Label:   label,
		Balance: FormatCoins(acc.Balance),
	}
}

// DecodeTxResult 交易执行结果转换成便于阅读的格式
func DecodeTxResult(res *types.TxResult) *TxResult {
	result := &TxResult{
		Hash:      common.ToHex(res.Hash),
		Height:    res.Height,
		Index:     res.Index,
		BlockTime: res.BlockTime,
		Ty:        res.Receipt.GetTy(),
	}
	if res.Tx != nil {
		result.Execer = res.Tx.Execer
		result.From = res.Tx.From.String()
		result.Nonce = res.Tx.Nonce
		result.Payload = rawJSON(res.Tx.Payload)
	}
	if res.Receipt != nil {
		for _, l := range res.Receipt.Logs {
			result.Logs = append(result.Logs, &ReceiptLogResult{Ty: l.Ty, Name: logNames[l.Ty], Log: rawJSON(l.Log)})
		}
	}
	return result
}

func rawJSON(data []byte) json.RawMessage {
	if len(data) == 0 || !json.Valid(data) {
		return nil
	}
	return json.RawMessage(data)
}

// Nonce 随机 nonce，同样内容的交易可以重复发送
func Nonce() int64 {
	return rand.New(rand.NewSource(time.Now().UnixNano())).Int63()
}
