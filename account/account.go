// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package account 实现账户余额的读写以及转账
*/
package account

//package for account manger
//1. load from db
//2. save to db
//3. KVSet
//4. Transfer
//5. Deposit  个人账户 -> 托管账户 (托管账户在单独的 DB 里记账)
//6. Payout   托管账户 -> 个人账户
//7. Genesis

import (
	"strings"

	"github.com/33cn/coinflip/common/address"
	dbm "github.com/33cn/coinflip/common/db"
	log "github.com/33cn/coinflip/common/log"
	"github.com/33cn/coinflip/types"
)

var alog = log.New("module", "account")

// DB for account
type DB struct {
	db               dbm.KV
	accountKeyPerfix []byte
	execer           string
	symbol           string
}

//NewCoinsAccount 主币账户
func NewCoinsAccount(db dbm.KV) *DB {
	acc := newAccountDB(types.StatePrefix + types.CoinsX + "-bty-")
	acc.execer = types.CoinsX
	acc.symbol = "bty"
	return acc.SetDB(db)
}

//NewAccountDB 其他资产的账户
func NewAccountDB(execer string, symbol string, db dbm.KV) (*DB, error) {
	//如果execer 和  symbol 中存在 "-", 那么创建失败
	if strings.ContainsRune(execer, '-') || strings.ContainsRune(symbol, '-') {
		return nil, types.ErrExecNameNotAllow
	}
	accDB := newAccountDB(types.StatePrefix + execer + "-" + symbol + "-")
	accDB.execer = execer
	accDB.symbol = symbol
	accDB.SetDB(db)
	return accDB, nil
}

func newAccountDB(prefix string) *DB {
	acc := &DB{}
	acc.accountKeyPerfix = []byte(prefix)
	return acc
}

//SetDB 设置读写的数据库，执行器每个交易都会重新设置
func (acc *DB) SetDB(db dbm.KV) *DB {
	acc.db = db
	return acc
}

//LoadAccount 读取账户，不存在时返回余额为0的账户
func (acc *DB) LoadAccount(addr address.Address) *types.Account {
	value, err := acc.db.Get(acc.AccountKey(addr))
	if err != nil {
		return &types.Account{Addr: addr}
	}
	var acc1 types.Account
	err = types.Decode(value, &acc1)
	if err != nil {
		panic(err) //数据库已经损坏
	}
	return &acc1
}

//CheckTransfer 检查余额是否足够
func (acc *DB) CheckTransfer(from, to address.Address, amount uint64) error {
	if !types.CheckAmount(amount) {
		return types.ErrAmount
	}
	if from.Equal(to) {
		return types.ErrSendSameToRecv
	}
	accFrom := acc.LoadAccount(from)
	if _, err := safeSub(accFrom.Balance, amount); err != nil {
		return err
	}
	accTo := acc.LoadAccount(to)
	if _, err := safeAdd(accTo.Balance, amount); err != nil {
		return err
	}
	return nil
}

//Transfer 普通转账
func (acc *DB) Transfer(from, to address.Address, amount uint64) (*types.Receipt, error) {
	return move(acc, acc, from, to, amount, types.TyLogTransfer)
}

//Deposit 个人账户(acc) -> 托管账户(vaults)，托管账户单独记账
func (acc *DB) Deposit(vaults *DB, from, vault address.Address, amount uint64) (*types.Receipt, error) {
	return move(acc, vaults, from, vault, amount, types.TyLogDeposit)
}

//Payout 托管账户(vaults) -> 个人账户(acc)
func (acc *DB) Payout(vaults *DB, vault, to address.Address, amount uint64) (*types.Receipt, error) {
	return move(vaults, acc, vault, to, amount, types.TyLogPayout)
}

// 两边的余额先全部算好再写入，任何一边失败都不会改变状态
func move(fromDB, toDB *DB, from, to address.Address, amount uint64, ty int32) (*types.Receipt, error) {
	if !types.CheckAmount(amount) {
		return nil, types.ErrAmount
	}
	if fromDB == toDB && from.Equal(to) {
		return nil, types.ErrSendSameToRecv
	}
	accFrom := fromDB.LoadAccount(from)
	accTo := toDB.LoadAccount(to)
	fromBalance, err := safeSub(accFrom.Balance, amount)
	if err != nil {
		alog.Error("move", "from", from, "symbol", fromDB.Symbol(), "balance", accFrom.Balance, "amount", amount, "err", err)
		return nil, err
	}
	toBalance, err := safeAdd(accTo.Balance, amount)
	if err != nil {
		alog.Error("move", "to", to, "symbol", toDB.Symbol(), "balance", accTo.Balance, "amount", amount, "err", err)
		return nil, err
	}
	copyfrom := *accFrom
	copyto := *accTo
	accFrom.Balance = fromBalance
	accTo.Balance = toBalance

	receiptBalanceFrom := &types.ReceiptAccountTransfer{
		Prev:    &copyfrom,
		Current: accFrom,
	}
	receiptBalanceTo := &types.ReceiptAccountTransfer{
		Prev:    &copyto,
		Current: accTo,
	}
	fromDB.SaveAccount(accFrom)
	toDB.SaveAccount(accTo)
	kv := fromDB.GetKVSet(accFrom)
	kv = append(kv, toDB.GetKVSet(accTo)...)
	return transferReceipt(ty, kv, receiptBalanceFrom, receiptBalanceTo), nil
}

func transferReceipt(ty int32, kv []*types.KeyValue, receiptFrom, receiptTo *types.ReceiptAccountTransfer) *types.Receipt {
	log1 := &types.ReceiptLog{
		Ty:  ty,
		Log: types.Encode(receiptFrom),
	}
	log2 := &types.ReceiptLog{
		Ty:  ty,
		Log: types.Encode(receiptTo),
	}
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   kv,
		Logs: []*types.ReceiptLog{log1, log2},
	}
}

//SaveAccount 写入账户
func (acc *DB) SaveAccount(acc1 *types.Account) {
	set := acc.GetKVSet(acc1)
	for i := 0; i < len(set); i++ {
		err := acc.db.Set(set[i].Key, set[i].Value)
		if err != nil {
			panic(err)
		}
	}
}

//GetKVSet 将账户数据转为数据库存储kv
func (acc *DB) GetKVSet(acc1 *types.Account) (kvset []*types.KeyValue) {
	value := types.Encode(acc1)
	kvset = append(kvset, &types.KeyValue{
		Key:   acc.AccountKey(acc1.Addr),
		Value: value,
	})
	return kvset
}

//AccountKey 账户在状态数据库中的 key
func (acc *DB) AccountKey(addr address.Address) (key []byte) {
	s := addr.String()
	key = make([]byte, 0, len(acc.accountKeyPerfix)+len(s))
	key = append(key, acc.accountKeyPerfix...)
	key = append(key, []byte(s)...)
	return key
}

//GetBalance 查询余额
func (acc *DB) GetBalance(addr address.Address) uint64 {
	return acc.LoadAccount(addr).Balance
}

//Symbol 资产符号
func (acc *DB) Symbol() string {
	return acc.symbol
}

func safeAdd(balance, amount uint64) (uint64, error) {
	if balance+amount < amount || balance+amount > types.MaxTokenBalance {
		return balance, types.ErrAmount
	}
	return balance + amount, nil
}

func safeSub(balance, amount uint64) (uint64, error) {
	if balance < amount {
		return balance, types.ErrNoBalance
	}
	return balance - amount, nil
}
