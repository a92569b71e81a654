// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dapp 执行器驱动的接口以及公共的基础实现
package dapp

//执行器驱动只负责根据交易计算状态变化(Receipt)，
//真正写入数据库、回滚都由外层的 executor 完成

import (
	"github.com/33cn/coinflip/account"
	dbm "github.com/33cn/coinflip/common/db"
	log "github.com/33cn/coinflip/common/log"
	"github.com/33cn/coinflip/types"
)

var blog = log.New("module", "execs.base")

//Driver 执行器驱动
type Driver interface {
	SetStateDB(dbm.KV)
	GetStateDB() dbm.KV
	SetLocalDB(dbm.KVDB)
	GetLocalDB() dbm.KVDB
	GetCoinsAccount() *account.DB
	//驱动的名字，这个名称是固定的
	GetDriverName() string
	//执行器的名称
	GetName() string
	SetName(string)
	SetEnv(height, blocktime int64)
	//子配置，json 格式
	SetConfig(sub []byte) error
	Allow(tx *types.Transaction, index int) error
	CheckTx(tx *types.Transaction, index int) error
	Exec(tx *types.Transaction, index int) (*types.Receipt, error)
	ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error)
	Query(funcName string, params []byte) (interface{}, error)
}

//DriverBase 驱动的公共部分，具体的执行器嵌入它，并通过 SetChild 设置自己
type DriverBase struct {
	statedb      dbm.KV
	localdb      dbm.KVDB
	coinsaccount *account.DB
	height       int64
	blocktime    int64
	name         string
	child        Driver
}

//SetChild 设置具体的执行器
func (d *DriverBase) SetChild(e Driver) {
	d.child = e
}

//SetEnv 设置当前区块的高度和时间
func (d *DriverBase) SetEnv(height, blocktime int64) {
	d.height = height
	d.blocktime = blocktime
}

//GetHeight 当前高度
func (d *DriverBase) GetHeight() int64 {
	return d.height
}

//GetBlockTime 当前区块时间
func (d *DriverBase) GetBlockTime() int64 {
	return d.blocktime
}

//SetStateDB 设置状态数据库，主币账户跟着一起切换
func (d *DriverBase) SetStateDB(db dbm.KV) {
	if d.coinsaccount == nil {
		d.coinsaccount = account.NewCoinsAccount(db)
	}
	d.statedb = db
	d.coinsaccount.SetDB(db)
}

//GetStateDB 状态数据库
func (d *DriverBase) GetStateDB() dbm.KV {
	return d.statedb
}

//SetLocalDB 设置本地数据库
func (d *DriverBase) SetLocalDB(db dbm.KVDB) {
	d.localdb = db
}

//GetLocalDB 本地数据库
func (d *DriverBase) GetLocalDB() dbm.KVDB {
	return d.localdb
}

//GetCoinsAccount 主币账户
func (d *DriverBase) GetCoinsAccount() *account.DB {
	if d.coinsaccount == nil {
		d.coinsaccount = account.NewCoinsAccount(d.statedb)
	}
	return d.coinsaccount
}

//GetName 执行器名称，没有设置的时候就是驱动名称
func (d *DriverBase) GetName() string {
	if d.name == "" {
		return d.child.GetDriverName()
	}
	return d.name
}

//SetName set name
func (d *DriverBase) SetName(name string) {
	d.name = name
}

//SetConfig 默认没有配置
func (d *DriverBase) SetConfig(sub []byte) error {
	return nil
}

//CheckTx 默认的检查
func (d *DriverBase) CheckTx(tx *types.Transaction, index int) error {
	return tx.Check()
}

//Exec 默认不支持任何 action
func (d *DriverBase) Exec(tx *types.Transaction, index int) (*types.Receipt, error) {
	return nil, types.ErrActionNotSupport
}

//ExecLocal 默认不建立任何索引
func (d *DriverBase) ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	return &types.LocalDBSet{}, nil
}

//Query 默认不支持查询
func (d *DriverBase) Query(funcName string, params []byte) (interface{}, error) {
	blog.Debug("Query", "driver", d.child.GetDriverName(), "func", funcName)
	return nil, types.ErrQueryNotSupport
}
