// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"bytes"

	dbm "github.com/33cn/coinflip/common/db"
	drivers "github.com/33cn/coinflip/system/dapp"
	"github.com/33cn/coinflip/types"
	"github.com/pkg/errors"
)

//执行环境：一个区块(在这里一个交易一个区块)对应一个 executor
type executor struct {
	stateDB   *StateDB
	localDB   *LocalDB
	height    int64
	blocktime int64
	sub       map[string][]byte
}

func newExecutor(db dbm.DB, sub map[string][]byte, height, blocktime int64) *executor {
	return &executor{
		stateDB:   NewStateDB(db, height),
		localDB:   NewLocalDB(db),
		height:    height,
		blocktime: blocktime,
		sub:       sub,
	}
}

func (e *executor) setEnv(exec drivers.Driver) error {
	exec.SetStateDB(e.stateDB)
	exec.SetLocalDB(e.localDB)
	exec.SetEnv(e.height, e.blocktime)
	return exec.SetConfig(e.sub[exec.GetDriverName()])
}

func (e *executor) loadDriver(tx *types.Transaction, index int) (drivers.Driver, error) {
	exec, err := drivers.LoadDriverAllow(tx, index, e.height)
	if err != nil {
		return nil, err
	}
	if err := e.setEnv(exec); err != nil {
		return nil, err
	}
	return exec, nil
}

func (e *executor) begin() {
	e.stateDB.Begin()
}

func (e *executor) commit() {
	e.stateDB.Commit()
}

func (e *executor) rollback() {
	e.stateDB.Rollback()
}

//execTx 执行交易，出错时回滚这个交易的所有修改
func (e *executor) execTx(tx *types.Transaction, index int) (receipt *types.Receipt, err error) {
	exec, err := e.loadDriver(tx, index)
	if err != nil {
		return nil, err
	}
	if err := exec.CheckTx(tx, index); err != nil {
		return nil, err
	}
	e.begin()
	defer func() {
		if r := recover(); r != nil {
			elog.Error("execTx panic", "execer", tx.Execer, "info", r)
			e.rollback()
			receipt = nil
			err = errors.Errorf("exec panic: %v", r)
		}
	}()
	receipt, err = exec.Exec(tx, index)
	if err != nil {
		elog.Debug("exec tx error", "err", err, "exec", tx.Execer)
		e.rollback()
		return nil, err
	}
	if receipt == nil {
		e.rollback()
		return nil, types.ErrActionNotSupport
	}
	//需要检查两个东西:
	//1. statedb 中 Set的 key 必须是 在 receipt.KV 这个集合中
	//2. receipt.KV 中的 key, 必须符合权限控制要求
	if err := e.checkKV(e.stateDB.GetSetKeys(), receipt.KV); err != nil {
		e.rollback()
		return nil, err
	}
	if err := e.checkKeyAllow(tx, receipt.KV); err != nil {
		e.rollback()
		return nil, err
	}
	e.commit()
	return receipt, nil
}

func (e *executor) checkKV(memset []string, kvs []*types.KeyValue) error {
	keys := make(map[string]bool)
	for _, kv := range kvs {
		keys[string(kv.Key)] = true
	}
	for _, key := range memset {
		if _, ok := keys[key]; !ok {
			elog.Error("err memset key", "key", key)
			//非法的receipt，交易执行失败
			return types.ErrNotAllowMemSetKey
		}
	}
	return nil
}

func (e *executor) checkKeyAllow(tx *types.Transaction, kvs []*types.KeyValue) error {
	for _, kv := range kvs {
		if !isAllowExec(kv.Key, tx.Execer) {
			elog.Error("key not allow", "key", string(kv.Key), "execer", tx.Execer)
			return types.ErrNotAllowKey
		}
	}
	return nil
}

//合约只能修改自己的状态和 coins 账户
func isAllowExec(key []byte, txexecer string) bool {
	keyexecer, err := findExecer(key, types.StatePrefix)
	if err != nil {
		return false
	}
	return keyexecer == txexecer || keyexecer == types.CoinsX
}

func findExecer(key []byte, prefix string) (execer string, err error) {
	if !bytes.HasPrefix(key, []byte(prefix)) {
		return "", types.ErrNotAllowKey
	}
	rest := key[len(prefix):]
	i := bytes.IndexByte(rest, '-')
	if i <= 0 {
		return "", types.ErrNotAllowKey
	}
	return string(rest[:i]), nil
}

//execLocalTx 建立查询索引，结果只写入本地数据库
func (e *executor) execLocalTx(tx *types.Transaction, r *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	exec, err := e.loadDriver(tx, index)
	if err != nil {
		return nil, err
	}
	set, err := exec.ExecLocal(tx, r, index)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return &types.LocalDBSet{}, nil
	}
	for _, kv := range set.KV {
		keyexecer, err := findExecer(kv.Key, types.LocalPrefix)
		if err != nil || keyexecer != tx.Execer {
			elog.Error("local key not allow", "key", string(kv.Key), "execer", tx.Execer)
			return nil, types.ErrNotAllowKey
		}
		if err := e.localDB.Set(kv.Key, kv.Value); err != nil {
			return nil, err
		}
	}
	return set, nil
}
