// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor 执行交易，提交状态，并建立本地查询索引
package executor

//每个交易都在一个单独的区块(高度 height+1)里执行:
//1. 加载驱动，在 StateDB 的内存事务中执行，出错则回滚，不留下任何修改
//2. 成功后 receipt.KV 与 ExecLocal 产生的索引一起批量写入数据库
//3. 执行和提交都在同一把锁里，不同游戏共享的账户也不会被并发修改

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/33cn/coinflip/account"
	"github.com/33cn/coinflip/common"
	"github.com/33cn/coinflip/common/address"
	dbm "github.com/33cn/coinflip/common/db"
	clog "github.com/33cn/coinflip/common/log"
	"github.com/33cn/coinflip/metrics"
	drivers "github.com/33cn/coinflip/system/dapp"
	"github.com/33cn/coinflip/types"
	"github.com/pkg/errors"
)

var elog = clog.New("module", "execs")

var (
	heightKey   = []byte(types.LocalPrefix + "executor-height")
	txKeyPerfix = types.LocalPrefix + "executor-tx-"
)

// Executor 执行器
type Executor struct {
	mu     sync.RWMutex
	db     dbm.DB
	sub    map[string][]byte
	height int64
	//区块时间，测试的时候可以替换
	now func() time.Time
}

// New 在已经打开的数据库上创建执行器
func New(sub *types.ConfigSubModule, db dbm.DB) (*Executor, error) {
	exec := &Executor{db: db, now: time.Now}
	if sub != nil {
		exec.sub = sub.Exec
	}
	height, err := loadHeight(db)
	if err != nil {
		return nil, err
	}
	exec.height = height
	metrics.Gauge("height").Update(height)
	elog.Debug("New executor", "height", height, "drivers", drivers.DriverNames())
	return exec, nil
}

// Open 根据配置打开数据库并创建执行器
func Open(cfg *types.Config, sub *types.ConfigSubModule) (*Executor, error) {
	store := cfg.Store
	if store == nil {
		store = &types.Store{Name: "state", Driver: dbm.MemDBBackendStr}
	}
	db, err := dbm.NewDB(store.Name, store.Driver, store.DbPath, int(store.DbCache))
	if err != nil {
		return nil, errors.Wrap(err, "executor.Open")
	}
	exec, err := New(sub, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return exec, nil
}

func loadHeight(db dbm.DB) (int64, error) {
	value, err := db.Get(heightKey)
	if err == dbm.ErrNotFoundInDb || (err == nil && value == nil) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "loadHeight")
	}
	height, err := strconv.ParseInt(string(value), 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "loadHeight")
	}
	return height, nil
}

// Close 关闭数据库
func (exec *Executor) Close() {
	exec.mu.Lock()
	defer exec.mu.Unlock()
	exec.db.Close()
}

// Height 当前高度，也就是逻辑时钟
func (exec *Executor) Height() int64 {
	exec.mu.RLock()
	defer exec.mu.RUnlock()
	return exec.height
}

// Advance 不带交易地推进 n 个区块
func (exec *Executor) Advance(n int64) (int64, error) {
	exec.mu.Lock()
	defer exec.mu.Unlock()
	if n < 0 || exec.height > math.MaxInt64-n {
		return exec.height, types.ErrHeightOverflow
	}
	height := exec.height + n
	batch := exec.db.NewBatch(true)
	batch.Set(heightKey, []byte(strconv.FormatInt(height, 10)))
	if err := batch.Write(); err != nil {
		return exec.height, errors.Wrap(err, "Advance")
	}
	exec.height = height
	metrics.Gauge("height").Update(height)
	return height, nil
}

// Exec 执行一个交易，成功则在 height+1 的区块中提交
func (exec *Executor) Exec(tx *types.Transaction) (*types.TxResult, error) {
	exec.mu.Lock()
	defer exec.mu.Unlock()
	defer metrics.Timer("exec.time").UpdateSince(time.Now())

	if err := tx.Check(); err != nil {
		return nil, exec.fail(tx, err)
	}
	hash := tx.Hash()
	if _, err := exec.db.Get(txKey(hash)); err == nil {
		return nil, exec.fail(tx, types.ErrTxDup)
	}
	if exec.height == math.MaxInt64 {
		return nil, exec.fail(tx, types.ErrHeightOverflow)
	}
	height := exec.height + 1
	blocktime := exec.now().Unix()
	e := newExecutor(exec.db, exec.sub, height, blocktime)
	receipt, err := e.execTx(tx, 0)
	if err != nil {
		return nil, exec.fail(tx, err)
	}
	data := receipt.ToData()
	set, err := e.execLocalTx(tx, data, 0)
	if err != nil {
		return nil, exec.fail(tx, err)
	}
	result := &types.TxResult{
		Height:    height,
		Index:     0,
		BlockTime: blocktime,
		Hash:      hash,
		Tx:        tx,
		Receipt:   data,
	}
	batch := exec.db.NewBatch(true)
	writeKVs(batch, receipt.KV)
	writeKVs(batch, set.KV)
	batch.Set(txKey(hash), types.Encode(result))
	batch.Set(heightKey, []byte(strconv.FormatInt(height, 10)))
	if err := batch.Write(); err != nil {
		return nil, exec.fail(tx, errors.Wrap(err, "Exec batch write"))
	}
	exec.height = height
	metrics.Counter("exec." + tx.Execer + ".ok").Inc(1)
	metrics.Gauge("height").Update(height)
	elog.Info("Exec", "execer", tx.Execer, "height", height, "hash", common.ToHex(hash), "kvs", len(receipt.KV))
	return result, nil
}

func (exec *Executor) fail(tx *types.Transaction, err error) error {
	execer := "unknown"
	if tx != nil && tx.Execer != "" {
		execer = tx.Execer
	}
	metrics.Counter("exec." + execer + ".err").Inc(1)
	elog.Debug("Exec failed", "execer", execer, "err", err)
	return err
}

func writeKVs(batch dbm.Batch, kvs []*types.KeyValue) {
	for _, kv := range kvs {
		if kv.Value == nil {
			batch.Delete(kv.Key)
			continue
		}
		batch.Set(kv.Key, kv.Value)
	}
}

func txKey(hash []byte) []byte {
	return []byte(txKeyPerfix + common.ToHex(hash))
}

// GetTxResult 根据交易哈希查询执行结果
func (exec *Executor) GetTxResult(hash []byte) (*types.TxResult, error) {
	exec.mu.RLock()
	defer exec.mu.RUnlock()
	value, err := exec.db.Get(txKey(hash))
	if err != nil {
		return nil, types.ErrNotFound
	}
	var result types.TxResult
	if err := types.Decode(value, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Genesis 给地址发放初始资金，用于本地测试网络
// 只写主币账户，托管账户由合约单独记账，不受影响
func (exec *Executor) Genesis(addr address.Address, amount uint64) (*types.Receipt, error) {
	if addr.IsZero() {
		return nil, types.ErrInvalidAddress
	}
	receipt, err := exec.execCoins(func(acc *account.DB) (*types.Receipt, error) {
		return acc.GenesisInit(addr, amount)
	})
	if err != nil {
		return nil, err
	}
	elog.Info("Genesis", "addr", addr, "amount", amount)
	return receipt, nil
}

// Transfer 主币转账，用于本地测试网络
func (exec *Executor) Transfer(from, to address.Address, amount uint64) (*types.Receipt, error) {
	if from.IsZero() || to.IsZero() {
		return nil, types.ErrInvalidAddress
	}
	receipt, err := exec.execCoins(func(acc *account.DB) (*types.Receipt, error) {
		if err := acc.CheckTransfer(from, to, amount); err != nil {
			return nil, err
		}
		return acc.Transfer(from, to, amount)
	})
	if err != nil {
		return nil, err
	}
	elog.Info("Transfer", "from", from, "to", to, "amount", amount)
	return receipt, nil
}

//在当前高度直接修改主币账户并落盘，不生成交易
func (exec *Executor) execCoins(fn func(acc *account.DB) (*types.Receipt, error)) (*types.Receipt, error) {
	exec.mu.Lock()
	defer exec.mu.Unlock()
	state := NewStateDB(exec.db, exec.height)
	state.Begin()
	receipt, err := fn(account.NewCoinsAccount(state))
	if err != nil {
		state.Rollback()
		return nil, err
	}
	state.Commit()
	batch := exec.db.NewBatch(true)
	writeKVs(batch, receipt.KV)
	if err := batch.Write(); err != nil {
		return nil, errors.Wrap(err, "execCoins batch write")
	}
	return receipt, nil
}

// GetBalance 主币余额
func (exec *Executor) GetBalance(addr address.Address) uint64 {
	exec.mu.RLock()
	defer exec.mu.RUnlock()
	return account.NewCoinsAccount(NewStateDB(exec.db, exec.height)).GetBalance(addr)
}

// Query 调用驱动的查询接口
func (exec *Executor) Query(driver string, funcName string, params []byte) (interface{}, error) {
	exec.mu.RLock()
	defer exec.mu.RUnlock()
	d, err := drivers.LoadDriver(driver, -1)
	if err != nil {
		return nil, err
	}
	e := newExecutor(exec.db, exec.sub, exec.height, 0)
	if err := e.setEnv(d); err != nil {
		return nil, err
	}
	return d.Query(funcName, params)
}
