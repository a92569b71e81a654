// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/33cn/coinflip/common/address"
	dbm "github.com/33cn/coinflip/common/db"
	drivers "github.com/33cn/coinflip/system/dapp"
	"github.com/33cn/coinflip/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	counterKey   = []byte("mavl-counter-value")
	counterLocal = []byte("LODB-counter-last")
	errCounter   = errors.New("ErrCounter")
	alice        = address.FromLabel("alice")
	bob          = address.FromLabel("bob")
)

type counterAction struct {
	Op     string          `json:"op"`
	To     address.Address `json:"to"`
	Amount uint64          `json:"amount"`
}

type counter struct {
	drivers.DriverBase
}

func newCounter() drivers.Driver {
	c := &counter{}
	c.SetChild(c)
	return c
}

func init() {
	drivers.Register("counter", newCounter, 0)
}

func (c *counter) GetDriverName() string {
	return "counter"
}

func (c *counter) value() int64 {
	v, err := c.GetStateDB().Get(counterKey)
	if err != nil {
		return 0
	}
	n, _ := strconv.ParseInt(string(v), 10, 64)
	return n
}

func (c *counter) incr() *types.Receipt {
	value := []byte(strconv.FormatInt(c.value()+1, 10))
	c.GetStateDB().Set(counterKey, value)
	return &types.Receipt{Ty: types.ExecOk, KV: []*types.KeyValue{{Key: counterKey, Value: value}}}
}

func (c *counter) Exec(tx *types.Transaction, index int) (*types.Receipt, error) {
	var action counterAction
	if err := types.Decode(tx.Payload, &action); err != nil {
		return nil, err
	}
	switch action.Op {
	case "add":
		return c.incr(), nil
	case "pay":
		receipt, err := c.GetCoinsAccount().Transfer(tx.From, action.To, action.Amount)
		if err != nil {
			return nil, err
		}
		return types.MergeReceipt(receipt, c.incr()), nil
	case "fail":
		if _, err := c.GetCoinsAccount().Transfer(tx.From, action.To, action.Amount); err != nil {
			return nil, err
		}
		c.incr()
		return nil, errCounter
	case "memset":
		c.GetStateDB().Set([]byte("mavl-counter-hidden"), []byte("1"))
		return c.incr(), nil
	case "badkey":
		receipt := c.incr()
		receipt.KV = append(receipt.KV, &types.KeyValue{Key: []byte("mavl-other-x"), Value: []byte("1")})
		return receipt, nil
	case "panic":
		c.incr()
		panic("counter panic")
	}
	return nil, types.ErrActionNotSupport
}

func (c *counter) ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	return &types.LocalDBSet{KV: []*types.KeyValue{{Key: counterLocal, Value: []byte(strconv.FormatInt(c.GetHeight(), 10))}}}, nil
}

func (c *counter) Query(funcName string, params []byte) (interface{}, error) {
	if funcName == "Value" {
		return c.value(), nil
	}
	return nil, types.ErrQueryNotSupport
}

var nonce int64

func counterTx(from address.Address, action *counterAction) *types.Transaction {
	nonce++
	payload, _ := json.Marshal(action)
	return &types.Transaction{Execer: "counter", From: from, Payload: payload, Nonce: nonce}
}

func newTestExecutor(t *testing.T) (*Executor, dbm.DB) {
	db, err := dbm.NewDB("test", dbm.MemDBBackendStr, "", 0)
	require.NoError(t, err)
	exec, err := New(nil, db)
	require.NoError(t, err)
	exec.now = func() time.Time { return time.Unix(1000, 0) }
	return exec, db
}

func queryValue(t *testing.T, exec *Executor) int64 {
	v, err := exec.Query("counter", "Value", nil)
	require.NoError(t, err)
	return v.(int64)
}

func TestExecCommit(t *testing.T) {
	exec, db := newTestExecutor(t)
	assert.Equal(t, int64(0), exec.Height())

	result, err := exec.Exec(counterTx(alice, &counterAction{Op: "add"}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Height)
	assert.Equal(t, int64(1000), result.BlockTime)
	assert.Equal(t, int64(1), exec.Height())
	assert.Equal(t, int64(1), queryValue(t, exec))

	local, err := db.Get(counterLocal)
	require.NoError(t, err)
	assert.Equal(t, "1", string(local))

	got, err := exec.GetTxResult(result.Hash)
	require.NoError(t, err)
	assert.Equal(t, result.Height, got.Height)
	assert.Equal(t, int32(types.ExecOk), got.Receipt.GetTy())

	_, err = exec.GetTxResult([]byte("nohash"))
	assert.Equal(t, types.ErrNotFound, err)
}

func TestExecDup(t *testing.T) {
	exec, _ := newTestExecutor(t)
	tx := counterTx(alice, &counterAction{Op: "add"})
	_, err := exec.Exec(tx)
	require.NoError(t, err)
	_, err = exec.Exec(tx)
	assert.Equal(t, types.ErrTxDup, err)
	assert.Equal(t, int64(1), exec.Height())
}

func TestExecRollback(t *testing.T) {
	exec, _ := newTestExecutor(t)
	_, err := exec.Genesis(alice, 100)
	require.NoError(t, err)

	_, err = exec.Exec(counterTx(alice, &counterAction{Op: "pay", To: bob, Amount: 10}))
	require.NoError(t, err)
	assert.Equal(t, uint64(90), exec.GetBalance(alice))
	assert.Equal(t, uint64(10), exec.GetBalance(bob))

	cases := []struct {
		op  string
		err error
	}{
		{"fail", errCounter},
		{"memset", types.ErrNotAllowMemSetKey},
		{"badkey", types.ErrNotAllowKey},
		{"unknown", types.ErrActionNotSupport},
	}
	for _, c := range cases {
		_, err = exec.Exec(counterTx(alice, &counterAction{Op: c.op, To: bob, Amount: 10}))
		assert.Equal(t, c.err, err, c.op)
	}
	_, err = exec.Exec(counterTx(alice, &counterAction{Op: "panic"}))
	assert.Error(t, err)

	_, err = exec.Exec(counterTx(alice, &counterAction{Op: "pay", To: bob, Amount: 1000}))
	assert.Equal(t, types.ErrNoBalance, err)

	assert.Equal(t, int64(1), exec.Height())
	assert.Equal(t, int64(1), queryValue(t, exec))
	assert.Equal(t, uint64(90), exec.GetBalance(alice))
	assert.Equal(t, uint64(10), exec.GetBalance(bob))
}

func TestExecUnknownDriver(t *testing.T) {
	exec, _ := newTestExecutor(t)
	tx := counterTx(alice, &counterAction{Op: "add"})
	tx.Execer = "nodriver"
	_, err := exec.Exec(tx)
	assert.Equal(t, types.ErrExecNotFound, err)

	_, err = exec.Exec(&types.Transaction{Execer: "counter"})
	assert.Equal(t, types.ErrEmptyTx, err)

	_, err = exec.Query("nodriver", "Value", nil)
	assert.Equal(t, types.ErrExecNotFound, err)
	_, err = exec.Query("counter", "Other", nil)
	assert.Equal(t, types.ErrQueryNotSupport, err)
}

func TestAdvance(t *testing.T) {
	exec, db := newTestExecutor(t)
	height, err := exec.Advance(10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), height)
	_, err = exec.Advance(-1)
	assert.Equal(t, types.ErrHeightOverflow, err)
	_, err = exec.Advance(math.MaxInt64)
	assert.Equal(t, types.ErrHeightOverflow, err)

	result, err := exec.Exec(counterTx(alice, &counterAction{Op: "add"}))
	require.NoError(t, err)
	assert.Equal(t, int64(11), result.Height)

	//重新打开后高度不变
	exec2, err := New(nil, db)
	require.NoError(t, err)
	assert.Equal(t, int64(11), exec2.Height())
}

func TestGenesis(t *testing.T) {
	exec, _ := newTestExecutor(t)
	_, err := exec.Genesis(address.Zero, 100)
	assert.Equal(t, types.ErrInvalidAddress, err)
	_, err = exec.Genesis(alice, 0)
	assert.Equal(t, types.ErrAmount, err)
	_, err = exec.Genesis(alice, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), exec.GetBalance(alice))
}

func TestTransfer(t *testing.T) {
	exec, _ := newTestExecutor(t)
	_, err := exec.Genesis(alice, 100)
	require.NoError(t, err)
	receipt, err := exec.Transfer(alice, bob, 30)
	require.NoError(t, err)
	assert.Equal(t, int32(types.TyLogTransfer), receipt.Logs[0].Ty)
	assert.Equal(t, uint64(70), exec.GetBalance(alice))
	assert.Equal(t, uint64(30), exec.GetBalance(bob))

	_, err = exec.Transfer(alice, bob, 71)
	assert.Equal(t, types.ErrNoBalance, err)
	_, err = exec.Transfer(alice, alice, 1)
	assert.Equal(t, types.ErrSendSameToRecv, err)
	_, err = exec.Transfer(alice, address.Zero, 1)
	assert.Equal(t, types.ErrInvalidAddress, err)
	assert.Equal(t, uint64(70), exec.GetBalance(alice))
	//不是交易，高度不变
	assert.Equal(t, int64(0), exec.Height())
}

func TestStateDB(t *testing.T) {
	db, _ := dbm.NewGoMemDB("", "", 0)
	require.NoError(t, db.Set([]byte("a"), []byte("1")))
	state := NewStateDB(db, 1)

	v, err := state.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	state.Begin()
	state.Set([]byte("a"), []byte("2"))
	state.Set([]byte("b"), []byte("3"))
	assert.Equal(t, []string{"a", "b"}, state.GetSetKeys())
	v, _ = state.Get([]byte("a"))
	assert.Equal(t, []byte("2"), v)
	state.Rollback()
	v, _ = state.Get([]byte("a"))
	assert.Equal(t, []byte("1"), v)
	_, err = state.Get([]byte("b"))
	assert.Equal(t, types.ErrNotFound, err)

	state.Begin()
	state.Set([]byte("a"), nil)
	state.Commit()
	_, err = state.Get([]byte("a"))
	assert.Equal(t, types.ErrNotFound, err)
}

func TestLocalDBList(t *testing.T) {
	db, _ := dbm.NewGoMemDB("", "", 0)
	for i := 1; i <= 5; i++ {
		db.Set([]byte("LODB-counter-"+strconv.Itoa(i)), []byte(strconv.Itoa(i)))
	}
	local := NewLocalDB(db)
	values, err := local.List([]byte("LODB-counter-"), nil, 2, dbm.ListDESC)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("5"), []byte("4")}, values)
	values, err = local.List([]byte("LODB-counter-"), []byte("LODB-counter-2"), 10, dbm.ListASC)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("3"), []byte("4"), []byte("5")}, values)
	assert.Equal(t, int64(5), local.PrefixCount([]byte("LODB-counter-")))
	_, err = local.List([]byte("LODB-none-"), nil, 2, dbm.ListDESC)
	assert.Equal(t, types.ErrNotFound, err)

	local.Set([]byte("LODB-counter-1"), nil)
	_, err = local.Get([]byte("LODB-counter-1"))
	assert.Equal(t, types.ErrNotFound, err)
}

func TestFindExecer(t *testing.T) {
	execer, err := findExecer([]byte("mavl-coinflip-abc"), types.StatePrefix)
	require.NoError(t, err)
	assert.Equal(t, "coinflip", execer)
	_, err = findExecer([]byte("LODB-coinflip-abc"), types.StatePrefix)
	assert.Error(t, err)
	_, err = findExecer([]byte("mavl--abc"), types.StatePrefix)
	assert.Error(t, err)
	assert.True(t, isAllowExec([]byte("mavl-coins-bty-x"), "coinflip"))
	assert.True(t, isAllowExec([]byte("mavl-coinflip-vault-x"), "coinflip"))
	assert.False(t, isAllowExec([]byte("mavl-coinflip-vault-x"), "counter"))
	assert.False(t, isAllowExec([]byte("mavl-other-x"), "coinflip"))
}
