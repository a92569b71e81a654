// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"testing"

	"github.com/33cn/coinflip/common/address"
	"github.com/33cn/coinflip/common/db"
	"github.com/33cn/coinflip/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type demoApp struct {
	DriverBase
}

func newdemoApp() Driver {
	demo := &demoApp{}
	demo.SetChild(demo)
	return demo
}

func (demo *demoApp) GetDriverName() string {
	return "demo"
}

func init() {
	Register("demo", newdemoApp, 10)
}

func TestLoadDriver(t *testing.T) {
	_, err := LoadDriver("demo", 9)
	assert.Equal(t, types.ErrExecNotFound, err)
	_, err = LoadDriver("nodemo", 10)
	assert.Equal(t, types.ErrExecNotFound, err)

	d, err := LoadDriver("demo", 10)
	require.NoError(t, err)
	assert.Equal(t, "demo", d.GetName())
	d, err = LoadDriver("demo", -1)
	require.NoError(t, err)
	assert.Contains(t, DriverNames(), "demo")
	assert.Equal(t, address.FromLabel("demo"), ExecAddress("demo"))
}

func TestDriverBase(t *testing.T) {
	d, err := LoadDriver("demo", 10)
	require.NoError(t, err)
	kvdb, _ := db.NewGoMemDB("", "", 0)
	d.SetStateDB(kvdb)
	d.SetEnv(11, 1000)
	assert.Equal(t, int64(11), d.(*demoApp).GetHeight())
	assert.Equal(t, int64(1000), d.(*demoApp).GetBlockTime())

	tx := &types.Transaction{Execer: "demo", From: address.FromLabel("a"), Payload: []byte("{}")}
	assert.NoError(t, d.Allow(tx, 0))
	assert.NoError(t, d.CheckTx(tx, 0))
	_, err = d.Exec(tx, 0)
	assert.Equal(t, types.ErrActionNotSupport, err)
	_, err = d.Query("Any", nil)
	assert.Equal(t, types.ErrQueryNotSupport, err)

	tx.Execer = "other"
	assert.Equal(t, types.ErrExecNameNotAllow, d.Allow(tx, 0))
	_, err = LoadDriverAllow(tx, 0, 10)
	assert.Equal(t, types.ErrExecNotFound, err)

	acc := d.GetCoinsAccount()
	acc.SaveAccount(&types.Account{Addr: address.FromLabel("a"), Balance: 10})
	assert.Equal(t, uint64(10), d.GetCoinsAccount().GetBalance(address.FromLabel("a")))
}

func TestKVCreator(t *testing.T) {
	kvdb, _ := db.NewGoMemDB("", "", 0)
	creator := NewKVCreator(kvdb)
	creator.Add([]byte("a"), []byte("1")).Add([]byte("b"), []byte("2"))
	creator.AddList([]*types.KeyValue{{Key: []byte("c")}})
	assert.Len(t, creator.KVList(), 3)
	v, err := kvdb.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
	//AddList 只记录，不写入
	_, err = kvdb.Get([]byte("c"))
	assert.Equal(t, db.ErrNotFoundInDb, err)

	assert.Equal(t, int64(100002), HeightIndex(1, 2))
}
