// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"fmt"

	"github.com/33cn/coinflip/account"
	"github.com/33cn/coinflip/common/address"
	dbm "github.com/33cn/coinflip/common/db"
	ct "github.com/33cn/coinflip/plugin/dapp/coinflip/types"
	"github.com/33cn/coinflip/types"
)

//托管账户的资产符号，余额保存在 mavl-coinflip-vault-<addr>
const vaultSymbol = "vault"

var (
	gameKeyPrefix  = types.StatePrefix + ct.CoinflipX + "-game-"
	metaKeyPrefix  = types.StatePrefix + ct.CoinflipX + "-meta-"
	localKeyPrefix = types.LocalPrefix + ct.CoinflipX + "-"
)

//NewVaultAccount 托管账户和主币账户分开记账，
//主币的 genesis 或者转账到托管地址不会改变托管余额
func NewVaultAccount(db dbm.KV) *account.DB {
	acc, err := account.NewAccountDB(ct.CoinflipX, vaultSymbol, db)
	if err != nil {
		panic(err)
	}
	return acc
}

//Key gameID to save key
func Key(id address.Address) []byte {
	return []byte(gameKeyPrefix + id.String())
}

//MetaKey 游戏索引信息的 key
func MetaKey(id address.Address) []byte {
	return []byte(metaKeyPrefix + id.String())
}

/*
  本地索引:
     根据状态索引建立： key= status:HeightIndex
     状态地址索引建立：key= status:addr:HeightIndex
     value= CoinflipRecord{gameId, index}
  每次状态变化都用新的 index 建立索引，并删除上一个状态 PrevIndex 的索引。
*/
func calcStatusIndexKey(status int32, index int64) []byte {
	return []byte(fmt.Sprintf("%sstatus:%d:%018d", localKeyPrefix, status, index))
}

func calcStatusIndexPrefix(status int32) []byte {
	return []byte(fmt.Sprintf("%sstatus:%d:", localKeyPrefix, status))
}

func calcAddrIndexKey(status int32, addr address.Address, index int64) []byte {
	return []byte(fmt.Sprintf("%saddr:%d:%s:%018d", localKeyPrefix, status, addr, index))
}

func calcAddrIndexPrefix(status int32, addr address.Address) []byte {
	return []byte(fmt.Sprintf("%saddr:%d:%s:", localKeyPrefix, status, addr))
}

func addStatusIndex(status int32, gameID address.Address, index int64) *types.KeyValue {
	return &types.KeyValue{
		Key:   calcStatusIndexKey(status, index),
		Value: types.Encode(&ct.CoinflipRecord{GameID: gameID, Index: index}),
	}
}

func addAddrIndex(status int32, gameID, addr address.Address, index int64) *types.KeyValue {
	return &types.KeyValue{
		Key:   calcAddrIndexKey(status, addr, index),
		Value: types.Encode(&ct.CoinflipRecord{GameID: gameID, Index: index}),
	}
}

func delStatusIndex(status int32, index int64) *types.KeyValue {
	return &types.KeyValue{Key: calcStatusIndexKey(status, index)}
}

func delAddrIndex(status int32, addr address.Address, index int64) *types.KeyValue {
	//value置nil,提交时，会自动执行删除操作
	return &types.KeyValue{Key: calcAddrIndexKey(status, addr, index)}
}
