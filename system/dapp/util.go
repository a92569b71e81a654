// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"github.com/33cn/coinflip/common/db"
	"github.com/33cn/coinflip/types"
)

//HeightIndex 高度和交易序号合成的全局序号
func HeightIndex(height int64, index int) int64 {
	return height*types.MaxTxsPerBlock + int64(index)
}

//KVCreator 创建KV的辅助工具
type KVCreator struct {
	kvs  []*types.KeyValue
	kvdb db.KV
}

//NewKVCreator 创建创建者
func NewKVCreator(kv db.KV) *KVCreator {
	return &KVCreator{kvdb: kv}
}

//Add add and set to kvdb
func (c *KVCreator) Add(key, value []byte) *KVCreator {
	c.kvs = append(c.kvs, &types.KeyValue{Key: key, Value: value})
	if err := c.kvdb.Set(key, value); err != nil {
		panic(err)
	}
	return c
}

//AddList 合并其他收据的 kv，这些 kv 已经写入 kvdb
func (c *KVCreator) AddList(list []*types.KeyValue) *KVCreator {
	c.kvs = append(c.kvs, list...)
	return c
}

//KVList 读取所有的kv列表
func (c *KVCreator) KVList() []*types.KeyValue {
	return c.kvs
}
