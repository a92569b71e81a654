// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/coinflip/common/db"
	"github.com/33cn/coinflip/types"
)

// LocalDB local db for store key value in local
type LocalDB struct {
	cache  map[string][]byte
	db     db.DB
	lister *db.ListHelper
}

// NewLocalDB new local db
func NewLocalDB(backing db.DB) *LocalDB {
	return &LocalDB{cache: make(map[string][]byte), db: backing, lister: db.NewListHelper(backing)}
}

// Get get value from local db
func (l *LocalDB) Get(key []byte) ([]byte, error) {
	if value, ok := l.cache[string(key)]; ok {
		return valueOrNotFound(value)
	}
	value, err := l.db.Get(key)
	if err != nil {
		return nil, types.ErrNotFound
	}
	l.cache[string(key)] = value
	return value, nil
}

// Set set key value to local db
func (l *LocalDB) Set(key []byte, value []byte) error {
	l.cache[string(key)] = value
	return nil
}

// List 从数据库中查询数据列表，set 中的cache 更新不会影响这个list
func (l *LocalDB) List(prefix, key []byte, count, direction int32) ([][]byte, error) {
	values := l.lister.List(prefix, key, count, direction)
	if values == nil {
		return nil, types.ErrNotFound
	}
	return values, nil
}

// PrefixCount 从数据库中查询指定前缀的key的数量
func (l *LocalDB) PrefixCount(prefix []byte) (count int64) {
	return l.lister.PrefixCount(prefix)
}
