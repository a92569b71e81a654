// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package address 32字节身份标识，以及游戏与托管账户地址的推导
package address

import (
	"bytes"
	"errors"

	"github.com/33cn/coinflip/common"
	lru "github.com/hashicorp/golang-lru"
	"github.com/mr-tron/base58/base58"
)

// Size 地址长度
const Size = 32

// Address 32字节的公开身份标识，全零表示未设置
type Address [Size]byte

// Zero 未设置的地址
var Zero Address

var (
	gameSeed  = []byte("game")
	vaultSeed = []byte("vault")
	labelSeed = []byte("address seed bytes for label")
)

var vaultCache *lru.Cache

// ErrAddressLength 地址长度错误
var ErrAddressLength = errors.New("ErrAddressLength")

func init() {
	vaultCache, _ = lru.New(10240)
}

//IsZero 是否为未设置的地址
func (a Address) IsZero() bool {
	return a == Zero
}

//Bytes 地址字节
func (a Address) Bytes() []byte {
	return a[:]
}

//String base58 编码
func (a Address) String() string {
	return base58.Encode(a[:])
}

//Equal 比较
func (a Address) Equal(b Address) bool {
	return bytes.Equal(a[:], b[:])
}

//MarshalText json 中以 base58 表示
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

//UnmarshalText 从 base58 解析
func (a *Address) UnmarshalText(text []byte) error {
	addr, err := NewAddrFromString(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

//NewAddrFromString base58 -> Address
func NewAddrFromString(s string) (a Address, err error) {
	if s == "" {
		return Zero, nil
	}
	dec, err := base58.Decode(s)
	if err != nil {
		return Zero, err
	}
	return FromBytes(dec)
}

//FromBytes []byte -> Address
func FromBytes(b []byte) (a Address, err error) {
	if len(b) != Size {
		return Zero, ErrAddressLength
	}
	copy(a[:], b)
	return a, nil
}

//CheckAddress 检查地址
func CheckAddress(s string) error {
	_, err := NewAddrFromString(s)
	return err
}

//FromLabel 由一个名字推导出确定的身份，用于本地测试网络
func FromLabel(label string) Address {
	return common.Sha2Sum(labelSeed, []byte(label))
}

//GameAddress 游戏地址 = sha256("game" || creator || seed)
func GameAddress(creator Address, seed []byte) Address {
	return common.Sha2Sum(gameSeed, creator[:], seed)
}

//VaultAddress 托管账户地址 = sha256("vault" || game)，计算量有点大，做一次cache
func VaultAddress(game Address) Address {
	if value, ok := vaultCache.Get(game); ok {
		return value.(Address)
	}
	vault := Address(common.Sha2Sum(vaultSeed, game[:]))
	vaultCache.Add(game, vault)
	return vault
}
