// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/coinflip/common"
)

//HashSize 承诺和秘密的长度
const HashSize = 32

//Hash 32字节的承诺或者秘密，json 中以 hex 表示
type Hash [HashSize]byte

//IsZero 全零
func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) String() string {
	return common.HashHex(h[:])
}

//MarshalText hex
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

//UnmarshalText hex, 可以带 0x 前缀
func (h *Hash) UnmarshalText(text []byte) error {
	v, err := HashFromHex(string(text))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

//HashFromHex 解析 64 个字符的 hex
func HashFromHex(s string) (h Hash, err error) {
	b, err := common.FromHex(s)
	if err != nil {
		return h, err
	}
	if len(b) != HashSize {
		return h, ErrHashLength
	}
	copy(h[:], b)
	return h, nil
}
