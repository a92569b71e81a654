// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"crypto/rand"

	"github.com/33cn/coinflip/common"
	"github.com/33cn/coinflip/common/address"
	"github.com/google/uuid"
)

//Commit 承诺 = sha256(choice || secret)
func Commit(choice uint8, secret Hash) Hash {
	return common.Sha2Sum([]byte{choice}, secret[:])
}

//VerifyCommit 重新计算承诺并比较
func VerifyCommit(commit Hash, choice uint8, secret Hash) bool {
	return Commit(choice, secret) == commit
}

//CoinFlip 结果 = sha256(secretA || secretB || game)[0] % 2
func CoinFlip(secretA, secretB Hash, game address.Address) uint8 {
	h := common.Sha2Sum(secretA[:], secretB[:], game[:])
	return h[0] % 2
}

//Winner 只比较创建者的选择和结果，加入者的选择只用来验证承诺
func Winner(g *Game) address.Address {
	if g.ChoiceA == g.Coin {
		return g.Creator
	}
	return g.Joiner
}

//NewSecret 随机生成一个32字节的秘密
func NewSecret() (secret Hash, err error) {
	_, err = rand.Read(secret[:])
	return secret, err
}

//SecretFromString 64个字符的 hex 直接解析，否则把字符串右边补0到32字节
func SecretFromString(s string) (secret Hash, err error) {
	if len(s) == 2*HashSize || len(s) == 2*HashSize+2 {
		if h, err := HashFromHex(s); err == nil {
			return h, nil
		}
	}
	if len(s) > HashSize {
		return secret, ErrSecretLength
	}
	copy(secret[:], s)
	return secret, nil
}

//NewSeed 游戏地址的种子，不指定的时候用 uuid
func NewSeed() []byte {
	id := uuid.New()
	return id[:]
}
