// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/binary"

	"github.com/33cn/coinflip/common/address"
)

//GameSize 状态数据库中游戏记录的固定长度
const GameSize = 2*address.Size + 8 + 2*HashSize + 1 + 1 + 1 + 1 + 2*HashSize + 8 + 8 + 1 + address.Size + 1

//Game 一局游戏的全部状态，创建以后只通过 action 修改，从不删除
type Game struct {
	Creator        address.Address `json:"creator"`
	Joiner         address.Address `json:"joiner"`
	Stake          uint64          `json:"stake"`
	CommitA        Hash            `json:"commitA"`
	CommitB        Hash            `json:"commitB"`
	RevealedA      bool            `json:"revealedA"`
	RevealedB      bool            `json:"revealedB"`
	ChoiceA        uint8           `json:"choiceA"`
	ChoiceB        uint8           `json:"choiceB"`
	SecretA        Hash            `json:"secretA"`
	SecretB        Hash            `json:"secretB"`
	CreatedAt      uint64          `json:"createdAt"`
	RevealDeadline uint64          `json:"revealDeadline"`
	Coin           uint8           `json:"coin"`
	Winner         address.Address `json:"winner"`
	Status         Status          `json:"status"`
}

//HasJoiner 是否已经有人加入
func (g *Game) HasJoiner() bool {
	return !g.Joiner.IsZero()
}

//Pot 双方的总押注，溢出时取最大值
func (g *Game) Pot() uint64 {
	if g.Stake > ^uint64(0)/2 {
		return ^uint64(0)
	}
	return g.Stake * 2
}

//Clone 复制
func (g *Game) Clone() *Game {
	c := *g
	return &c
}

//Encode 按固定的字段顺序编码，整数为小端
func (g *Game) Encode() []byte {
	buf := make([]byte, 0, GameSize)
	buf = append(buf, g.Creator[:]...)
	buf = append(buf, g.Joiner[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, g.Stake)
	buf = append(buf, g.CommitA[:]...)
	buf = append(buf, g.CommitB[:]...)
	buf = append(buf, boolByte(g.RevealedA), boolByte(g.RevealedB))
	buf = append(buf, g.ChoiceA, g.ChoiceB)
	buf = append(buf, g.SecretA[:]...)
	buf = append(buf, g.SecretB[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, g.CreatedAt)
	buf = binary.LittleEndian.AppendUint64(buf, g.RevealDeadline)
	buf = append(buf, g.Coin)
	buf = append(buf, g.Winner[:]...)
	buf = append(buf, byte(g.Status))
	return buf
}

//DecodeGame 解码固定长度的游戏记录
func DecodeGame(data []byte) (*Game, error) {
	if len(data) != GameSize {
		return nil, ErrGameDecode
	}
	r := &reader{data: data}
	g := &Game{}
	r.read(g.Creator[:])
	r.read(g.Joiner[:])
	g.Stake = r.uint64()
	r.read(g.CommitA[:])
	r.read(g.CommitB[:])
	revealedA, revealedB := r.byte(), r.byte()
	g.ChoiceA = r.byte()
	g.ChoiceB = r.byte()
	r.read(g.SecretA[:])
	r.read(g.SecretB[:])
	g.CreatedAt = r.uint64()
	g.RevealDeadline = r.uint64()
	g.Coin = r.byte()
	r.read(g.Winner[:])
	g.Status = Status(r.byte())
	if revealedA > 1 || revealedB > 1 || !g.Status.Valid() {
		return nil, ErrGameDecode
	}
	g.RevealedA = revealedA == 1
	g.RevealedB = revealedB == 1
	return g, nil
}

type reader struct {
	data []byte
	off  int
}

func (r *reader) read(dst []byte) {
	r.off += copy(dst, r.data[r.off:])
}

func (r *reader) byte() byte {
	b := r.data[r.off]
	r.off++
	return b
}

func (r *reader) uint64() uint64 {
	v := binary.LittleEndian.Uint64(r.data[r.off:])
	r.off += 8
	return v
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
