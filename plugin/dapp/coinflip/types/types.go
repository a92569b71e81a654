// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/coinflip/common/address"
)

//CoinflipAction 交易的 payload
type CoinflipAction struct {
	Ty       int32             `json:"ty"`
	Create   *CoinflipCreate   `json:"create,omitempty"`
	Join     *CoinflipJoin     `json:"join,omitempty"`
	Reveal   *CoinflipReveal   `json:"reveal,omitempty"`
	Forfeit  *CoinflipForfeit  `json:"forfeit,omitempty"`
	Finalize *CoinflipFinalize `json:"finalize,omitempty"`
}

//GetCreate get create
func (m *CoinflipAction) GetCreate() *CoinflipCreate {
	if m != nil {
		return m.Create
	}
	return nil
}

//GetJoin get join
func (m *CoinflipAction) GetJoin() *CoinflipJoin {
	if m != nil {
		return m.Join
	}
	return nil
}

//GetReveal get reveal
func (m *CoinflipAction) GetReveal() *CoinflipReveal {
	if m != nil {
		return m.Reveal
	}
	return nil
}

//GetForfeit get forfeit
func (m *CoinflipAction) GetForfeit() *CoinflipForfeit {
	if m != nil {
		return m.Forfeit
	}
	return nil
}

//GetFinalize get finalize
func (m *CoinflipAction) GetFinalize() *CoinflipFinalize {
	if m != nil {
		return m.Finalize
	}
	return nil
}

//CoinflipCreate 创建游戏，Seed 和创建者一起决定游戏地址
type CoinflipCreate struct {
	Stake          uint64 `json:"stake"`
	Commit         Hash   `json:"commit"`
	DeadlineOffset uint64 `json:"deadlineOffset"`
	Seed           []byte `json:"seed"`
}

//CoinflipJoin 加入游戏
type CoinflipJoin struct {
	GameID address.Address `json:"gameId"`
	Commit Hash            `json:"commit"`
}

//CoinflipReveal 开奖，创建者和加入者用不同的 action ty
type CoinflipReveal struct {
	GameID address.Address `json:"gameId"`
	Choice uint8           `json:"choice"`
	Secret Hash            `json:"secret"`
}

//CoinflipForfeit 超时处理，任何人都可以发起
type CoinflipForfeit struct {
	GameID address.Address `json:"gameId"`
}

//CoinflipFinalize 结算
type CoinflipFinalize struct {
	GameID address.Address `json:"gameId"`
}

//GameMeta 游戏的索引信息，和固定长度的游戏记录分开保存
type GameMeta struct {
	ID        address.Address `json:"id"`
	Index     int64           `json:"index"`
	PrevIndex int64           `json:"prevIndex"`
	Seed      []byte          `json:"seed"`
	Txs       []string        `json:"txs"`
}

//ReceiptCoinflip 每个 action 的日志，ExecLocal 根据它更新索引
type ReceiptCoinflip struct {
	GameID     address.Address `json:"gameId"`
	Status     int32           `json:"status"`
	PrevStatus int32           `json:"prevStatus"`
	Addr       address.Address `json:"addr"`
	Creator    address.Address `json:"creator"`
	Joiner     address.Address `json:"joiner"`
	Winner     address.Address `json:"winner"`
	Index      int64           `json:"index"`
	PrevIndex  int64           `json:"prevIndex"`
}

//CoinflipRecord 本地索引中保存的内容
type CoinflipRecord struct {
	GameID address.Address `json:"gameId"`
	Index  int64           `json:"index"`
}

//ReqCoinflipGame 查询一局游戏
type ReqCoinflipGame struct {
	GameID address.Address `json:"gameId"`
}

//ReqCoinflipList 按状态(和地址)分页查询
type ReqCoinflipList struct {
	Status    int32           `json:"status"`
	Addr      address.Address `json:"addr"`
	Index     int64           `json:"index"`
	Count     int32           `json:"count"`
	Direction int32           `json:"direction"`
}

//ReqCoinflipCount 按状态(和地址)统计
type ReqCoinflipCount struct {
	Status int32           `json:"status"`
	Addr   address.Address `json:"addr"`
}

//ReplyCoinflipGame 游戏详情
type ReplyCoinflipGame struct {
	GameID       address.Address `json:"gameId"`
	Vault        address.Address `json:"vault"`
	VaultBalance uint64          `json:"vaultBalance"`
	Game         *Game           `json:"game"`
	Meta         *GameMeta       `json:"meta"`
}

//ReplyCoinflipList 游戏列表
type ReplyCoinflipList struct {
	Games []*ReplyCoinflipGame `json:"games"`
}

//ReplyCoinflipCount 数量
type ReplyCoinflipCount struct {
	Count int64 `json:"count"`
}

//ReplyCoinflipVault 托管账户
type ReplyCoinflipVault struct {
	GameID  address.Address `json:"gameId"`
	Vault   address.Address `json:"vault"`
	Balance uint64          `json:"balance"`
}

//ReplyCoinflipRound 证据以及重新验证的结论
type ReplyCoinflipRound struct {
	Round   *RoundBundle  `json:"round"`
	Verdict *RoundVerdict `json:"verdict"`
}
