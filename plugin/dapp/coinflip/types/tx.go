// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/coinflip/common/address"
	"github.com/33cn/coinflip/types"
)

//NewTx 构造 coinflip 交易
func NewTx(from address.Address, action *CoinflipAction, nonce int64) *types.Transaction {
	return &types.Transaction{
		Execer:  CoinflipX,
		From:    from,
		Payload: types.Encode(action),
		Nonce:   nonce,
	}
}

//CreateAction 创建游戏
func CreateAction(stake uint64, commit Hash, deadlineOffset uint64, seed []byte) *CoinflipAction {
	return &CoinflipAction{
		Ty:     CoinflipActionCreate,
		Create: &CoinflipCreate{Stake: stake, Commit: commit, DeadlineOffset: deadlineOffset, Seed: seed},
	}
}

//JoinAction 加入游戏
func JoinAction(gameID address.Address, commit Hash) *CoinflipAction {
	return &CoinflipAction{
		Ty:   CoinflipActionJoin,
		Join: &CoinflipJoin{GameID: gameID, Commit: commit},
	}
}

//RevealAction 开奖，creator 为 true 时是创建者开奖
func RevealAction(gameID address.Address, creator bool, choice uint8, secret Hash) *CoinflipAction {
	ty := int32(CoinflipActionRevealJoiner)
	if creator {
		ty = CoinflipActionRevealCreator
	}
	return &CoinflipAction{
		Ty:     ty,
		Reveal: &CoinflipReveal{GameID: gameID, Choice: choice, Secret: secret},
	}
}

//ForfeitAction 超时处理
func ForfeitAction(gameID address.Address) *CoinflipAction {
	return &CoinflipAction{
		Ty:      CoinflipActionForfeit,
		Forfeit: &CoinflipForfeit{GameID: gameID},
	}
}

//FinalizeAction 结算
func FinalizeAction(gameID address.Address) *CoinflipAction {
	return &CoinflipAction{
		Ty:       CoinflipActionFinalize,
		Finalize: &CoinflipFinalize{GameID: gameID},
	}
}
