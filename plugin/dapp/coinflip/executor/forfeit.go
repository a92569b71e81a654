// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/coinflip/common/address"
	ct "github.com/33cn/coinflip/plugin/dapp/coinflip/types"
	"github.com/33cn/coinflip/types"
)

//GameForfeit 超过开奖截止高度以后结束游戏，任何人都可以调用
//1. 只有创建者开奖：全部押注给创建者
//2. 只有加入者开奖：全部押注给加入者
//3. 都没有开奖：分两笔各自退回 stake
func (action *Action) GameForfeit(forfeit *ct.CoinflipForfeit) (*types.Receipt, error) {
	gameID := forfeit.GameID
	game, meta, err := readGame(action.db, gameID)
	if err != nil {
		return nil, err
	}
	prevStatus := int32(game.Status)
	if err := checkTransition(game.Status, eventTimeout); err != nil {
		clog.Error("GameForfeit", "gameId", gameID, "status", game.Status, "err", err)
		return nil, err
	}
	if action.now() < game.RevealDeadline {
		return nil, ct.ErrTooEarly
	}
	if !game.HasJoiner() {
		return nil, ct.ErrNotReady
	}
	var receipts []*types.Receipt
	switch {
	case game.RevealedA && !game.RevealedB:
		receipt, err := action.payout(gameID, game.Creator, game.Pot())
		if err != nil {
			return nil, err
		}
		game.Winner = game.Creator
		receipts = append(receipts, receipt)
	case game.RevealedB && !game.RevealedA:
		receipt, err := action.payout(gameID, game.Joiner, game.Pot())
		if err != nil {
			return nil, err
		}
		game.Winner = game.Joiner
		receipts = append(receipts, receipt)
	default:
		for _, to := range []address.Address{game.Creator, game.Joiner} {
			receipt, err := action.payout(gameID, to, game.Stake)
			if err != nil {
				return nil, err
			}
			receipts = append(receipts, receipt)
		}
	}
	if err := applyTransition(game, eventTimeout); err != nil {
		return nil, err
	}
	clog.Info("GameForfeit", "gameId", gameID, "winner", game.Winner, "caller", action.fromaddr)
	return action.finish(gameID, game, meta, prevStatus, ct.TyLogCoinflipForfeit, receipts...)
}
