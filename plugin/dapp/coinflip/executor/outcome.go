// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/coinflip/common/address"
	ct "github.com/33cn/coinflip/plugin/dapp/coinflip/types"
)

//computeOutcome 双方都开奖以后计算结果，和开奖的顺序无关
func computeOutcome(gameID address.Address, game *ct.Game) error {
	if !game.RevealedA || !game.RevealedB {
		return ct.ErrNotReady
	}
	game.Coin = ct.CoinFlip(game.SecretA, game.SecretB, gameID)
	game.Winner = ct.Winner(game)
	return applyTransition(game, eventBothRevealed)
}
