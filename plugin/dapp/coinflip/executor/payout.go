// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/coinflip/common/address"
	ct "github.com/33cn/coinflip/plugin/dapp/coinflip/types"
	"github.com/33cn/coinflip/types"
)

//余额不足或者溢出都是押注金额的问题
func stakeErr(err error) error {
	if err == types.ErrNoBalance || err == types.ErrAmount {
		return ct.ErrInvalidStake
	}
	return err
}

//deposit 个人账户 -> 托管账户，托管余额只能由 deposit 增加
func (action *Action) deposit(gameID address.Address, amount uint64) (*types.Receipt, error) {
	vault := address.VaultAddress(gameID)
	receipt, err := action.coinsAccount.Deposit(action.vaultAccount, action.fromaddr, vault, amount)
	if err != nil {
		clog.Error("deposit", "addr", action.fromaddr, "vault", vault, "amount", amount, "err", err)
		return nil, stakeErr(err)
	}
	return receipt, nil
}

//payout 托管账户 -> 个人账户，两边一起修改
func (action *Action) payout(gameID, to address.Address, amount uint64) (*types.Receipt, error) {
	vault := address.VaultAddress(gameID)
	receipt, err := action.coinsAccount.Payout(action.vaultAccount, vault, to, amount)
	if err != nil {
		clog.Error("payout", "vault", vault, "to", to, "amount", amount, "err", err)
		return nil, stakeErr(err)
	}
	return receipt, nil
}

//托管账户应有的余额：存入但还没有付出的押注
func expectVault(game *ct.Game) uint64 {
	switch game.Status {
	case ct.StatusCreated:
		return game.Stake
	case ct.StatusFinalized:
		return 0
	}
	return game.Pot()
}

func (action *Action) checkVault(gameID address.Address, game *ct.Game) error {
	vault := address.VaultAddress(gameID)
	balance := action.vaultAccount.GetBalance(vault)
	if balance != expectVault(game) {
		clog.Error("checkVault", "gameId", gameID, "status", game.Status, "balance", balance, "expect", expectVault(game))
		return types.ErrExecStateNotMatch
	}
	return nil
}

//GameFinalize 把全部押注付给赢家
func (action *Action) GameFinalize(finalize *ct.CoinflipFinalize) (*types.Receipt, error) {
	gameID := finalize.GameID
	game, meta, err := readGame(action.db, gameID)
	if err != nil {
		return nil, err
	}
	prevStatus := int32(game.Status)
	if err := checkTransition(game.Status, eventFinalize); err != nil {
		clog.Error("GameFinalize", "gameId", gameID, "status", game.Status, "err", err)
		return nil, err
	}
	var to address.Address
	switch {
	case game.Winner.IsZero():
		return nil, ct.ErrNotReady
	case game.Winner == game.Creator:
		to = game.Creator
	case game.Winner == game.Joiner:
		to = game.Joiner
	default:
		return nil, ct.ErrNotReady
	}
	receipt, err := action.payout(gameID, to, game.Pot())
	if err != nil {
		return nil, err
	}
	if err := applyTransition(game, eventFinalize); err != nil {
		return nil, err
	}
	return action.finish(gameID, game, meta, prevStatus, ct.TyLogCoinflipFinalize, receipt)
}
