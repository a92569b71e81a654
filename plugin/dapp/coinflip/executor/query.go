// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/coinflip/common/address"
	ct "github.com/33cn/coinflip/plugin/dapp/coinflip/types"
	"github.com/33cn/coinflip/types"
)

//Query 查询接口，params 为 json
func (c *Coinflip) Query(funcName string, params []byte) (interface{}, error) {
	switch funcName {
	case ct.FuncNameGetGame:
		var req ct.ReqCoinflipGame
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return c.getGameInfo(req.GameID)
	case ct.FuncNameListGames:
		var req ct.ReqCoinflipList
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return c.listGames(&req)
	case ct.FuncNameCountGames:
		var req ct.ReqCoinflipCount
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return c.countGames(&req)
	case ct.FuncNameGetVault:
		var req ct.ReqCoinflipGame
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return c.getVault(req.GameID)
	case ct.FuncNameGetRound:
		var req ct.ReqCoinflipGame
		if err := types.Decode(params, &req); err != nil {
			return nil, err
		}
		return c.getRound(req.GameID)
	}
	return c.DriverBase.Query(funcName, params)
}

func (c *Coinflip) getGameInfo(id address.Address) (*ct.ReplyCoinflipGame, error) {
	game, meta, err := readGame(c.GetStateDB(), id)
	if err != nil {
		return nil, err
	}
	vault := address.VaultAddress(id)
	return &ct.ReplyCoinflipGame{
		GameID:       id,
		Vault:        vault,
		VaultBalance: NewVaultAccount(c.GetStateDB()).GetBalance(vault),
		Game:         game,
		Meta:         meta,
	}, nil
}

func (c *Coinflip) getVault(id address.Address) (*ct.ReplyCoinflipVault, error) {
	if _, _, err := readGame(c.GetStateDB(), id); err != nil {
		return nil, err
	}
	vault := address.VaultAddress(id)
	return &ct.ReplyCoinflipVault{GameID: id, Vault: vault, Balance: NewVaultAccount(c.GetStateDB()).GetBalance(vault)}, nil
}

func (c *Coinflip) getRound(id address.Address) (*ct.ReplyCoinflipRound, error) {
	game, meta, err := readGame(c.GetStateDB(), id)
	if err != nil {
		return nil, err
	}
	verdict, err := ct.VerifyRound(id, game)
	if err != nil {
		return nil, err
	}
	return &ct.ReplyCoinflipRound{
		Round:   ct.ExportRound(id, game, meta.Txs, 0),
		Verdict: verdict,
	}, nil
}

func checkStatus(status int32) error {
	if status < 0 || status > int32(ct.StatusFinalized) {
		return ct.ErrInvalidStatus
	}
	return nil
}

func (c *Coinflip) listGames(req *ct.ReqCoinflipList) (*ct.ReplyCoinflipList, error) {
	if err := checkStatus(req.Status); err != nil {
		return nil, err
	}
	if req.Direction != ct.ListDESC && req.Direction != ct.ListASC {
		return nil, types.ErrInvalidParam
	}
	cfg := c.config()
	count := req.Count
	if count <= 0 {
		count = cfg.DefaultCount
	}
	if count > cfg.MaxCount {
		count = cfg.MaxCount
	}
	var prefix, key []byte
	if req.Addr.IsZero() {
		prefix = calcStatusIndexPrefix(req.Status)
		if req.Index > 0 {
			key = calcStatusIndexKey(req.Status, req.Index)
		}
	} else {
		prefix = calcAddrIndexPrefix(req.Status, req.Addr)
		if req.Index > 0 {
			key = calcAddrIndexKey(req.Status, req.Addr, req.Index)
		}
	}
	reply := &ct.ReplyCoinflipList{}
	values, err := c.GetLocalDB().List(prefix, key, count, req.Direction)
	if err == types.ErrNotFound {
		return reply, nil
	}
	if err != nil {
		return nil, err
	}
	for _, value := range values {
		var record ct.CoinflipRecord
		if err := types.Decode(value, &record); err != nil {
			return nil, err
		}
		info, err := c.getGameInfo(record.GameID)
		if err != nil {
			clog.Error("listGames", "gameId", record.GameID, "err", err)
			return nil, err
		}
		reply.Games = append(reply.Games, info)
	}
	return reply, nil
}

func (c *Coinflip) countGames(req *ct.ReqCoinflipCount) (*ct.ReplyCoinflipCount, error) {
	if err := checkStatus(req.Status); err != nil {
		return nil, err
	}
	prefix := calcStatusIndexPrefix(req.Status)
	if !req.Addr.IsZero() {
		prefix = calcAddrIndexPrefix(req.Status, req.Addr)
	}
	return &ct.ReplyCoinflipCount{Count: c.GetLocalDB().PrefixCount(prefix)}, nil
}
