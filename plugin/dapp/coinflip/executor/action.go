// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

//database opeartion for executor coinflip
import (
	"github.com/33cn/coinflip/account"
	"github.com/33cn/coinflip/common"
	"github.com/33cn/coinflip/common/address"
	dbm "github.com/33cn/coinflip/common/db"
	ct "github.com/33cn/coinflip/plugin/dapp/coinflip/types"
	drivers "github.com/33cn/coinflip/system/dapp"
	"github.com/33cn/coinflip/types"
	lru "github.com/hashicorp/golang-lru"
)

const maxSeedSize = 64

//按记录内容缓存解码结果，内容相同结果就相同，回滚不影响
var gameCache *lru.Cache

func init() {
	gameCache, _ = lru.New(1024)
}

//Action 一个交易的执行环境
type Action struct {
	coinsAccount *account.DB
	vaultAccount *account.DB
	db           dbm.KV
	txhash       []byte
	fromaddr     address.Address
	blocktime    int64
	height       int64
	localDB      dbm.Lister
	index        int
	cfg          *subConfig
}

//NewAction 创建 Action
func NewAction(c *Coinflip, tx *types.Transaction, index int) *Action {
	return &Action{
		coinsAccount: c.GetCoinsAccount(),
		vaultAccount: NewVaultAccount(c.GetStateDB()),
		db:           c.GetStateDB(),
		txhash:       tx.Hash(),
		fromaddr:     tx.From,
		blocktime:    c.GetBlockTime(),
		height:       c.GetHeight(),
		localDB:      c.GetLocalDB(),
		index:        index,
		cfg:          c.config(),
	}
}

//GetIndex 本地索引用的 height*MaxTxsPerBlock + index
func (action *Action) GetIndex() int64 {
	return drivers.HeightIndex(action.height, action.index)
}

//逻辑时钟就是区块高度
func (action *Action) now() uint64 {
	if action.height < 0 {
		return 0
	}
	return uint64(action.height)
}

func decodeGame(value []byte) (*ct.Game, error) {
	if g, ok := gameCache.Get(string(value)); ok {
		return g.(*ct.Game).Clone(), nil
	}
	game, err := ct.DecodeGame(value)
	if err != nil {
		return nil, err
	}
	gameCache.Add(string(value), game.Clone())
	return game, nil
}

//readGame 读取游戏记录和索引信息
func readGame(db dbm.KV, id address.Address) (*ct.Game, *ct.GameMeta, error) {
	value, err := db.Get(Key(id))
	if err != nil || len(value) == 0 {
		return nil, nil, ct.ErrGameNotFound
	}
	game, err := decodeGame(value)
	if err != nil {
		clog.Error("readGame", "gameId", id, "err", err)
		return nil, nil, err
	}
	meta := &ct.GameMeta{ID: id}
	if value, err := db.Get(MetaKey(id)); err == nil && len(value) > 0 {
		if err := types.Decode(value, meta); err != nil {
			return nil, nil, err
		}
	}
	return game, meta, nil
}

func (action *Action) saveGame(kv *drivers.KVCreator, id address.Address, game *ct.Game, meta *ct.GameMeta) {
	kv.Add(Key(id), game.Encode())
	kv.Add(MetaKey(id), types.Encode(meta))
}

//GetReceiptLog 生成 coinflip 的日志，prevStatus < 0 表示新建
func (action *Action) GetReceiptLog(id address.Address, game *ct.Game, meta *ct.GameMeta, prevStatus int32, ty int32) *types.ReceiptLog {
	r := &ct.ReceiptCoinflip{
		GameID:     id,
		Status:     int32(game.Status),
		PrevStatus: prevStatus,
		Addr:       action.fromaddr,
		Creator:    game.Creator,
		Joiner:     game.Joiner,
		Winner:     game.Winner,
		Index:      meta.Index,
		PrevIndex:  meta.PrevIndex,
	}
	return &types.ReceiptLog{Ty: ty, Log: types.Encode(r)}
}

//finish 检查托管余额，更新索引信息，保存游戏并生成收据
func (action *Action) finish(id address.Address, game *ct.Game, meta *ct.GameMeta, prevStatus int32, ty int32, receipts ...*types.Receipt) (*types.Receipt, error) {
	if err := action.checkVault(id, game); err != nil {
		return nil, err
	}
	if prevStatus >= 0 {
		meta.PrevIndex = meta.Index
	}
	meta.Index = action.GetIndex()
	meta.Txs = append(meta.Txs, common.ToHex(action.txhash))

	kv := drivers.NewKVCreator(action.db)
	var logs []*types.ReceiptLog
	for _, r := range receipts {
		if r == nil {
			continue
		}
		kv.AddList(r.KV)
		logs = append(logs, r.Logs...)
	}
	action.saveGame(kv, id, game, meta)
	logs = append(logs, action.GetReceiptLog(id, game, meta, prevStatus, ty))
	return &types.Receipt{Ty: types.ExecOk, KV: kv.KVList(), Logs: logs}, nil
}

//GameCreate 创建游戏并把押注存入托管账户
func (action *Action) GameCreate(create *ct.CoinflipCreate) (*types.Receipt, error) {
	if create.Stake == 0 || create.Stake < action.cfg.MinStake {
		clog.Error("GameCreate", "addr", action.fromaddr, "stake", create.Stake, "err", ct.ErrInvalidStake)
		return nil, ct.ErrInvalidStake
	}
	game := &ct.Game{
		Creator:        action.fromaddr,
		Stake:          create.Stake,
		CommitA:        create.Commit,
		CreatedAt:      action.now(),
		RevealDeadline: saturatingAdd(action.now(), create.DeadlineOffset),
		Status:         ct.StatusCreated,
	}
	//结算的时候要一次付出 2*stake
	if !types.CheckAmount(game.Pot()) {
		return nil, ct.ErrInvalidStake
	}
	if action.cfg.MaxDeadline > 0 && create.DeadlineOffset > action.cfg.MaxDeadline {
		return nil, ct.ErrDeadline
	}
	seed := create.Seed
	if len(seed) > maxSeedSize {
		return nil, types.ErrInvalidParam
	}
	if len(seed) == 0 {
		seed = action.txhash
	}
	gameID := address.GameAddress(action.fromaddr, seed)
	if _, err := action.db.Get(Key(gameID)); err == nil {
		clog.Error("GameCreate", "gameId", gameID, "err", "game exists")
		return nil, ct.ErrBadStatus
	}
	receipt, err := action.deposit(gameID, game.Stake)
	if err != nil {
		return nil, err
	}
	meta := &ct.GameMeta{ID: gameID, Seed: seed}
	return action.finish(gameID, game, meta, -1, ct.TyLogCoinflipCreate, receipt)
}

//GameJoin 加入游戏并押注相同的金额
func (action *Action) GameJoin(join *ct.CoinflipJoin) (*types.Receipt, error) {
	gameID := join.GameID
	game, meta, err := readGame(action.db, gameID)
	if err != nil {
		return nil, err
	}
	prevStatus := int32(game.Status)
	if err := checkTransition(game.Status, eventJoin); err != nil {
		clog.Error("GameJoin", "gameId", gameID, "status", game.Status, "err", err)
		return nil, err
	}
	if game.HasJoiner() {
		return nil, ct.ErrAlreadyJoined
	}
	receipt, err := action.deposit(gameID, game.Stake)
	if err != nil {
		return nil, err
	}
	game.Joiner = action.fromaddr
	game.CommitB = join.Commit
	if err := applyTransition(game, eventJoin); err != nil {
		return nil, err
	}
	return action.finish(gameID, game, meta, prevStatus, ct.TyLogCoinflipJoin, receipt)
}

//GameReveal 开奖，第二个开奖的交易同时计算结果
func (action *Action) GameReveal(reveal *ct.CoinflipReveal, creator bool) (*types.Receipt, error) {
	gameID := reveal.GameID
	game, meta, err := readGame(action.db, gameID)
	if err != nil {
		return nil, err
	}
	prevStatus := int32(game.Status)
	if err := checkTransition(game.Status, eventReveal); err != nil {
		clog.Error("GameReveal", "gameId", gameID, "status", game.Status, "err", err)
		return nil, err
	}
	party, commit, revealed := game.Joiner, game.CommitB, game.RevealedB
	if creator {
		party, commit, revealed = game.Creator, game.CommitA, game.RevealedA
	}
	if action.fromaddr != party {
		return nil, ct.ErrNotPlayer
	}
	if reveal.Choice > 1 {
		return nil, ct.ErrInvalidChoice
	}
	if revealed {
		return nil, ct.ErrAlreadyRevealed
	}
	if !ct.VerifyCommit(commit, reveal.Choice, reveal.Secret) {
		clog.Error("GameReveal", "gameId", gameID, "addr", action.fromaddr, "err", ct.ErrBadReveal)
		return nil, ct.ErrBadReveal
	}
	if creator {
		game.ChoiceA, game.SecretA, game.RevealedA = reveal.Choice, reveal.Secret, true
	} else {
		game.ChoiceB, game.SecretB, game.RevealedB = reveal.Choice, reveal.Secret, true
	}
	if err := applyTransition(game, eventReveal); err != nil {
		return nil, err
	}
	ty := int32(ct.TyLogCoinflipReveal)
	if game.RevealedA && game.RevealedB {
		if err := computeOutcome(gameID, game); err != nil {
			return nil, err
		}
		ty = ct.TyLogCoinflipReady
	}
	return action.finish(gameID, game, meta, prevStatus, ty)
}

func saturatingAdd(a, b uint64) uint64 {
	if a+b < a {
		return ^uint64(0)
	}
	return a + b
}
