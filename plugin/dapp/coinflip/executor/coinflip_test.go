// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"bytes"
	"testing"

	"github.com/33cn/coinflip/common/address"
	dbm "github.com/33cn/coinflip/common/db"
	executor "github.com/33cn/coinflip/executor"
	ct "github.com/33cn/coinflip/plugin/dapp/coinflip/types"
	"github.com/33cn/coinflip/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	creator  = address.FromLabel("creator")
	joiner   = address.FromLabel("joiner")
	stranger = address.FromLabel("stranger")
	funds    = 1000 * types.Coin
)

func init() {
	Init(ct.CoinflipX, nil)
}

type testEnv struct {
	t     *testing.T
	db    dbm.DB
	exec  *executor.Executor
	nonce int64
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := dbm.NewDB("coinflip", dbm.MemDBBackendStr, "", 0)
	require.NoError(t, err)
	exec, err := executor.New(nil, db)
	require.NoError(t, err)
	for _, addr := range []address.Address{creator, joiner, stranger} {
		_, err := exec.Genesis(addr, funds)
		require.NoError(t, err)
	}
	return &testEnv{t: t, db: db, exec: exec}
}

func (env *testEnv) send(from address.Address, action *ct.CoinflipAction) (*types.TxResult, error) {
	env.nonce++
	return env.exec.Exec(ct.NewTx(from, action, env.nonce))
}

func (env *testEnv) mustSend(from address.Address, action *ct.CoinflipAction) *types.TxResult {
	result, err := env.send(from, action)
	require.NoError(env.t, err)
	return result
}

func (env *testEnv) game(id address.Address) *ct.Game {
	reply, err := env.exec.Query(ct.CoinflipX, ct.FuncNameGetGame, types.Encode(&ct.ReqCoinflipGame{GameID: id}))
	require.NoError(env.t, err)
	return reply.(*ct.ReplyCoinflipGame).Game
}

func (env *testEnv) balance(addr address.Address) uint64 {
	return env.exec.GetBalance(addr)
}

func (env *testEnv) vault(id address.Address) uint64 {
	reply, err := env.exec.Query(ct.CoinflipX, ct.FuncNameGetVault, types.Encode(&ct.ReqCoinflipGame{GameID: id}))
	require.NoError(env.t, err)
	return reply.(*ct.ReplyCoinflipVault).Balance
}

//数据库中除了执行器自己的记录以外的全部内容
func (env *testEnv) dump() map[string][]byte {
	it := env.db.Iterator(nil, false)
	defer it.Close()
	all := make(map[string][]byte)
	for it.Rewind(); it.Valid(); it.Next() {
		all[string(it.Key())] = it.ValueCopy()
	}
	return all
}

type player struct {
	choice uint8
	secret ct.Hash
}

func newPlayer(choice uint8, secret string) player {
	s, err := ct.SecretFromString(secret)
	if err != nil {
		panic(err)
	}
	return player{choice: choice, secret: s}
}

func (p player) commit() ct.Hash {
	return ct.Commit(p.choice, p.secret)
}

//创建并加入一局游戏
func (env *testEnv) setup(seed string, stake, offset uint64, a, b player) address.Address {
	id := address.GameAddress(creator, []byte(seed))
	env.mustSend(creator, ct.CreateAction(stake, a.commit(), offset, []byte(seed)))
	env.mustSend(joiner, ct.JoinAction(id, b.commit()))
	return id
}

func TestScenarioReveal(t *testing.T) {
	env := newTestEnv(t)
	a, b := newPlayer(0, "sA"), newPlayer(1, "sB")
	id := env.setup("s1", 100, 10, a, b)
	assert.Equal(t, ct.StatusJoined, env.game(id).Status)
	assert.Equal(t, uint64(200), env.vault(id))
	assert.Equal(t, funds-100, env.balance(creator))

	env.mustSend(creator, ct.RevealAction(id, true, 0, a.secret))
	assert.Equal(t, ct.StatusRevealing, env.game(id).Status)

	env.mustSend(joiner, ct.RevealAction(id, false, 1, b.secret))
	g := env.game(id)
	assert.Equal(t, ct.StatusReadyToFinalize, g.Status)
	coin := ct.CoinFlip(a.secret, b.secret, id)
	assert.Equal(t, coin, g.Coin)
	winner := joiner
	if coin == 0 {
		winner = creator
	}
	assert.Equal(t, winner, g.Winner)

	env.mustSend(stranger, ct.FinalizeAction(id))
	g = env.game(id)
	assert.Equal(t, ct.StatusFinalized, g.Status)
	assert.Equal(t, uint64(0), env.vault(id))
	assert.Equal(t, funds+100, env.balance(winner))
	assert.Equal(t, 3*funds, env.balance(creator)+env.balance(joiner)+env.balance(stranger))

	_, err := env.send(creator, ct.FinalizeAction(id))
	assert.Equal(t, ct.ErrBadStatus, err)
}

func TestScenarioBadReveal(t *testing.T) {
	env := newTestEnv(t)
	a, b := newPlayer(1, "sA"), newPlayer(1, "sB")
	id := env.setup("s2", 100, 10, a, b)
	before := env.dump()
	_, err := env.send(creator, ct.RevealAction(id, true, 0, a.secret))
	assert.Equal(t, ct.ErrBadReveal, err)
	assert.Equal(t, ct.StatusJoined, env.game(id).Status)
	assert.Equal(t, before, env.dump())
}

func TestScenarioForfeitCreator(t *testing.T) {
	env := newTestEnv(t)
	a, b := newPlayer(0, "sA"), newPlayer(1, "sB")
	id := env.setup("s3", 100, 10, a, b)
	env.mustSend(creator, ct.RevealAction(id, true, 0, a.secret))

	_, err := env.send(stranger, ct.ForfeitAction(id))
	assert.Equal(t, ct.ErrTooEarly, err)

	_, err = env.exec.Advance(10)
	require.NoError(t, err)
	env.mustSend(stranger, ct.ForfeitAction(id))
	g := env.game(id)
	assert.Equal(t, ct.StatusFinalized, g.Status)
	assert.Equal(t, creator, g.Winner)
	assert.Equal(t, funds+100, env.balance(creator))
	assert.Equal(t, funds-100, env.balance(joiner))
	assert.Equal(t, uint64(0), env.vault(id))

	_, err = env.send(creator, ct.FinalizeAction(id))
	assert.Equal(t, ct.ErrBadStatus, err)
	_, err = env.send(creator, ct.ForfeitAction(id))
	assert.Equal(t, ct.ErrBadStatus, err)
}

func TestForfeitJoiner(t *testing.T) {
	env := newTestEnv(t)
	a, b := newPlayer(0, "sA"), newPlayer(1, "sB")
	id := env.setup("joiner", 100, 5, a, b)
	env.mustSend(joiner, ct.RevealAction(id, false, 1, b.secret))
	_, err := env.exec.Advance(5)
	require.NoError(t, err)
	env.mustSend(creator, ct.ForfeitAction(id))
	g := env.game(id)
	assert.Equal(t, joiner, g.Winner)
	assert.Equal(t, funds+100, env.balance(joiner))
	assert.Equal(t, funds-100, env.balance(creator))
}

func TestScenarioForfeitRefund(t *testing.T) {
	env := newTestEnv(t)
	a, b := newPlayer(0, "sA"), newPlayer(1, "sB")
	id := env.setup("s4", 100, 3, a, b)
	_, err := env.exec.Advance(3)
	require.NoError(t, err)
	result := env.mustSend(stranger, ct.ForfeitAction(id))
	g := env.game(id)
	assert.Equal(t, ct.StatusFinalized, g.Status)
	assert.True(t, g.Winner.IsZero())
	assert.Equal(t, funds, env.balance(creator))
	assert.Equal(t, funds, env.balance(joiner))
	assert.Equal(t, uint64(0), env.vault(id))

	//两笔独立的退款
	payouts := 0
	for _, l := range result.Receipt.Logs {
		if l.Ty == types.TyLogPayout {
			payouts++
		}
	}
	assert.Equal(t, 4, payouts)
}

func TestScenarioAlreadyRevealed(t *testing.T) {
	env := newTestEnv(t)
	a, b := newPlayer(0, "sA"), newPlayer(1, "sB")
	id := env.setup("s5", 100, 10, a, b)
	env.mustSend(creator, ct.RevealAction(id, true, 0, a.secret))
	for _, choice := range []uint8{0, 1} {
		_, err := env.send(creator, ct.RevealAction(id, true, choice, b.secret))
		assert.Equal(t, ct.ErrAlreadyRevealed, err)
	}
	_, err := env.send(creator, ct.RevealAction(id, true, 0, a.secret))
	assert.Equal(t, ct.ErrAlreadyRevealed, err)
}

func TestOutcomeOrderIndependent(t *testing.T) {
	for _, choices := range [][2]uint8{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
		a, b := newPlayer(choices[0], "order-a"), newPlayer(choices[1], "order-b")

		env1 := newTestEnv(t)
		id1 := env1.setup("order", 50, 10, a, b)
		env1.mustSend(creator, ct.RevealAction(id1, true, a.choice, a.secret))
		env1.mustSend(joiner, ct.RevealAction(id1, false, b.choice, b.secret))

		env2 := newTestEnv(t)
		id2 := env2.setup("order", 50, 10, a, b)
		env2.mustSend(joiner, ct.RevealAction(id2, false, b.choice, b.secret))
		env2.mustSend(creator, ct.RevealAction(id2, true, a.choice, a.secret))

		require.Equal(t, id1, id2)
		g1, g2 := env1.game(id1), env2.game(id2)
		assert.Equal(t, g1.Coin, g2.Coin)
		assert.Equal(t, g1.Winner, g2.Winner)
		assert.Equal(t, ct.StatusReadyToFinalize, g2.Status)
	}
}

func TestCreateGuards(t *testing.T) {
	env := newTestEnv(t)
	a := newPlayer(0, "sA")
	before := env.dump()

	_, err := env.send(creator, ct.CreateAction(0, a.commit(), 10, nil))
	assert.Equal(t, ct.ErrInvalidStake, err)
	_, err = env.send(creator, ct.CreateAction(funds+1, a.commit(), 10, nil))
	assert.Equal(t, ct.ErrInvalidStake, err)
	_, err = env.send(creator, ct.CreateAction(types.MaxCoin/2, a.commit(), 10, nil))
	assert.Equal(t, ct.ErrInvalidStake, err)
	_, err = env.send(creator, ct.CreateAction(1, a.commit(), 10, bytes.Repeat([]byte{1}, 65)))
	assert.Equal(t, types.ErrInvalidParam, err)
	assert.Equal(t, before, env.dump())

	env.mustSend(creator, ct.CreateAction(10, a.commit(), 10, []byte("dup")))
	_, err = env.send(creator, ct.CreateAction(10, a.commit(), 11, []byte("dup")))
	assert.Equal(t, ct.ErrBadStatus, err)

	//没有 seed 时用交易哈希
	result := env.mustSend(creator, ct.CreateAction(10, a.commit(), 10, nil))
	id := address.GameAddress(creator, result.Hash)
	g := env.game(id)
	assert.Equal(t, ct.StatusCreated, g.Status)
	assert.Equal(t, uint64(result.Height), g.CreatedAt)
	assert.Equal(t, uint64(result.Height)+10, g.RevealDeadline)
	assert.Equal(t, uint64(10), env.vault(id))
}

func TestCreateDeadlineSaturates(t *testing.T) {
	env := newTestEnv(t)
	env.mustSend(creator, ct.CreateAction(10, newPlayer(0, "sA").commit(), ^uint64(0), []byte("sat")))
	g := env.game(address.GameAddress(creator, []byte("sat")))
	assert.Equal(t, ^uint64(0), g.RevealDeadline)
}

func TestJoinGuards(t *testing.T) {
	env := newTestEnv(t)
	a, b := newPlayer(0, "sA"), newPlayer(1, "sB")
	id := address.GameAddress(creator, []byte("join"))

	_, err := env.send(joiner, ct.JoinAction(id, b.commit()))
	assert.Equal(t, ct.ErrGameNotFound, err)

	env.mustSend(creator, ct.CreateAction(funds, a.commit(), 10, []byte("join")))
	_, err = env.exec.Genesis(address.FromLabel("poor"), 1)
	require.NoError(t, err)
	before := env.dump()
	_, err = env.send(address.FromLabel("poor"), ct.JoinAction(id, b.commit()))
	assert.Equal(t, ct.ErrInvalidStake, err)
	assert.Equal(t, before, env.dump())

	env.mustSend(joiner, ct.JoinAction(id, b.commit()))
	_, err = env.send(stranger, ct.JoinAction(id, b.commit()))
	assert.Equal(t, ct.ErrBadStatus, err)
	g := env.game(id)
	assert.Equal(t, joiner, g.Joiner)
	assert.Equal(t, b.commit(), g.CommitB)
}

func TestRevealGuards(t *testing.T) {
	env := newTestEnv(t)
	a, b := newPlayer(0, "sA"), newPlayer(1, "sB")
	id := address.GameAddress(creator, []byte("guards"))
	env.mustSend(creator, ct.CreateAction(100, a.commit(), 10, []byte("guards")))

	//还没有加入
	_, err := env.send(creator, ct.RevealAction(id, true, 0, a.secret))
	assert.Equal(t, ct.ErrBadStatus, err)

	env.mustSend(joiner, ct.JoinAction(id, b.commit()))
	before := env.dump()
	cases := []struct {
		from    address.Address
		creator bool
		choice  uint8
		secret  ct.Hash
		err     error
	}{
		{joiner, true, 0, a.secret, ct.ErrNotPlayer},
		{creator, false, 1, b.secret, ct.ErrNotPlayer},
		{stranger, false, 1, b.secret, ct.ErrNotPlayer},
		{creator, true, 2, a.secret, ct.ErrInvalidChoice},
		{joiner, false, 0, b.secret, ct.ErrBadReveal},
		{joiner, false, 1, a.secret, ct.ErrBadReveal},
	}
	for i, c := range cases {
		_, err := env.send(c.from, ct.RevealAction(id, c.creator, c.choice, c.secret))
		assert.Equal(t, c.err, err, "case %d", i)
	}
	assert.Equal(t, before, env.dump())
}

func TestFinalizeGuards(t *testing.T) {
	env := newTestEnv(t)
	a, b := newPlayer(0, "sA"), newPlayer(1, "sB")
	id := env.setup("fin", 100, 10, a, b)
	_, err := env.send(creator, ct.FinalizeAction(id))
	assert.Equal(t, ct.ErrBadStatus, err)
	env.mustSend(creator, ct.RevealAction(id, true, 0, a.secret))
	_, err = env.send(creator, ct.FinalizeAction(id))
	assert.Equal(t, ct.ErrBadStatus, err)
	_, err = env.send(creator, ct.FinalizeAction(address.FromLabel("nogame")))
	assert.Equal(t, ct.ErrGameNotFound, err)
}

func TestForfeitGuards(t *testing.T) {
	env := newTestEnv(t)
	a, b := newPlayer(0, "sA"), newPlayer(1, "sB")
	id := address.GameAddress(creator, []byte("ff"))
	env.mustSend(creator, ct.CreateAction(100, a.commit(), 0, []byte("ff")))
	_, err := env.send(stranger, ct.ForfeitAction(id))
	assert.Equal(t, ct.ErrBadStatus, err)

	env.mustSend(joiner, ct.JoinAction(id, b.commit()))
	env.mustSend(creator, ct.RevealAction(id, true, 0, a.secret))
	env.mustSend(joiner, ct.RevealAction(id, false, 1, b.secret))
	//双方都已开奖，只能结算
	_, err = env.send(stranger, ct.ForfeitAction(id))
	assert.Equal(t, ct.ErrBadStatus, err)
	env.mustSend(stranger, ct.FinalizeAction(id))
}

func TestNoDoublePayout(t *testing.T) {
	env := newTestEnv(t)
	a, b := newPlayer(1, "sA"), newPlayer(0, "sB")
	id := env.setup("double", 100, 1, a, b)
	env.mustSend(creator, ct.RevealAction(id, true, 1, a.secret))
	env.mustSend(joiner, ct.RevealAction(id, false, 0, b.secret))
	env.mustSend(joiner, ct.FinalizeAction(id))
	_, err := env.exec.Advance(10)
	require.NoError(t, err)
	_, err = env.send(joiner, ct.ForfeitAction(id))
	assert.Equal(t, ct.ErrBadStatus, err)
	_, err = env.send(joiner, ct.FinalizeAction(id))
	assert.Equal(t, ct.ErrBadStatus, err)
	assert.Equal(t, 2*funds, env.balance(creator)+env.balance(joiner))
	assert.Equal(t, uint64(0), env.vault(id))
}

func TestSelfJoin(t *testing.T) {
	env := newTestEnv(t)
	a, b := newPlayer(0, "sA"), newPlayer(1, "sB")
	id := address.GameAddress(creator, []byte("self"))
	env.mustSend(creator, ct.CreateAction(100, a.commit(), 2, []byte("self")))
	env.mustSend(creator, ct.JoinAction(id, b.commit()))
	assert.Equal(t, uint64(200), env.vault(id))
	_, err := env.exec.Advance(2)
	require.NoError(t, err)
	env.mustSend(stranger, ct.ForfeitAction(id))
	assert.Equal(t, funds, env.balance(creator))
}

//每一步之后 vault + 已付出 == 已存入
func TestConservation(t *testing.T) {
	env := newTestEnv(t)
	a, b := newPlayer(0, "cA"), newPlayer(0, "cB")
	id := address.GameAddress(creator, []byte("cons"))
	total := func() uint64 {
		return env.balance(creator) + env.balance(joiner) + env.vault(id)
	}
	steps := []struct {
		from   address.Address
		action *ct.CoinflipAction
		vault  uint64
	}{
		{creator, ct.CreateAction(70, a.commit(), 10, []byte("cons")), 70},
		{joiner, ct.JoinAction(id, b.commit()), 140},
		{joiner, ct.RevealAction(id, false, 0, b.secret), 140},
		{creator, ct.RevealAction(id, true, 0, a.secret), 140},
		{stranger, ct.FinalizeAction(id), 0},
	}
	for _, s := range steps {
		env.mustSend(s.from, s.action)
		assert.Equal(t, s.vault, env.vault(id))
		assert.Equal(t, 2*funds, total())
	}
}

//主币发到托管地址不算押注，游戏照常结束
func TestGenesisToVault(t *testing.T) {
	env := newTestEnv(t)
	a, b := newPlayer(0, "vA"), newPlayer(1, "vB")
	id := env.setup("vault", 100, 10, a, b)
	vault := address.VaultAddress(id)
	_, err := env.exec.Genesis(vault, 1)
	require.NoError(t, err)
	_, err = env.exec.Transfer(stranger, vault, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(200), env.vault(id))
	assert.Equal(t, uint64(6), env.balance(vault))

	env.mustSend(creator, ct.RevealAction(id, true, 0, a.secret))
	env.mustSend(joiner, ct.RevealAction(id, false, 1, b.secret))
	env.mustSend(stranger, ct.FinalizeAction(id))
	assert.Equal(t, ct.StatusFinalized, env.game(id).Status)
	assert.Equal(t, uint64(0), env.vault(id))
	assert.Equal(t, 2*funds, env.balance(creator)+env.balance(joiner))

	//forfeit 路径
	id = env.setup("vault2", 100, 1, a, b)
	_, err = env.exec.Genesis(address.VaultAddress(id), 1)
	require.NoError(t, err)
	_, err = env.exec.Advance(2)
	require.NoError(t, err)
	env.mustSend(stranger, ct.ForfeitAction(id))
	assert.Equal(t, uint64(0), env.vault(id))
	assert.Equal(t, 2*funds, env.balance(creator)+env.balance(joiner))
}

func TestListAndCount(t *testing.T) {
	env := newTestEnv(t)
	a, b := newPlayer(0, "sA"), newPlayer(1, "sB")
	ids := []address.Address{}
	for _, seed := range []string{"l1", "l2", "l3"} {
		env.mustSend(creator, ct.CreateAction(10, a.commit(), 10, []byte(seed)))
		ids = append(ids, address.GameAddress(creator, []byte(seed)))
	}
	env.mustSend(joiner, ct.JoinAction(ids[1], b.commit()))

	count := func(status ct.Status, addr address.Address) int64 {
		reply, err := env.exec.Query(ct.CoinflipX, ct.FuncNameCountGames, types.Encode(&ct.ReqCoinflipCount{Status: int32(status), Addr: addr}))
		require.NoError(t, err)
		return reply.(*ct.ReplyCoinflipCount).Count
	}
	assert.Equal(t, int64(2), count(ct.StatusCreated, address.Zero))
	assert.Equal(t, int64(1), count(ct.StatusJoined, address.Zero))
	assert.Equal(t, int64(1), count(ct.StatusJoined, joiner))
	assert.Equal(t, int64(2), count(ct.StatusCreated, creator))
	assert.Equal(t, int64(0), count(ct.StatusCreated, joiner))

	list := func(req *ct.ReqCoinflipList) []*ct.ReplyCoinflipGame {
		reply, err := env.exec.Query(ct.CoinflipX, ct.FuncNameListGames, types.Encode(req))
		require.NoError(t, err)
		return reply.(*ct.ReplyCoinflipList).Games
	}
	games := list(&ct.ReqCoinflipList{Status: int32(ct.StatusCreated), Direction: ct.ListDESC})
	require.Len(t, games, 2)
	assert.Equal(t, ids[2], games[0].GameID)
	assert.Equal(t, ids[0], games[1].GameID)

	games = list(&ct.ReqCoinflipList{Status: int32(ct.StatusCreated), Direction: ct.ListASC, Count: 1})
	require.Len(t, games, 1)
	assert.Equal(t, ids[0], games[0].GameID)
	games = list(&ct.ReqCoinflipList{Status: int32(ct.StatusCreated), Direction: ct.ListASC, Index: games[0].Meta.Index})
	require.Len(t, games, 1)
	assert.Equal(t, ids[2], games[0].GameID)

	games = list(&ct.ReqCoinflipList{Status: int32(ct.StatusJoined), Addr: creator})
	require.Len(t, games, 1)
	assert.Equal(t, ids[1], games[0].GameID)
	assert.Equal(t, uint64(20), games[0].VaultBalance)

	assert.Empty(t, list(&ct.ReqCoinflipList{Status: int32(ct.StatusFinalized)}))

	_, err := env.exec.Query(ct.CoinflipX, ct.FuncNameListGames, types.Encode(&ct.ReqCoinflipList{Status: 5}))
	assert.Equal(t, ct.ErrInvalidStatus, err)
	_, err = env.exec.Query(ct.CoinflipX, ct.FuncNameListGames, types.Encode(&ct.ReqCoinflipList{Direction: 3}))
	assert.Equal(t, types.ErrInvalidParam, err)
}

func TestIndexFollowsStatus(t *testing.T) {
	env := newTestEnv(t)
	a, b := newPlayer(0, "sA"), newPlayer(1, "sB")
	id := env.setup("idx", 100, 10, a, b)
	env.mustSend(creator, ct.RevealAction(id, true, 0, a.secret))
	env.mustSend(joiner, ct.RevealAction(id, false, 1, b.secret))
	env.mustSend(joiner, ct.FinalizeAction(id))
	for _, st := range allStatus {
		reply, err := env.exec.Query(ct.CoinflipX, ct.FuncNameCountGames, types.Encode(&ct.ReqCoinflipCount{Status: int32(st), Addr: joiner}))
		require.NoError(t, err)
		expect := int64(0)
		if st == ct.StatusFinalized {
			expect = 1
		}
		assert.Equal(t, expect, reply.(*ct.ReplyCoinflipCount).Count, st.String())
	}
}

func TestQueryRoundAndVault(t *testing.T) {
	env := newTestEnv(t)
	a, b := newPlayer(1, "rA"), newPlayer(0, "rB")
	id := env.setup("round", 100, 10, a, b)

	reply, err := env.exec.Query(ct.CoinflipX, ct.FuncNameGetVault, types.Encode(&ct.ReqCoinflipGame{GameID: id}))
	require.NoError(t, err)
	assert.Equal(t, uint64(200), reply.(*ct.ReplyCoinflipVault).Balance)
	assert.Equal(t, address.VaultAddress(id), reply.(*ct.ReplyCoinflipVault).Vault)

	_, err = env.exec.Query(ct.CoinflipX, ct.FuncNameGetRound, types.Encode(&ct.ReqCoinflipGame{GameID: id}))
	assert.Equal(t, ct.ErrBadStatus, err)

	env.mustSend(creator, ct.RevealAction(id, true, 1, a.secret))
	env.mustSend(joiner, ct.RevealAction(id, false, 0, b.secret))
	env.mustSend(joiner, ct.FinalizeAction(id))
	reply, err = env.exec.Query(ct.CoinflipX, ct.FuncNameGetRound, types.Encode(&ct.ReqCoinflipGame{GameID: id}))
	require.NoError(t, err)
	round := reply.(*ct.ReplyCoinflipRound)
	assert.True(t, round.Verdict.Valid())
	assert.Len(t, round.Round.Txs, 5)
	assert.Equal(t, creator, round.Round.Creator)

	_, err = env.exec.Query(ct.CoinflipX, ct.FuncNameGetGame, types.Encode(&ct.ReqCoinflipGame{GameID: stranger}))
	assert.Equal(t, ct.ErrGameNotFound, err)
	_, err = env.exec.Query(ct.CoinflipX, "Unknown", nil)
	assert.Equal(t, types.ErrQueryNotSupport, err)
}

func TestUnknownAction(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.send(creator, &ct.CoinflipAction{Ty: ct.CoinflipActionJoin})
	assert.Equal(t, types.ErrActionNotSupport, err)
	_, err = env.send(creator, &ct.CoinflipAction{Ty: 99})
	assert.Equal(t, types.ErrActionNotSupport, err)
}

func TestSubConfig(t *testing.T) {
	cfg, err := parseConfig([]byte(`{"minStake":50,"maxDeadline":20,"defaultCount":5,"maxCount":10}`))
	require.NoError(t, err)
	assert.Equal(t, uint64(50), cfg.MinStake)
	assert.Equal(t, int32(10), cfg.MaxCount)
	_, err = parseConfig([]byte(`{"defaultCount":50,"maxCount":10}`))
	assert.Equal(t, types.ErrInvalidParam, err)
	_, err = parseConfig([]byte(`{`))
	assert.Equal(t, types.ErrDecode, err)

	db, err := dbm.NewDB("coinflip", dbm.MemDBBackendStr, "", 0)
	require.NoError(t, err)
	sub := &types.ConfigSubModule{Exec: map[string][]byte{ct.CoinflipX: []byte(`{"minStake":50,"maxDeadline":20,"defaultCount":5,"maxCount":10}`)}}
	exec, err := executor.New(sub, db)
	require.NoError(t, err)
	_, err = exec.Genesis(creator, funds)
	require.NoError(t, err)
	a := newPlayer(0, "sA")
	_, err = exec.Exec(ct.NewTx(creator, ct.CreateAction(49, a.commit(), 10, nil), 1))
	assert.Equal(t, ct.ErrInvalidStake, err)
	_, err = exec.Exec(ct.NewTx(creator, ct.CreateAction(50, a.commit(), 21, nil), 2))
	assert.Equal(t, ct.ErrDeadline, err)
	_, err = exec.Exec(ct.NewTx(creator, ct.CreateAction(50, a.commit(), 20, nil), 3))
	assert.NoError(t, err)
}

func TestExecLocalIgnoresFailedReceipt(t *testing.T) {
	c := newCoinflip().(*Coinflip)
	set, err := c.ExecLocal(nil, &types.ReceiptData{Ty: types.ExecErr}, 0)
	require.NoError(t, err)
	assert.Empty(t, set.KV)
}
