// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/coinflip/common/address"
)

//裁判的结论
const (
	VerdictValid = "VALID"
	VerdictCheat = "CHEAT"
)

//RoundBundle 一局游戏的证据，可以离线重新验证
type RoundBundle struct {
	Creator        address.Address `json:"creator"`
	Joiner         address.Address `json:"joiner"`
	Game           address.Address `json:"game"`
	Vault          address.Address `json:"vault"`
	Stake          uint64          `json:"stake"`
	CreatedAt      uint64          `json:"createdAt"`
	RevealDeadline uint64          `json:"revealDeadline"`
	CommitA        Hash            `json:"commitA"`
	CommitB        Hash            `json:"commitB"`
	RevealedA      bool            `json:"revealedA"`
	RevealedB      bool            `json:"revealedB"`
	ChoiceA        uint8           `json:"choiceA"`
	ChoiceB        uint8           `json:"choiceB"`
	SecretA        Hash            `json:"secretA"`
	SecretB        Hash            `json:"secretB"`
	Coin           uint8           `json:"coin"`
	Winner         address.Address `json:"winner"`
	Status         Status          `json:"status"`
	Txs            []string        `json:"txs"`
	Timestamp      int64           `json:"timestamp"`
}

//RoundVerdict 验证结果
type RoundVerdict struct {
	Game    address.Address `json:"game"`
	Verdict string          `json:"verdict"`
	Reasons []string        `json:"reasons,omitempty"`
}

//Valid 是否通过
func (v *RoundVerdict) Valid() bool {
	return v.Verdict == VerdictValid
}

func (v *RoundVerdict) cheat(reason string) {
	v.Verdict = VerdictCheat
	v.Reasons = append(v.Reasons, reason)
}

//ExportRound 导出证据
func ExportRound(gameID address.Address, g *Game, txs []string, timestamp int64) *RoundBundle {
	return &RoundBundle{
		Creator:        g.Creator,
		Joiner:         g.Joiner,
		Game:           gameID,
		Vault:          address.VaultAddress(gameID),
		Stake:          g.Stake,
		CreatedAt:      g.CreatedAt,
		RevealDeadline: g.RevealDeadline,
		CommitA:        g.CommitA,
		CommitB:        g.CommitB,
		RevealedA:      g.RevealedA,
		RevealedB:      g.RevealedB,
		ChoiceA:        g.ChoiceA,
		ChoiceB:        g.ChoiceB,
		SecretA:        g.SecretA,
		SecretB:        g.SecretB,
		Coin:           g.Coin,
		Winner:         g.Winner,
		Status:         g.Status,
		Txs:            txs,
		Timestamp:      timestamp,
	}
}

//ToGame 从证据恢复游戏记录
func (b *RoundBundle) ToGame() *Game {
	return &Game{
		Creator:        b.Creator,
		Joiner:         b.Joiner,
		Stake:          b.Stake,
		CommitA:        b.CommitA,
		CommitB:        b.CommitB,
		RevealedA:      b.RevealedA,
		RevealedB:      b.RevealedB,
		ChoiceA:        b.ChoiceA,
		ChoiceB:        b.ChoiceB,
		SecretA:        b.SecretA,
		SecretB:        b.SecretB,
		CreatedAt:      b.CreatedAt,
		RevealDeadline: b.RevealDeadline,
		Coin:           b.Coin,
		Winner:         b.Winner,
		Status:         b.Status,
	}
}

//VerifyRound 根据公开的秘密重新计算承诺和结果。
//只能验证已经出结果的游戏，超时没收的游戏只验证已经开奖的一方。
func VerifyRound(gameID address.Address, g *Game) (*RoundVerdict, error) {
	if g.Status != StatusReadyToFinalize && g.Status != StatusFinalized {
		return nil, ErrBadStatus
	}
	v := &RoundVerdict{Game: gameID, Verdict: VerdictValid}
	if !g.HasJoiner() {
		v.cheat("settled without joiner")
		return v, nil
	}
	if g.RevealedA && !VerifyCommit(g.CommitA, g.ChoiceA, g.SecretA) {
		v.cheat("creator reveal does not match commitA")
	}
	if g.RevealedB && !VerifyCommit(g.CommitB, g.ChoiceB, g.SecretB) {
		v.cheat("joiner reveal does not match commitB")
	}
	if (g.RevealedA && g.ChoiceA > 1) || (g.RevealedB && g.ChoiceB > 1) {
		v.cheat("choice out of range")
	}
	switch {
	case g.RevealedA && g.RevealedB:
		expect := g.Clone()
		expect.Coin = CoinFlip(g.SecretA, g.SecretB, gameID)
		if expect.Coin != g.Coin {
			v.cheat("coin does not match secrets")
		}
		if Winner(expect) != g.Winner {
			v.cheat("winner does not match coin")
		}
	case g.Status != StatusFinalized:
		v.cheat("outcome computed before both reveals")
	case g.RevealedA:
		if g.Winner != g.Creator {
			v.cheat("forfeit winner is not creator")
		}
	case g.RevealedB:
		if g.Winner != g.Joiner {
			v.cheat("forfeit winner is not joiner")
		}
	default:
		if !g.Winner.IsZero() {
			v.cheat("refunded round has a winner")
		}
	}
	return v, nil
}
