// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands coinflip 的命令行
package commands

import (
	"fmt"
	"os"

	"github.com/33cn/coinflip/client"
	"github.com/33cn/coinflip/common/address"
	ct "github.com/33cn/coinflip/plugin/dapp/coinflip/types"
	commandtypes "github.com/33cn/coinflip/system/dapp/commands/types"
	"github.com/33cn/coinflip/types"
	"github.com/spf13/cobra"
)

func init() {
	commandtypes.RegisterLogName(ct.TyLogCoinflipCreate, "LogCoinflipCreate")
	commandtypes.RegisterLogName(ct.TyLogCoinflipJoin, "LogCoinflipJoin")
	commandtypes.RegisterLogName(ct.TyLogCoinflipReveal, "LogCoinflipReveal")
	commandtypes.RegisterLogName(ct.TyLogCoinflipReady, "LogCoinflipReady")
	commandtypes.RegisterLogName(ct.TyLogCoinflipForfeit, "LogCoinflipForfeit")
	commandtypes.RegisterLogName(ct.TyLogCoinflipFinalize, "LogCoinflipFinalize")
}

// Cmd coinflip client command
func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coinflip",
		Short: "Coinflip game management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		CommitCmd(),
		CreateCmd(),
		JoinCmd(),
		RevealCmd(),
		ForfeitCmd(),
		FinalizeCmd(),
		GameCmd(),
		ListCmd(),
		CountCmd(),
		VaultCmd(),
		ExportCmd(),
		VerifyCmd(),
	)
	return cmd
}

// CreateCmd 创建游戏
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a coinflip game and deposit the stake",
		Run:   coinflipCreate,
	}
	addCreateFlags(cmd)
	return cmd
}

func addCreateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("from", "f", "", "creator address or label")
	cmd.MarkFlagRequired("from")
	cmd.Flags().StringP("amount", "a", "", "stake of each player, e.g. 10 or 0.5")
	cmd.MarkFlagRequired("amount")
	cmd.Flags().StringP("commit", "c", "", "commitment of the creator, see the commit command")
	cmd.MarkFlagRequired("commit")
	cmd.Flags().Uint64P("deadline", "d", 100, "reveal deadline in blocks after creation")
	cmd.Flags().StringP("seed", "s", "", "seed of the game address, random if empty")
}

func coinflipCreate(cmd *cobra.Command, args []string) {
	conf, _ := cmd.Flags().GetString("conf")
	fromStr, _ := cmd.Flags().GetString("from")
	amountStr, _ := cmd.Flags().GetString("amount")
	commitStr, _ := cmd.Flags().GetString("commit")
	deadline, _ := cmd.Flags().GetUint64("deadline")
	seedStr, _ := cmd.Flags().GetString("seed")

	from, err := commandtypes.ParseAddress(fromStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	stake, err := commandtypes.ParseCoins(amountStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	commit, err := ct.HashFromHex(commitStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	seed := []byte(seedStr)
	if len(seed) == 0 {
		seed = ct.NewSeed()
	}
	gameID := address.GameAddress(from, seed)
	tx := ct.NewTx(from, ct.CreateAction(stake, commit, deadline, seed), commandtypes.Nonce())
	sendTx(conf, tx, &GameResult{GameID: gameID, Vault: address.VaultAddress(gameID)})
}

// JoinCmd 加入游戏
func JoinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join a coinflip game and deposit the matching stake",
		Run:   coinflipJoin,
	}
	addJoinFlags(cmd)
	return cmd
}

func addJoinFlags(cmd *cobra.Command) {
	addFromGameFlags(cmd)
	cmd.Flags().StringP("commit", "c", "", "commitment of the joiner, see the commit command")
	cmd.MarkFlagRequired("commit")
}

func coinflipJoin(cmd *cobra.Command, args []string) {
	conf, _ := cmd.Flags().GetString("conf")
	commitStr, _ := cmd.Flags().GetString("commit")
	from, gameID, err := parseFromGame(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	commit, err := ct.HashFromHex(commitStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	sendTx(conf, ct.NewTx(from, ct.JoinAction(gameID, commit), commandtypes.Nonce()), nil)
}

// RevealCmd 公开选择和秘密
func RevealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reveal",
		Short: "Reveal the choice and secret behind a commitment",
		Run:   coinflipReveal,
	}
	addRevealFlags(cmd)
	return cmd
}

func addRevealFlags(cmd *cobra.Command) {
	addFromGameFlags(cmd)
	cmd.Flags().Uint8P("choice", "c", 0, "choice, 0 or 1")
	cmd.MarkFlagRequired("choice")
	cmd.Flags().StringP("secret", "s", "", "secret, 64 hex chars or a short string")
	cmd.MarkFlagRequired("secret")
	cmd.Flags().StringP("role", "r", "", "creator or joiner, detected from the game if empty")
}

func coinflipReveal(cmd *cobra.Command, args []string) {
	conf, _ := cmd.Flags().GetString("conf")
	choice, _ := cmd.Flags().GetUint8("choice")
	secretStr, _ := cmd.Flags().GetString("secret")
	role, _ := cmd.Flags().GetString("role")
	from, gameID, err := parseFromGame(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	secret, err := ct.SecretFromString(secretStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	ctx := client.NewCtx(conf, func(c *client.Client) (interface{}, error) {
		creator, err := revealRole(c, role, from, gameID)
		if err != nil {
			return nil, err
		}
		tx := ct.NewTx(from, ct.RevealAction(gameID, creator, choice, secret), commandtypes.Nonce())
		return c.SendTx(tx)
	})
	ctx.SetResultCb(parseTxResult(nil))
	ctx.Run()
}

// 自己加入自己的游戏时，先开创建者的
func revealRole(c *client.Client, role string, from, gameID address.Address) (bool, error) {
	switch role {
	case "creator":
		return true, nil
	case "joiner":
		return false, nil
	case "":
	default:
		return false, types.ErrInvalidParam
	}
	reply, err := queryGame(c, gameID)
	if err != nil {
		return false, err
	}
	game := reply.Game
	if from.Equal(game.Creator) && !game.RevealedA {
		return true, nil
	}
	if from.Equal(game.Joiner) {
		return false, nil
	}
	return from.Equal(game.Creator), nil
}

// ForfeitCmd 超时处理
func ForfeitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forfeit",
		Short: "Settle a game after the reveal deadline",
		Run:   coinflipForfeit,
	}
	addFromGameFlags(cmd)
	return cmd
}

func coinflipForfeit(cmd *cobra.Command, args []string) {
	conf, _ := cmd.Flags().GetString("conf")
	from, gameID, err := parseFromGame(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	sendTx(conf, ct.NewTx(from, ct.ForfeitAction(gameID), commandtypes.Nonce()), nil)
}

// FinalizeCmd 结算
func FinalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finalize",
		Short: "Pay the pot to the winner",
		Run:   coinflipFinalize,
	}
	addFromGameFlags(cmd)
	return cmd
}

func coinflipFinalize(cmd *cobra.Command, args []string) {
	conf, _ := cmd.Flags().GetString("conf")
	from, gameID, err := parseFromGame(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	sendTx(conf, ct.NewTx(from, ct.FinalizeAction(gameID), commandtypes.Nonce()), nil)
}

func addFromGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("from", "f", "", "sender address or label")
	cmd.MarkFlagRequired("from")
	cmd.Flags().StringP("game", "g", "", "game address")
	cmd.MarkFlagRequired("game")
}

func parseFromGame(cmd *cobra.Command) (from, gameID address.Address, err error) {
	fromStr, _ := cmd.Flags().GetString("from")
	gameStr, _ := cmd.Flags().GetString("game")
	from, err = commandtypes.ParseAddress(fromStr)
	if err != nil {
		return
	}
	gameID, err = address.NewAddrFromString(gameStr)
	return
}

func sendTx(conf string, tx *types.Transaction, extra interface{}) {
	ctx := client.NewCtx(conf, func(c *client.Client) (interface{}, error) {
		return c.SendTx(tx)
	})
	ctx.SetResultCb(parseTxResult(extra))
	ctx.Run()
}

func parseTxResult(extra interface{}) client.Callback {
	return func(res interface{}) (interface{}, error) {
		result := commandtypes.DecodeTxResult(res.(*types.TxResult))
		result.Extra = extra
		return result, nil
	}
}
