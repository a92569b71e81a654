// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/33cn/coinflip/client"
	"github.com/33cn/coinflip/common/address"
	ct "github.com/33cn/coinflip/plugin/dapp/coinflip/types"
	commandtypes "github.com/33cn/coinflip/system/dapp/commands/types"
	"github.com/33cn/coinflip/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// GameResult 游戏地址和托管地址
type GameResult struct {
	GameID address.Address `json:"gameId"`
	Vault  address.Address `json:"vault"`
}

// CommitResult commit 命令的输出，secret 需要自己保存好
type CommitResult struct {
	Choice uint8   `json:"choice"`
	Secret ct.Hash `json:"secret"`
	Commit ct.Hash `json:"commit"`
}

// CommitCmd 本地计算承诺
func CommitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Compute a commitment for a choice and secret offline",
		Run:   coinflipCommit,
	}
	cmd.Flags().Uint8P("choice", "c", 0, "choice, 0 or 1")
	cmd.Flags().StringP("secret", "s", "", "secret, random if empty")
	return cmd
}

func coinflipCommit(cmd *cobra.Command, args []string) {
	choice, _ := cmd.Flags().GetUint8("choice")
	secretStr, _ := cmd.Flags().GetString("secret")
	result, err := NewCommit(choice, secretStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	printJSON(result)
}

// NewCommit 计算承诺，secret 为空时随机生成
func NewCommit(choice uint8, secretStr string) (*CommitResult, error) {
	if choice > 1 {
		return nil, ct.ErrInvalidChoice
	}
	var secret ct.Hash
	var err error
	if secretStr == "" {
		secret, err = ct.NewSecret()
	} else {
		secret, err = ct.SecretFromString(secretStr)
	}
	if err != nil {
		return nil, err
	}
	return &CommitResult{Choice: choice, Secret: secret, Commit: ct.Commit(choice, secret)}, nil
}

// GameCmd 查询游戏
func GameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Show a coinflip game",
		Run:   coinflipGame,
	}
	addGameFlag(cmd)
	return cmd
}

func addGameFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("game", "g", "", "game address")
	cmd.MarkFlagRequired("game")
}

func coinflipGame(cmd *cobra.Command, args []string) {
	runGameQuery(cmd, ct.FuncNameGetGame)
}

// VaultCmd 查询托管账户
func VaultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Show the vault balance of a game",
		Run:   coinflipVault,
	}
	addGameFlag(cmd)
	return cmd
}

func coinflipVault(cmd *cobra.Command, args []string) {
	runGameQuery(cmd, ct.FuncNameGetVault)
}

func runGameQuery(cmd *cobra.Command, funcName string) {
	conf, _ := cmd.Flags().GetString("conf")
	gameStr, _ := cmd.Flags().GetString("game")
	gameID, err := address.NewAddrFromString(gameStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	ctx := client.NewCtx(conf, func(c *client.Client) (interface{}, error) {
		return c.Query(ct.CoinflipX, funcName, &ct.ReqCoinflipGame{GameID: gameID})
	})
	ctx.Run()
}

func queryGame(c *client.Client, gameID address.Address) (*ct.ReplyCoinflipGame, error) {
	res, err := c.Query(ct.CoinflipX, ct.FuncNameGetGame, &ct.ReqCoinflipGame{GameID: gameID})
	if err != nil {
		return nil, err
	}
	return res.(*ct.ReplyCoinflipGame), nil
}

// ListCmd 按状态列出游戏
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List games by status, optionally of one address",
		Run:   coinflipList,
	}
	addListFlags(cmd)
	return cmd
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("status", "s", "Created", "status name or code")
	cmd.Flags().StringP("addr", "a", "", "player address or label")
	cmd.Flags().Int64P("index", "i", 0, "start after this index, 0 from the first")
	cmd.Flags().Int32P("count", "n", 0, "max games to list, 0 for the default")
	cmd.Flags().Int32P("direction", "d", ct.ListDESC, "0 newest first, 1 oldest first")
}

func coinflipList(cmd *cobra.Command, args []string) {
	conf, _ := cmd.Flags().GetString("conf")
	statusStr, _ := cmd.Flags().GetString("status")
	addrStr, _ := cmd.Flags().GetString("addr")
	index, _ := cmd.Flags().GetInt64("index")
	count, _ := cmd.Flags().GetInt32("count")
	direction, _ := cmd.Flags().GetInt32("direction")
	status, addr, err := parseStatusAddr(statusStr, addrStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	req := &ct.ReqCoinflipList{Status: int32(status), Addr: addr, Index: index, Count: count, Direction: direction}
	ctx := client.NewCtx(conf, func(c *client.Client) (interface{}, error) {
		return c.Query(ct.CoinflipX, ct.FuncNameListGames, req)
	})
	ctx.Run()
}

// CountCmd 按状态统计游戏数
func CountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count games by status, optionally of one address",
		Run:   coinflipCount,
	}
	cmd.Flags().StringP("status", "s", "Created", "status name or code")
	cmd.Flags().StringP("addr", "a", "", "player address or label")
	return cmd
}

func coinflipCount(cmd *cobra.Command, args []string) {
	conf, _ := cmd.Flags().GetString("conf")
	statusStr, _ := cmd.Flags().GetString("status")
	addrStr, _ := cmd.Flags().GetString("addr")
	status, addr, err := parseStatusAddr(statusStr, addrStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	req := &ct.ReqCoinflipCount{Status: int32(status), Addr: addr}
	ctx := client.NewCtx(conf, func(c *client.Client) (interface{}, error) {
		return c.Query(ct.CoinflipX, ct.FuncNameCountGames, req)
	})
	ctx.Run()
}

func parseStatusAddr(statusStr, addrStr string) (ct.Status, address.Address, error) {
	status, err := ct.ParseStatus(statusStr)
	if err != nil {
		return 0, address.Zero, err
	}
	if addrStr == "" {
		return status, address.Zero, nil
	}
	addr, err := commandtypes.ParseAddress(addrStr)
	return status, addr, err
}

// ExportCmd 导出一局游戏，用于离线验证
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a settled round for offline verification",
		Run:   coinflipExport,
	}
	addGameFlag(cmd)
	cmd.Flags().StringP("out", "o", "", "output file, stdout if empty")
	return cmd
}

func coinflipExport(cmd *cobra.Command, args []string) {
	conf, _ := cmd.Flags().GetString("conf")
	gameStr, _ := cmd.Flags().GetString("game")
	out, _ := cmd.Flags().GetString("out")
	gameID, err := address.NewAddrFromString(gameStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	ctx := client.NewCtx(conf, func(c *client.Client) (interface{}, error) {
		return c.Query(ct.CoinflipX, ct.FuncNameGetRound, &ct.ReqCoinflipGame{GameID: gameID})
	})
	ctx.SetResultCb(func(res interface{}) (interface{}, error) {
		round := res.(*ct.ReplyCoinflipRound).Round
		round.Timestamp = time.Now().Unix()
		if out == "" {
			return round, nil
		}
		if err := WriteRound(out, round); err != nil {
			return nil, err
		}
		return &GameResult{GameID: round.Game, Vault: round.Vault}, nil
	})
	ctx.Run()
}

// VerifyCmd 验证一局游戏
func VerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a round, from the chain or from an exported file",
		Run:   coinflipVerify,
	}
	cmd.Flags().StringP("game", "g", "", "game address")
	cmd.Flags().StringP("file", "i", "", "exported round file, verified offline")
	return cmd
}

func coinflipVerify(cmd *cobra.Command, args []string) {
	conf, _ := cmd.Flags().GetString("conf")
	gameStr, _ := cmd.Flags().GetString("game")
	file, _ := cmd.Flags().GetString("file")
	if file != "" {
		verdict, err := VerifyFile(file)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		printJSON(verdict)
		return
	}
	gameID, err := address.NewAddrFromString(gameStr)
	if err != nil || gameID.IsZero() {
		fmt.Fprintln(os.Stderr, "game or file is required")
		return
	}
	ctx := client.NewCtx(conf, func(c *client.Client) (interface{}, error) {
		return c.Query(ct.CoinflipX, ct.FuncNameGetRound, &ct.ReqCoinflipGame{GameID: gameID})
	})
	ctx.SetResultCb(func(res interface{}) (interface{}, error) {
		return res.(*ct.ReplyCoinflipRound).Verdict, nil
	})
	ctx.Run()
}

// WriteRound 写入导出文件
func WriteRound(path string, round *ct.RoundBundle) error {
	data, err := json.MarshalIndent(round, "", "    ")
	if err != nil {
		return errors.Wrap(err, "WriteRound")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "WriteRound")
}

// VerifyFile 读取导出文件并重新计算结果
func VerifyFile(path string) (*ct.RoundVerdict, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "VerifyFile")
	}
	var round ct.RoundBundle
	if err := types.Decode(data, &round); err != nil {
		return nil, err
	}
	return ct.VerifyRound(round.Game, round.ToGame())
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(data))
}
