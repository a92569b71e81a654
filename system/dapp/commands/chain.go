// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"os"

	"github.com/33cn/coinflip/client"
	"github.com/33cn/coinflip/common"
	commandtypes "github.com/33cn/coinflip/system/dapp/commands/types"
	"github.com/33cn/coinflip/types"
	"github.com/spf13/cobra"
)

// ChainCmd 区块高度以及交易查询
func ChainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Block height and transaction query",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		HeightCmd(),
		AdvanceCmd(),
		QueryTxCmd(),
	)
	return cmd
}

// HeightCmd 当前高度
func HeightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "height",
		Short: "Get current block height",
		Run:   height,
	}
	return cmd
}

func height(cmd *cobra.Command, args []string) {
	conf, _ := cmd.Flags().GetString("conf")
	ctx := client.NewCtx(conf, func(c *client.Client) (interface{}, error) {
		return &commandtypes.HeightResult{Height: c.Height()}, nil
	})
	ctx.Run()
}

// AdvanceCmd 推进空区块，用于触发超时
func AdvanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advance",
		Short: "Advance the block height without transactions",
		Run:   advance,
	}
	cmd.Flags().Int64P("blocks", "n", 1, "number of blocks")
	return cmd
}

func advance(cmd *cobra.Command, args []string) {
	conf, _ := cmd.Flags().GetString("conf")
	n, _ := cmd.Flags().GetInt64("blocks")
	ctx := client.NewCtx(conf, func(c *client.Client) (interface{}, error) {
		h, err := c.Advance(n)
		if err != nil {
			return nil, err
		}
		return &commandtypes.HeightResult{Height: h}, nil
	})
	ctx.Run()
}

// QueryTxCmd 根据哈希查询交易
func QueryTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Query transaction by hash",
		Run:   queryTx,
	}
	cmd.Flags().StringP("hash", "s", "", "transaction hash")
	cmd.MarkFlagRequired("hash")
	return cmd
}

func queryTx(cmd *cobra.Command, args []string) {
	conf, _ := cmd.Flags().GetString("conf")
	hashStr, _ := cmd.Flags().GetString("hash")
	hash, err := common.FromHex(hashStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	ctx := client.NewCtx(conf, func(c *client.Client) (interface{}, error) {
		return c.GetTx(hash)
	})
	ctx.SetResultCb(func(res interface{}) (interface{}, error) {
		return commandtypes.DecodeTxResult(res.(*types.TxResult)), nil
	})
	ctx.Run()
}
