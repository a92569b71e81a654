// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"os"

	"github.com/33cn/coinflip/client"
	"github.com/33cn/coinflip/common/address"
	commandtypes "github.com/33cn/coinflip/system/dapp/commands/types"
	"github.com/33cn/coinflip/types"
	"github.com/spf13/cobra"
)

// AccountCmd account command
func AccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		GetBalanceCmd(),
		GenesisCmd(),
		TransferCmd(),
		AddrCmd(),
	)
	return cmd
}

// GetBalanceCmd get balance of an address
func GetBalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Get balance of a account address",
		Run:   balance,
	}
	addBalanceFlags(cmd)
	return cmd
}

func addBalanceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("addr", "a", "", "account address or label")
	cmd.MarkFlagRequired("addr")
}

func balance(cmd *cobra.Command, args []string) {
	conf, _ := cmd.Flags().GetString("conf")
	addrStr, _ := cmd.Flags().GetString("addr")
	addr, err := commandtypes.ParseAddress(addrStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	ctx := client.NewCtx(conf, func(c *client.Client) (interface{}, error) {
		return &types.Account{Addr: addr, Balance: c.Balance(addr)}, nil
	})
	ctx.SetResultCb(func(res interface{}) (interface{}, error) {
		return commandtypes.DecodeAccount(res.(*types.Account), labelOf(addrStr, addr)), nil
	})
	ctx.Run()
}

// GenesisCmd 本地测试网络发放初始资金
func GenesisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genesis",
		Short: "Mint initial coins to an address on the local network",
		Run:   genesis,
	}
	addGenesisFlags(cmd)
	return cmd
}

func addGenesisFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("addr", "a", "", "account address or label")
	cmd.MarkFlagRequired("addr")
	cmd.Flags().StringP("amount", "n", "", "amount of coins, e.g. 100 or 0.5")
	cmd.MarkFlagRequired("amount")
}

func genesis(cmd *cobra.Command, args []string) {
	conf, _ := cmd.Flags().GetString("conf")
	addrStr, _ := cmd.Flags().GetString("addr")
	amountStr, _ := cmd.Flags().GetString("amount")
	addr, err := commandtypes.ParseAddress(addrStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	amount, err := commandtypes.ParseCoins(amountStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	ctx := client.NewCtx(conf, func(c *client.Client) (interface{}, error) {
		if _, err := c.Genesis(addr, amount); err != nil {
			return nil, err
		}
		return &types.Account{Addr: addr, Balance: c.Balance(addr)}, nil
	})
	ctx.SetResultCb(func(res interface{}) (interface{}, error) {
		return commandtypes.DecodeAccount(res.(*types.Account), labelOf(addrStr, addr)), nil
	})
	ctx.Run()
}

// TransferCmd 本地测试网络主币转账
func TransferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer coins between accounts on the local network",
		Run:   transfer,
	}
	addTransferFlags(cmd)
	return cmd
}

func addTransferFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("from", "f", "", "sender address or label")
	cmd.MarkFlagRequired("from")
	cmd.Flags().StringP("to", "t", "", "receiver address or label")
	cmd.MarkFlagRequired("to")
	cmd.Flags().StringP("amount", "n", "", "amount of coins, e.g. 100 or 0.5")
	cmd.MarkFlagRequired("amount")
}

func transfer(cmd *cobra.Command, args []string) {
	conf, _ := cmd.Flags().GetString("conf")
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	amountStr, _ := cmd.Flags().GetString("amount")
	from, err := commandtypes.ParseAddress(fromStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	to, err := commandtypes.ParseAddress(toStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	amount, err := commandtypes.ParseCoins(amountStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	ctx := client.NewCtx(conf, func(c *client.Client) (interface{}, error) {
		if _, err := c.Transfer(from, to, amount); err != nil {
			return nil, err
		}
		return &types.Account{Addr: from, Balance: c.Balance(from)}, nil
	})
	ctx.SetResultCb(func(res interface{}) (interface{}, error) {
		return commandtypes.DecodeAccount(res.(*types.Account), labelOf(fromStr, from)), nil
	})
	ctx.Run()
}

// AddrCmd 由名字推导本地测试身份的地址
func AddrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addr",
		Short: "Derive the address of a label",
		Run:   labelAddr,
	}
	cmd.Flags().StringP("label", "l", "", "label of the local identity")
	cmd.MarkFlagRequired("label")
	return cmd
}

func labelAddr(cmd *cobra.Command, args []string) {
	label, _ := cmd.Flags().GetString("label")
	fmt.Println(address.FromLabel(label).String())
}

func labelOf(s string, addr address.Address) string {
	if s == addr.String() {
		return ""
	}
	return s
}
