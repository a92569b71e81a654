// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli 命令行入口，系统命令加上各个插件的命令
package cli

import (
	"fmt"
	"os"

	"github.com/33cn/coinflip/common/log"
	"github.com/33cn/coinflip/pluginmgr"
	"github.com/33cn/coinflip/system/dapp/commands"
	"github.com/spf13/cobra"
)

// NewRootCmd 创建根命令并挂载所有命令
func NewRootCmd(name string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   name,
		Short: name + " client tools",
	}
	rootCmd.PersistentFlags().String("conf", "", "config file, default config with a local leveldb if empty")
	rootCmd.AddCommand(
		commands.AccountCmd(),
		commands.ChainCmd(),
		commands.InitConfigCmd(),
	)
	pluginmgr.AddCmd(rootCmd)
	return rootCmd
}

//Run :
func Run(name string) {
	log.Console("error")
	err := NewRootCmd(name).Execute()
	log.Close()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
