// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"os"

	"github.com/33cn/coinflip/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// InitConfigCmd 生成默认配置文件
func InitConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Run:   initConfig,
	}
	cmd.Flags().StringP("out", "o", "coinflip.toml", "output file")
	cmd.Flags().BoolP("force", "f", false, "overwrite the existing file")
	return cmd
}

func initConfig(cmd *cobra.Command, args []string) {
	out, _ := cmd.Flags().GetString("out")
	force, _ := cmd.Flags().GetBool("force")
	if err := WriteConfig(out, force); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(out)
}

// WriteConfig 写入默认配置，文件已经存在并且没有 force 时报错
func WriteConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.Errorf("config file %s already exists", path)
	}
	return errors.Wrap(os.WriteFile(path, []byte(types.DefaultConfig), 0644), "WriteConfig")
}
