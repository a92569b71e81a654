// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config 读取 toml 配置，dapp 子配置转换为 json 交给各自模块解析
package config

import (
	"encoding/json"

	tml "github.com/BurntSushi/toml"
	"github.com/33cn/coinflip/types"
	"github.com/pkg/errors"
)

//Init 从文件读取配置
func Init(path string) (*types.Config, error) {
	var cfg types.Config
	if _, err := tml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrap(err, "config.Init")
	}
	fillDefault(&cfg)
	return &cfg, nil
}

//InitString 从字符串读取配置
func InitString(conf string) (*types.Config, error) {
	var cfg types.Config
	if _, err := tml.Decode(conf, &cfg); err != nil {
		return nil, errors.Wrap(err, "config.InitString")
	}
	fillDefault(&cfg)
	return &cfg, nil
}

//InitCfg 读取配置文件，失败直接 panic
func InitCfg(path string) (*types.Config, *types.ConfigSubModule) {
	cfg, err := Init(path)
	if err != nil {
		panic(err)
	}
	sub, err := InitSubModule(path)
	if err != nil {
		panic(err)
	}
	return cfg, sub
}

//InitCfgString 从字符串读取配置，失败直接 panic
func InitCfgString(conf string) (*types.Config, *types.ConfigSubModule) {
	cfg, err := InitString(conf)
	if err != nil {
		panic(err)
	}
	sub, err := InitSubModuleString(conf)
	if err != nil {
		panic(err)
	}
	return cfg, sub
}

type subModule struct {
	Exec map[string]interface{}
}

//InitSubModule 读取子模块配置
func InitSubModule(path string) (*types.ConfigSubModule, error) {
	var cfg subModule
	if _, err := tml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrap(err, "config.InitSubModule")
	}
	return &types.ConfigSubModule{Exec: parseItem(cfg.Exec)}, nil
}

//InitSubModuleString 从字符串读取子模块配置
func InitSubModuleString(conf string) (*types.ConfigSubModule, error) {
	var cfg subModule
	if _, err := tml.Decode(conf, &cfg); err != nil {
		return nil, errors.Wrap(err, "config.InitSubModuleString")
	}
	return &types.ConfigSubModule{Exec: parseItem(cfg.Exec)}, nil
}

func parseItem(data map[string]interface{}) map[string][]byte {
	subconfig := make(map[string][]byte)
	if len(data) == 0 {
		return subconfig
	}
	for key := range data {
		if key == "sub" {
			subcfg, ok := data[key].(map[string]interface{})
			if !ok {
				continue
			}
			for k := range subcfg {
				subconfig[k], _ = json.Marshal(subcfg[k])
			}
		}
	}
	return subconfig
}

func fillDefault(cfg *types.Config) {
	if cfg.Log == nil {
		cfg.Log = &types.Log{Loglevel: "info", LogConsoleLevel: "info"}
	}
	if cfg.Store == nil {
		cfg.Store = &types.Store{Name: "state", Driver: "memdb"}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &types.Metrics{}
	}
}
