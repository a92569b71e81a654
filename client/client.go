// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package client 命令行使用的本地节点，负责加载配置、初始化插件并打开执行器
package client

import (
	"github.com/33cn/coinflip/common/address"
	"github.com/33cn/coinflip/common/config"
	clog "github.com/33cn/coinflip/common/log"
	"github.com/33cn/coinflip/executor"
	"github.com/33cn/coinflip/metrics"
	"github.com/33cn/coinflip/pluginmgr"
	"github.com/33cn/coinflip/types"
	"github.com/pkg/errors"
)

var log = clog.New("module", "client")

// Client 本地节点
type Client struct {
	cfg  *types.Config
	exec *executor.Executor
	stop func()
}

// LoadConfig 读取配置文件，路径为空时使用默认配置
func LoadConfig(confPath string) (*types.Config, *types.ConfigSubModule, error) {
	if confPath == "" {
		cfg, err := config.InitString(types.DefaultConfig)
		if err != nil {
			return nil, nil, err
		}
		sub, err := config.InitSubModuleString(types.DefaultConfig)
		if err != nil {
			return nil, nil, err
		}
		return cfg, sub, nil
	}
	cfg, err := config.Init(confPath)
	if err != nil {
		return nil, nil, err
	}
	sub, err := config.InitSubModule(confPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, sub, nil
}

// Open 读取配置文件并打开节点
func Open(confPath string) (*Client, error) {
	cfg, sub, err := LoadConfig(confPath)
	if err != nil {
		return nil, errors.Wrap(err, "client.Open")
	}
	return New(cfg, sub)
}

// New 用已经解析好的配置打开节点
func New(cfg *types.Config, sub *types.ConfigSubModule) (*Client, error) {
	if err := clog.Setup(cfg.Log); err != nil {
		return nil, errors.Wrap(err, "client.New")
	}
	if sub == nil {
		sub = &types.ConfigSubModule{}
	}
	pluginmgr.InitExec(sub.Exec)
	exec, err := executor.Open(cfg, sub)
	if err != nil {
		return nil, err
	}
	log.Debug("client open", "title", cfg.Title, "height", exec.Height())
	return &Client{cfg: cfg, exec: exec, stop: metrics.StartMetrics(cfg.Metrics)}, nil
}

// Config 当前配置
func (c *Client) Config() *types.Config {
	return c.cfg
}

// Close 关闭数据库，结束统计
func (c *Client) Close() {
	c.exec.Close()
	if c.stop != nil {
		c.stop()
	}
}

// SendTx 执行交易并返回执行结果
func (c *Client) SendTx(tx *types.Transaction) (*types.TxResult, error) {
	if tx == nil {
		return nil, types.ErrEmptyTx
	}
	if !pluginmgr.HasExec(tx.Execer) {
		return nil, types.ErrExecNotFound
	}
	return c.exec.Exec(tx)
}

// Query 调用执行器查询
func (c *Client) Query(execer, funcName string, params interface{}) (interface{}, error) {
	var data []byte
	if params != nil {
		data = types.Encode(params)
	}
	return c.exec.Query(execer, funcName, data)
}

// GetTx 根据哈希查询交易执行结果
func (c *Client) GetTx(hash []byte) (*types.TxResult, error) {
	return c.exec.GetTxResult(hash)
}

// Genesis 给地址发放初始资金
func (c *Client) Genesis(addr address.Address, amount uint64) (*types.Receipt, error) {
	return c.exec.Genesis(addr, amount)
}

// Transfer 主币转账
func (c *Client) Transfer(from, to address.Address, amount uint64) (*types.Receipt, error) {
	return c.exec.Transfer(from, to, amount)
}

// Balance 查询余额
func (c *Client) Balance(addr address.Address) uint64 {
	return c.exec.GetBalance(addr)
}

// Advance 推进 n 个空区块
func (c *Client) Advance(n int64) (int64, error) {
	return c.exec.Advance(n)
}

// Height 当前高度
func (c *Client) Height() int64 {
	return c.exec.Height()
}
