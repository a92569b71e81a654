// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// coin conversation
const (
	Coin            uint64 = 1e8
	MaxCoin         uint64 = 1e17
	MaxTokenBalance uint64 = 900 * 1e8 * Coin //900亿
	MaxTxsPerBlock         = 100000
)

//执行结果
const (
	ExecErr  = 0
	ExecPack = 1
	ExecOk   = 2
)

//系统 log 类型，dapp 自己的 log 从 100 开始
const (
	TyLogErr      = 1
	TyLogTransfer = 2
	TyLogGenesis  = 3
	TyLogDeposit  = 4
	TyLogPayout   = 5
)

//系统保留的状态 key 前缀
const (
	//mavl- 前缀的 key 进入状态数据库
	StatePrefix = "mavl-"
	//LODB- 前缀的 key 只写入本地数据库，用作查询索引
	LocalPrefix = "LODB-"
)

//CoinsX 资产执行器名称
const CoinsX = "coins"
