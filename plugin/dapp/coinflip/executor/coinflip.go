// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"sync"

	log "github.com/33cn/coinflip/common/log"
	"github.com/33cn/coinflip/metrics"
	ct "github.com/33cn/coinflip/plugin/dapp/coinflip/types"
	drivers "github.com/33cn/coinflip/system/dapp"
	"github.com/33cn/coinflip/types"
)

var clog = log.New("module", "execs.coinflip")

//子配置 [exec.sub.coinflip]
type subConfig struct {
	//最小押注
	MinStake uint64 `json:"minStake"`
	//开奖截止高度最多可以设置多远，0 不限制
	MaxDeadline  uint64 `json:"maxDeadline"`
	DefaultCount int32  `json:"defaultCount"`
	MaxCount     int32  `json:"maxCount"`
}

var (
	defaultCfg = subConfig{MinStake: 1, DefaultCount: ct.DefaultCount, MaxCount: ct.MaxCount}
	initOnce   sync.Once
)

var actionName = map[int32]string{
	ct.CoinflipActionCreate:        "create",
	ct.CoinflipActionJoin:          "join",
	ct.CoinflipActionRevealCreator: "revealCreator",
	ct.CoinflipActionRevealJoiner:  "revealJoiner",
	ct.CoinflipActionForfeit:       "forfeit",
	ct.CoinflipActionFinalize:      "finalize",
}

//Init 注册执行器，sub 作为默认配置
func Init(name string, sub []byte) {
	initOnce.Do(func() {
		cfg, err := parseConfig(sub)
		if err != nil {
			panic(err)
		}
		defaultCfg = *cfg
		drivers.Register(GetName(), newCoinflip, 0)
	})
}

func parseConfig(sub []byte) (*subConfig, error) {
	cfg := defaultCfg
	if len(sub) > 0 {
		if err := types.Decode(sub, &cfg); err != nil {
			return nil, err
		}
	}
	if cfg.MaxCount <= 0 || cfg.DefaultCount <= 0 || cfg.DefaultCount > cfg.MaxCount {
		return nil, types.ErrInvalidParam
	}
	if cfg.MinStake == 0 {
		cfg.MinStake = 1
	}
	return &cfg, nil
}

//Coinflip 执行器
type Coinflip struct {
	drivers.DriverBase
	cfg *subConfig
}

func newCoinflip() drivers.Driver {
	c := &Coinflip{}
	c.SetChild(c)
	return c
}

//GetName 执行器名
func GetName() string {
	return newCoinflip().GetName()
}

//GetDriverName 驱动名
func (c *Coinflip) GetDriverName() string {
	return ct.CoinflipX
}

//SetConfig 执行器的子配置
func (c *Coinflip) SetConfig(sub []byte) error {
	cfg, err := parseConfig(sub)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *Coinflip) config() *subConfig {
	if c.cfg == nil {
		cfg := defaultCfg
		c.cfg = &cfg
	}
	return c.cfg
}

//Exec 执行交易
func (c *Coinflip) Exec(tx *types.Transaction, index int) (*types.Receipt, error) {
	var action ct.CoinflipAction
	err := types.Decode(tx.Payload, &action)
	if err != nil {
		return nil, err
	}
	clog.Debug("exec coinflip tx", "ty", action.Ty, "from", tx.From)
	actiondb := NewAction(c, tx, index)
	var receipt *types.Receipt
	switch {
	case action.Ty == ct.CoinflipActionCreate && action.GetCreate() != nil:
		receipt, err = actiondb.GameCreate(action.GetCreate())
	case action.Ty == ct.CoinflipActionJoin && action.GetJoin() != nil:
		receipt, err = actiondb.GameJoin(action.GetJoin())
	case action.Ty == ct.CoinflipActionRevealCreator && action.GetReveal() != nil:
		receipt, err = actiondb.GameReveal(action.GetReveal(), true)
	case action.Ty == ct.CoinflipActionRevealJoiner && action.GetReveal() != nil:
		receipt, err = actiondb.GameReveal(action.GetReveal(), false)
	case action.Ty == ct.CoinflipActionForfeit && action.GetForfeit() != nil:
		receipt, err = actiondb.GameForfeit(action.GetForfeit())
	case action.Ty == ct.CoinflipActionFinalize && action.GetFinalize() != nil:
		receipt, err = actiondb.GameFinalize(action.GetFinalize())
	default:
		return nil, types.ErrActionNotSupport
	}
	name := "coinflip." + actionName[action.Ty]
	if err != nil {
		metrics.Counter(name + ".err").Inc(1)
		return nil, err
	}
	metrics.Counter(name + ".ok").Inc(1)
	return receipt, nil
}

func isCoinflipLog(ty int32) bool {
	return ty >= ct.TyLogCoinflipCreate && ty <= ct.TyLogCoinflipFinalize
}

//ExecLocal 根据日志更新状态和地址索引
func (c *Coinflip) ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	set, err := c.DriverBase.ExecLocal(tx, receipt, index)
	if err != nil {
		return nil, err
	}
	if receipt.GetTy() != types.ExecOk {
		return set, nil
	}
	for _, item := range receipt.Logs {
		if !isCoinflipLog(item.Ty) {
			continue
		}
		var flipLog ct.ReceiptCoinflip
		err := types.Decode(item.Log, &flipLog)
		if err != nil {
			panic(err) //数据错误了，已经被修改了
		}
		set.KV = append(set.KV, c.updateIndex(&flipLog)...)
	}
	return set, nil
}

//更新索引，先建立新状态的索引，再删除上一个状态的
func (c *Coinflip) updateIndex(log *ct.ReceiptCoinflip) (kvs []*types.KeyValue) {
	kvs = append(kvs, addStatusIndex(log.Status, log.GameID, log.Index))
	kvs = append(kvs, addAddrIndex(log.Status, log.GameID, log.Creator, log.Index))
	if !log.Joiner.IsZero() && log.Joiner != log.Creator {
		kvs = append(kvs, addAddrIndex(log.Status, log.GameID, log.Joiner, log.Index))
	}
	if log.PrevStatus < 0 {
		return kvs
	}
	kvs = append(kvs, delStatusIndex(log.PrevStatus, log.PrevIndex))
	kvs = append(kvs, delAddrIndex(log.PrevStatus, log.Creator, log.PrevIndex))
	//Created 状态下还没有加入者的索引
	if log.PrevStatus >= int32(ct.StatusJoined) && !log.Joiner.IsZero() && log.Joiner != log.Creator {
		kvs = append(kvs, delAddrIndex(log.PrevStatus, log.Joiner, log.PrevIndex))
	}
	return kvs
}
