// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

//store package store the world - state data
import (
	"sort"

	"github.com/33cn/coinflip/common/address"
	log "github.com/33cn/coinflip/common/log"
	"github.com/33cn/coinflip/types"
)

var elog = log.New("module", "execs")

// DriverCreate defines a drivercreate function
type DriverCreate func() Driver

type driverWithHeight struct {
	create DriverCreate
	height int64
}

var (
	registedExecDriver = make(map[string]*driverWithHeight)
	execAddressNameMap = make(map[string]address.Address)
)

// Register register dcriver height in name
func Register(name string, create DriverCreate, height int64) {
	if create == nil {
		panic("Execute: Register driver is nil")
	}
	if _, dup := registedExecDriver[name]; dup {
		panic("Execute: Register called twice for driver " + name)
	}
	registedExecDriver[name] = &driverWithHeight{
		create: create,
		height: height,
	}
	registerAddress(name)
}

// LoadDriver load driver
func LoadDriver(name string, height int64) (driver Driver, err error) {
	c, ok := registedExecDriver[name]
	if !ok {
		elog.Debug("LoadDriver", "driver", name)
		return nil, types.ErrExecNotFound
	}
	if height >= c.height || height == -1 {
		return c.create(), nil
	}
	return nil, types.ErrExecNotFound
}

// LoadDriverAllow 加载交易对应的驱动，并检查是否允许执行
func LoadDriverAllow(tx *types.Transaction, index int, height int64) (Driver, error) {
	exec, err := LoadDriver(tx.Execer, height)
	if err != nil {
		return nil, err
	}
	if err := exec.Allow(tx, index); err != nil {
		return nil, err
	}
	exec.SetName(tx.Execer)
	return exec, nil
}

//DriverNames 已经注册的驱动
func DriverNames() []string {
	var names []string
	for name := range registedExecDriver {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func registerAddress(name string) {
	if len(name) == 0 {
		panic("empty name string")
	}
	execAddressNameMap[name] = address.FromLabel(name)
}

// ExecAddress return exec address
func ExecAddress(name string) address.Address {
	if addr, ok := execAddressNameMap[name]; ok {
		return addr
	}
	return address.FromLabel(name)
}
