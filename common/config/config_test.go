// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/33cn/coinflip/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	cfg, err := Init("testdata/coinflip.toml")
	require.Nil(t, err)
	assert.Equal(t, "test", cfg.Title)
	assert.Equal(t, "debug", cfg.Log.Loglevel)
	assert.Equal(t, "memdb", cfg.Store.Driver)
	assert.Equal(t, int32(16), cfg.Store.DbCache)
	assert.True(t, cfg.Metrics.EnableMetrics)

	_, err = Init("testdata/notexist.toml")
	assert.NotNil(t, err)
}

func TestSubConfig(t *testing.T) {
	sub, err := InitSubModule("testdata/coinflip.toml")
	require.Nil(t, err)
	assert.Equal(t, 1, len(sub.Exec))
	var c struct {
		MinStake    uint64 `json:"minStake"`
		MaxDeadline uint64 `json:"maxDeadline"`
	}
	types.MustDecode(sub.Exec["coinflip"], &c)
	assert.Equal(t, uint64(10), c.MinStake)
	assert.Equal(t, uint64(500), c.MaxDeadline)
}

func TestDefaultConfig(t *testing.T) {
	cfg, sub := InitCfgString(types.DefaultConfig)
	assert.Equal(t, "local", cfg.Title)
	assert.Equal(t, "leveldb", cfg.Store.Driver)
	assert.NotNil(t, sub.Exec["coinflip"])

	cfg, err := InitString(`Title="empty"`)
	require.Nil(t, err)
	assert.Equal(t, "memdb", cfg.Store.Driver)
	assert.NotNil(t, cfg.Log)
}
