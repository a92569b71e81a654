// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/33cn/coinflip/types"
	log15 "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupFile(t *testing.T) {
	defer Close()
	file := filepath.Join(t.TempDir(), "logs", "coinflip.log")
	require.NoError(t, Setup(&types.Log{LogFile: file, Loglevel: "info", LogConsoleLevel: "crit"}))
	New("module", "test").Info("hello", "height", 1)
	New("module", "test").Debug("hidden")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "module=test")
	assert.NotContains(t, string(data), "hidden")

	//换成只有控制台以后，文件不再写入
	Console("crit")
	assert.Nil(t, rotate)
	New("module", "test").Info("after")
	data, err = os.ReadFile(file)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "after")
}

func TestSetupBadLevel(t *testing.T) {
	defer Close()
	err := Setup(&types.Log{Loglevel: "loud"})
	assert.Error(t, err)
	err = Setup(&types.Log{LogConsoleLevel: "loud"})
	assert.Error(t, err)
	require.NoError(t, Setup(&types.Log{LogConsoleLevel: "crit"}))
	assert.Nil(t, rotate)
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		level string
		lvl   log15.Lvl
		ok    bool
	}{
		{"", log15.LvlError, true},
		{"debug", log15.LvlDebug, true},
		{"eror", log15.LvlError, true},
		{"error", log15.LvlError, true},
		{"nolevel", log15.LvlError, false},
	}
	for _, c := range cases {
		lvl, err := parseLevel(c.level)
		assert.Equal(t, c.lvl, lvl, c.level)
		assert.Equal(t, c.ok, err == nil, c.level)
	}
}
