// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log 日志: 控制台 + 可选的滚动文件，全部模块共用 log15 的 Root
package log

import (
	"os"
	"sync"

	"github.com/33cn/coinflip/types"
	log15 "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

//没有日志配置时写到这里
const defaultLogFile = "logs/coinflip.log"

var (
	mu sync.Mutex
	//当前打开的日志文件，重新 Setup 或者 Close 时关闭
	rotate *lumberjack.Logger
)

//Console 只输出到控制台，读取配置之前的命令行使用
func Console(level string) {
	lvl, err := parseLevel(level)
	if err != nil {
		lvl = log15.LvlError
	}
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	log15.Root().SetHandler(consoleHandler(lvl))
}

//Setup 按配置重置全部日志输出，LogFile 为空时只有控制台
func Setup(cfg *types.Log) error {
	if cfg == nil {
		cfg = &types.Log{LogFile: defaultLogFile}
	}
	consoleLvl, err := parseLevel(cfg.LogConsoleLevel)
	if err != nil {
		return errors.Wrap(err, "logConsoleLevel")
	}
	fileLvl, err := parseLevel(cfg.Loglevel)
	if err != nil {
		return errors.Wrap(err, "loglevel")
	}
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	handler := consoleHandler(consoleLvl)
	if cfg.LogFile != "" {
		rotate = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    int(cfg.MaxFileSize),
			MaxBackups: int(cfg.MaxBackups),
			MaxAge:     int(cfg.MaxAge),
			LocalTime:  cfg.LocalTime,
			Compress:   cfg.Compress,
		}
		handler = log15.MultiHandler(handler, fileHandler(rotate, fileLvl, cfg))
	}
	log15.Root().SetHandler(handler)
	return nil
}

//Close 关闭日志文件，之后的日志全部丢弃
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	log15.Root().SetHandler(log15.DiscardHandler())
}

func closeFile() {
	if rotate == nil {
		return
	}
	rotate.Close()
	rotate = nil
}

//parseLevel 空字符串按 error 处理，不认识的级别报错
func parseLevel(level string) (log15.Lvl, error) {
	if level == "" {
		return log15.LvlError, nil
	}
	lvl, err := log15.LvlFromString(level)
	if err != nil {
		return log15.LvlError, errors.Wrapf(err, "log level %q", level)
	}
	return lvl, nil
}

//windows 控制台不支持颜色
func consoleHandler(lvl log15.Lvl) log15.Handler {
	format := log15.TerminalFormat()
	if os.PathSeparator == '\\' {
		format = log15.LogfmtFormat()
	}
	return log15.LvlFilterHandler(lvl, log15.StreamHandler(os.Stderr, format))
}

func fileHandler(w *lumberjack.Logger, lvl log15.Lvl, cfg *types.Log) log15.Handler {
	h := log15.LvlFilterHandler(lvl, log15.StreamHandler(w, log15.LogfmtFormat()))
	if cfg.CallerFile {
		h = log15.CallerFileHandler(h)
	}
	if cfg.CallerFunction {
		h = log15.CallerFuncHandler(h)
	}
	return h
}

//New 带上下文的 logger，例如 New("module", "executor")
func New(ctx ...interface{}) log15.Logger {
	return log15.Root().New(ctx...)
}
