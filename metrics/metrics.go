// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics 执行统计，基于 go-metrics 的默认 registry
package metrics

import (
	"bytes"
	"io"
	"os"
	"time"

	clog "github.com/33cn/coinflip/common/log"
	"github.com/33cn/coinflip/types"
	go_metrics "github.com/rcrowley/go-metrics"
)

var (
	log = clog.New("module", "coinflip metrics")
	//Namespace 统计项名字的前缀
	Namespace = "coinflip"
	//Output stderr 模式下输出的位置
	Output io.Writer = os.Stderr
)

//数据输出的方式
const (
	EmitStderr = "stderr"
	EmitLog    = "log"
)

//DefaultDuration log 模式下的默认输出间隔
const DefaultDuration = time.Minute

//StartMetrics 根据配置文件相关参数启动统计，返回的函数用于结束统计并输出最后一次结果
func StartMetrics(cfg *types.Metrics) (stop func()) {
	if cfg == nil || !cfg.EnableMetrics {
		log.Info("Metrics data is not enabled to emit")
		return func() {}
	}
	switch cfg.DataEmitMode {
	case EmitStderr, "":
		return func() {
			WriteOnce(Output)
		}
	case EmitLog:
		done := make(chan struct{})
		go emitLog(DefaultDuration, done)
		return func() {
			close(done)
		}
	default:
		log.Error("startMetrics", "The dataEmitMode set is not supported now ", cfg.DataEmitMode)
		return func() {}
	}
}

func emitLog(d time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(d)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			var buf bytes.Buffer
			WriteOnce(&buf)
			log.Info("metrics", "data", buf.String())
		case <-done:
			return
		}
	}
}

//Counter 计数器
func Counter(name string) go_metrics.Counter {
	return go_metrics.GetOrRegisterCounter(Namespace+"."+name, nil)
}

//Timer 计时器
func Timer(name string) go_metrics.Timer {
	return go_metrics.GetOrRegisterTimer(Namespace+"."+name, nil)
}

//Gauge 当前值
func Gauge(name string) go_metrics.Gauge {
	return go_metrics.GetOrRegisterGauge(Namespace+"."+name, nil)
}

//WriteOnce 输出一次所有统计项
func WriteOnce(w io.Writer) {
	go_metrics.WriteOnce(go_metrics.DefaultRegistry, w)
}
