// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package client

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Callback 对结果做进一步处理，比如转换成便于阅读的格式
type Callback func(res interface{}) (interface{}, error)

// Method 在节点上执行的操作
type Method func(c *Client) (interface{}, error)

// Ctx 一次命令调用的上下文
type Ctx struct {
	Conf   string
	Method Method

	cb  Callback
	out io.Writer
	err io.Writer
}

// NewCtx 创建上下文
func NewCtx(conf string, method Method) *Ctx {
	return &Ctx{
		Conf:   conf,
		Method: method,
		out:    os.Stdout,
		err:    os.Stderr,
	}
}

// SetResultCb 设置结果的回调
func (c *Ctx) SetResultCb(cb Callback) {
	c.cb = cb
}

// SetOutput 设置输出位置
func (c *Ctx) SetOutput(out, err io.Writer) {
	c.out = out
	c.err = err
}

// RunResult 打开节点，执行操作，返回结果
func (c *Ctx) RunResult() (interface{}, error) {
	cli, err := Open(c.Conf)
	if err != nil {
		return nil, err
	}
	defer cli.Close()
	result, err := c.Method(cli)
	if err != nil {
		return nil, err
	}
	if c.cb != nil {
		return c.cb(result)
	}
	return result, nil
}

// Run 执行并以 json 格式输出结果
func (c *Ctx) Run() {
	result, err := c.RunResult()
	if err != nil {
		fmt.Fprintln(c.err, err)
		return
	}
	data, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		fmt.Fprintln(c.err, err)
		return
	}
	fmt.Fprintln(c.out, string(data))
}
