// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"bytes"
	"testing"

	"github.com/33cn/coinflip/types"
	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	c := Counter("test.counter")
	c.Inc(2)
	assert.Equal(t, int64(2), Counter("test.counter").Count())
	Gauge("test.gauge").Update(7)
	assert.Equal(t, int64(7), Gauge("test.gauge").Value())

	var buf bytes.Buffer
	WriteOnce(&buf)
	assert.Contains(t, buf.String(), "coinflip.test.counter")
}

func TestStartMetrics(t *testing.T) {
	var buf bytes.Buffer
	Output = &buf
	StartMetrics(nil)()
	assert.Equal(t, 0, buf.Len())

	Counter("test.start").Inc(1)
	StartMetrics(&types.Metrics{EnableMetrics: true, DataEmitMode: EmitStderr})()
	assert.Contains(t, buf.String(), "coinflip.test.start")

	stop := StartMetrics(&types.Metrics{EnableMetrics: true, DataEmitMode: EmitLog})
	stop()
}
