// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	ct "github.com/33cn/coinflip/plugin/dapp/coinflip/types"
)

type event int

const (
	eventJoin event = iota
	eventReveal
	eventBothRevealed
	eventFinalize
	eventTimeout
)

var eventName = map[event]string{
	eventJoin:         "join",
	eventReveal:       "reveal",
	eventBothRevealed: "bothRevealed",
	eventFinalize:     "finalize",
	eventTimeout:      "timeout",
}

func (e event) String() string {
	return eventName[e]
}

type transition struct {
	from []ct.Status
	to   ct.Status
}

//状态转换表，create 没有源状态，直接生成 Created
//表里每一项的 to 都不小于 from，所以状态不会后退
var transitions = map[event]transition{
	eventJoin:         {from: []ct.Status{ct.StatusCreated}, to: ct.StatusJoined},
	eventReveal:       {from: []ct.Status{ct.StatusJoined, ct.StatusRevealing}, to: ct.StatusRevealing},
	eventBothRevealed: {from: []ct.Status{ct.StatusRevealing}, to: ct.StatusReadyToFinalize},
	eventFinalize:     {from: []ct.Status{ct.StatusReadyToFinalize}, to: ct.StatusFinalized},
	eventTimeout:      {from: []ct.Status{ct.StatusJoined, ct.StatusRevealing}, to: ct.StatusFinalized},
}

//checkTransition 当前状态下是否允许这个事件
func checkTransition(status ct.Status, ev event) error {
	t, ok := transitions[ev]
	if !ok {
		return ct.ErrBadStatus
	}
	for _, from := range t.from {
		if from == status {
			return nil
		}
	}
	return ct.ErrBadStatus
}

//applyTransition 检查并推进状态
func applyTransition(game *ct.Game, ev event) error {
	if err := checkTransition(game.Status, ev); err != nil {
		clog.Debug("applyTransition", "status", game.Status, "event", ev, "err", err)
		return err
	}
	game.Status = transitions[ev].to
	return nil
}
