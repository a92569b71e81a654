// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

//游戏规则错误，原样返回给调用者，状态不做任何修改
var (
	ErrInvalidStake    = errors.New("ErrInvalidStake")
	ErrBadStatus       = errors.New("ErrBadStatus")
	ErrAlreadyJoined   = errors.New("ErrAlreadyJoined")
	ErrNotPlayer       = errors.New("ErrNotPlayer")
	ErrInvalidChoice   = errors.New("ErrInvalidChoice")
	ErrBadReveal       = errors.New("ErrBadReveal")
	ErrAlreadyRevealed = errors.New("ErrAlreadyRevealed")
	ErrTooEarly        = errors.New("ErrTooEarly")
	ErrNotReady        = errors.New("ErrNotReady")
)

var (
	ErrGameNotFound  = errors.New("ErrGameNotFound")
	ErrGameDecode    = errors.New("ErrGameDecode")
	ErrInvalidStatus = errors.New("ErrInvalidStatus")
	ErrSecretLength  = errors.New("ErrSecretLength")
	ErrHashLength    = errors.New("ErrHashLength")
	ErrDeadline      = errors.New("ErrDeadline")
)
