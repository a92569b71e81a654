// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

//系统错误
var (
	ErrNotFound          = errors.New("ErrNotFound")
	ErrNoBalance         = errors.New("ErrNoBalance")
	ErrAmount            = errors.New("ErrAmount")
	ErrSendSameToRecv    = errors.New("ErrSendSameToRecv")
	ErrInvalidParam      = errors.New("ErrInvalidParam")
	ErrActionNotSupport  = errors.New("ErrActionNotSupport")
	ErrQueryNotSupport   = errors.New("ErrQueryNotSupport")
	ErrExecNotFound      = errors.New("ErrExecNotFound")
	ErrExecNameNotAllow  = errors.New("ErrExecNameNotAllow")
	ErrEmptyTx           = errors.New("ErrEmptyTx")
	ErrInvalidAddress    = errors.New("ErrInvalidAddress")
	ErrConfigNotFound    = errors.New("ErrConfigNotFound")
	ErrHeightOverflow    = errors.New("ErrHeightOverflow")
	ErrDecode            = errors.New("ErrDecode")
	ErrExecStateNotMatch = errors.New("ErrExecStateNotMatch")
	ErrNotAllowMemSetKey = errors.New("ErrNotAllowMemSetKey")
	ErrNotAllowKey       = errors.New("ErrNotAllowKey")
	ErrTxDup             = errors.New("ErrTxDup")
)
