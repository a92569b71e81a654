// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "strconv"

//coinflip action ty
const (
	CoinflipActionCreate = iota + 1
	CoinflipActionJoin
	CoinflipActionRevealCreator
	CoinflipActionRevealJoiner
	CoinflipActionForfeit
	CoinflipActionFinalize
)

//log ty，和系统的 log ty 错开
const (
	TyLogCoinflipCreate = iota + 1001
	TyLogCoinflipJoin
	TyLogCoinflipReveal
	TyLogCoinflipReady
	TyLogCoinflipForfeit
	TyLogCoinflipFinalize
)

const (
	//CoinflipX 执行器名
	CoinflipX = "coinflip"
	//PackageName 插件包名
	PackageName = "coinflip"
)

//查询接口
const (
	FuncNameGetGame    = "GetGame"
	FuncNameListGames  = "ListGames"
	FuncNameCountGames = "CountGames"
	FuncNameGetVault   = "GetVault"
	FuncNameGetRound   = "GetRound"
)

const (
	ListDESC = int32(0)
	ListASC  = int32(1)

	DefaultCount = int32(20)  //默认一次取多少条记录
	MaxCount     = int32(100) //最多取100条
)

//ExecerCoinflip 执行器名的字节形式
var ExecerCoinflip = []byte(CoinflipX)

//Status 游戏状态，只能按下面的顺序向前推进
type Status uint8

//game 的状态变化：
// status == 0 创建，等待对手加入
// status == 1 已加入，双方资金都已经托管
// status == 2 至少一方已经开奖
// status == 3 双方都已开奖，结果已经计算，等待结算
// status == 4 结算完成(或者超时没收)
const (
	StatusCreated Status = iota
	StatusJoined
	StatusRevealing
	StatusReadyToFinalize
	StatusFinalized
)

var statusName = map[Status]string{
	StatusCreated:         "Created",
	StatusJoined:          "Joined",
	StatusRevealing:       "Revealing",
	StatusReadyToFinalize: "ReadyToFinalize",
	StatusFinalized:       "Finalized",
}

func (s Status) String() string {
	if name, ok := statusName[s]; ok {
		return name
	}
	return "Unknown"
}

//Valid 状态码是否在 0-4 之间
func (s Status) Valid() bool {
	return s <= StatusFinalized
}

//MarshalText json 中显示状态名
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, ErrGameDecode
	}
	return []byte(s.String()), nil
}

//UnmarshalText 状态名或者状态码
func (s *Status) UnmarshalText(text []byte) error {
	st, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

//ParseStatus 解析状态名或者状态码
func ParseStatus(text string) (Status, error) {
	for st, name := range statusName {
		if name == text || strconv.Itoa(int(st)) == text {
			return st, nil
		}
	}
	return 0, ErrInvalidStatus
}
