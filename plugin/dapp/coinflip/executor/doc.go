// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

/*
coinflip 两人押注的猜硬币游戏，先承诺后开奖

交易：
1. create    创建者押注 stake，提交 commitA = sha256(choice || secret)，设置开奖截止高度
2. join      加入者押注相同的 stake，提交 commitB
3. reveal    双方各自公开 choice 和 secret，顺序不限，第二个开奖的交易计算结果
             coin = sha256(secretA || secretB || gameID)[0] % 2
             coin == choiceA 时创建者赢，否则加入者赢
4. finalize  把 2*stake 付给赢家
5. forfeit   过了截止高度还没有都开奖，任何人都可以调用：
             只有一方开奖，全部押注给开奖的一方；都没开奖，各自退回 stake

资金托管在 vault = sha256("vault" || gameID) 账户里，托管账户单独记账(mavl-coinflip-vault-)，游戏结束时余额为0。
游戏地址 gameID = sha256("game" || creator || seed)，seed 为空时用 create 交易的哈希。

状态：
Created -> Joined -> Revealing -> ReadyToFinalize -> Finalized
Joined/Revealing 超时 -> Finalized

查询：
GetGame     gameId
ListGames   status, addr, index, count, direction
CountGames  status, addr
GetVault    gameId
GetRound    gameId 导出证据并重新验证
*/
