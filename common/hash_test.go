// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSha256(t *testing.T) {
	// sha256("abc")
	h := Sha256([]byte("abc"))
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", HashHex(h))
	assert.Equal(t, h, Sha256([]byte("a"), []byte("bc")))
	sum := Sha2Sum([]byte("ab"), []byte("c"))
	assert.Equal(t, h, sum[:])
}

func TestHex(t *testing.T) {
	b, err := FromHex("0x0102ff")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 0xff}, b)
	assert.Equal(t, "0x0102ff", ToHex(b))
	assert.Equal(t, "", ToHex(nil))

	b, err = FromHex("abc")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0xbc}, b)

	_, err = FromHex("0xzz")
	assert.Error(t, err)
}

func TestCopyBytes(t *testing.T) {
	assert.Nil(t, CopyBytes(nil))
	src := []byte{1, 2, 3}
	dst := CopyBytes(src)
	dst[0] = 9
	assert.Equal(t, byte(1), src[0])
}
