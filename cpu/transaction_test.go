package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionReadAccumulatesBigEndian(t *testing.T) {
	txn := transaction{active: true, addr: 0x2000, bytes: 2, dir: dirRead}

	assert.True(t, txn.putReadResult(0x2000, 0x12))
	assert.False(t, txn.isDone())
	assert.True(t, txn.putReadResult(0x2001, 0x34))
	assert.True(t, txn.isDone())
	assert.Equal(t, uint16(0x1234), txn.valueRead())
}

func TestTransactionReadRejectsWrongAddress(t *testing.T) {
	txn := transaction{active: true, addr: 0x2000, bytes: 2, dir: dirRead}
	assert.False(t, txn.putReadResult(0x3000, 0xFF))
	assert.Equal(t, 0, txn.bytesDone)
}

func TestTransactionWriteBackwardsForStackPushes(t *testing.T) {
	txn := transaction{active: true, addr: 0x9FFF, bytes: 2, dir: dirWrite, backwards: true}
	assert.Equal(t, uint16(0x9FFF), txn.nextAddr())
	assert.True(t, txn.putWriteResult(0x9FFF, 0xAA))
	assert.Equal(t, uint16(0x9FFE), txn.nextAddr())
	assert.True(t, txn.putWriteResult(0x9FFE, 0xBB))
	assert.True(t, txn.isDone())
}

func TestTransactionIgnoresResultsOnceDone(t *testing.T) {
	txn := transaction{active: true, addr: 0x2000, bytes: 1, dir: dirRead}
	assert.True(t, txn.putReadResult(0x2000, 0x01))
	assert.False(t, txn.putReadResult(0x2001, 0x02))
}

func TestBeginWriteSplitsMSBFirst(t *testing.T) {
	c := &CPU{}
	c.beginWrite(0x1000, 2, 0xABCD)
	assert.Equal(t, byte(0xAB), c.txn.data[0])
	assert.Equal(t, byte(0xCD), c.txn.data[1])
}
