package ipc

import "encoding/binary"

const wordSize = 32

// EncodeString ABI-encodes s as the single dynamic `string` argument of a
// tuple: a head word holding the data offset, a length word, then the bytes
// right-padded to a word boundary.
func EncodeString(s string) []byte {
	padded := (len(s) + wordSize - 1) / wordSize * wordSize
	out := make([]byte, 2*wordSize+padded)
	putWord(out[0:wordSize], wordSize)
	putWord(out[wordSize:2*wordSize], uint64(len(s)))
	copy(out[2*wordSize:], s)
	return out
}

func putWord(word []byte, v uint64) {
	binary.BigEndian.PutUint64(word[wordSize-8:], v)
}
