// Package util contains internal helpers (key encoding, sharding, padding).
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

import (
	"encoding/binary"
	"fmt"
)

// AppendKey appends a byte encoding of k to dst for byte-oriented hashers.
// Supported: string, []byte-like arrays ([16|32|64]byte), bool, all int/uint
// widths, uintptr and fmt.Stringer. Integers are encoded as 8 little-endian
// bytes regardless of width.
// It panics on other key types: hashing an arbitrary struct through
// fmt would be slow and collide silently, so use hasher.Seeded instead.
func AppendKey[K comparable](dst []byte, k K) []byte {
	switch v := any(k).(type) {
	case string:
		return append(dst, v...)
	case [16]byte:
		return append(dst, v[:]...)
	case [32]byte:
		return append(dst, v[:]...)
	case [64]byte:
		return append(dst, v[:]...)
	case bool:
		if v {
			return append(dst, 1)
		}
		return append(dst, 0)
	case uint8:
		return binary.LittleEndian.AppendUint64(dst, uint64(v))
	case uint16:
		return binary.LittleEndian.AppendUint64(dst, uint64(v))
	case uint32:
		return binary.LittleEndian.AppendUint64(dst, uint64(v))
	case uint64:
		return binary.LittleEndian.AppendUint64(dst, v)
	case uint:
		return binary.LittleEndian.AppendUint64(dst, uint64(v))
	case uintptr:
		return binary.LittleEndian.AppendUint64(dst, uint64(v))
	case int8:
		return binary.LittleEndian.AppendUint64(dst, uint64(v))
	case int16:
		return binary.LittleEndian.AppendUint64(dst, uint64(v))
	case int32:
		return binary.LittleEndian.AppendUint64(dst, uint64(v))
	case int64:
		return binary.LittleEndian.AppendUint64(dst, uint64(v))
	case int:
		return binary.LittleEndian.AppendUint64(dst, uint64(v))
	case fmt.Stringer:
		return append(dst, v.String()...)
	default:
		panic(fmt.Sprintf("util.AppendKey: unsupported key type %T; convert the key to string or use a seeded hasher", k))
	}
}
