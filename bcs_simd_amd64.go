//go:build goexperiment.simd && amd64

package csvspan

import (
	"simd/archsimd"
	"unsafe"

	"github.com/klauspost/cpuid/v2"
)

// =============================================================================
// Vector Byte-Class Scanner (SSE4.2-width)
// =============================================================================
//
// This narrows the vector width down to the 16-byte window the BCS
// contract specifies (one SSE register, targeting PCMPISTRI-class
// semantics) and works over an arbitrary 1-4-byte ByteClass rather than a
// CSV-fixed four-way quote/separator/CR/LF mask.
//
// archsimd.Int8x16.Equal(...).ToBits() lowers to a 128-bit packed compare
// (VPCMPEQB under AVX, PCMPEQB pre-AVX) followed by a byte-mask extraction
// (VPMOVB2M/PMOVMSKB-class instruction). That is a faithful stand-in for
// PCMPISTRI's "find first matching byte in a 16-byte register" semantics;
// unlike PCMPISTRI it does not natively return "first match" so this file
// derives that from the produced bitmask via TrailingZeros.
// =============================================================================

// useVectorBCS is set once at init time based on runtime CPU features. When
// false, Scan always uses the portable scalar fallback.
var useVectorBCS bool

func init() {
	if cpuid.CPU.Has(cpuid.SSE42) {
		useVectorBCS = true
		scan = scanDispatch
	}
}

// scanDispatch is installed as the package's active scanFunc when the CPU
// supports the instructions scanVector needs.
func scanDispatch(buf []byte, class ByteClass) int {
	if useVectorBCS && len(buf) >= windowSize {
		return scanVector(buf, class)
	}
	return scanScalar(buf, class)
}

// scanVector implements the BCS contract using one 128-bit vector compare
// per candidate byte in class, OR-ing the resulting bitmasks together
// before taking the lowest set bit. Precondition: buf has windowSize
// readable bytes (the sentinel tail guarantees this for any live cursor
// window).
func scanVector(buf []byte, class ByteClass) int {
	window := archsimd.LoadInt8x16((*[windowSize]int8)(unsafe.Pointer(&buf[0])))

	var mask uint16
	for i := uint8(0); i < class.n; i++ {
		cmp := archsimd.BroadcastInt8x16(int8(class.bytes[i]))
		mask |= uint16(window.Equal(cmp).ToBits())
	}
	return firstSetBit16(mask)
}
