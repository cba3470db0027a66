package insts

// SignExtend interprets the low bits of value as a two's-complement number.
// A width of 0 yields 0; widths of 32 or more reinterpret the whole value.
func SignExtend(value uint32, bits uint) int32 {
	if bits == 0 {
		return 0
	}
	if bits >= 32 {
		return int32(value)
	}

	shift := 32 - bits
	return int32(value<<shift) >> shift
}
