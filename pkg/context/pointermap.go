package context

// PointerMap is the transient address<->offset map spec §3 and §4.E use to
// detect shared and cyclic object graphs when CheckRecursivePointers is
// set. On serialize it maps a pointee's address to the buffer offset its
// first occurrence was written at; on deserialize it maps an offset to the
// address that was allocated for it. A PointerMap is per-context and never
// shared across messages (spec §5).
//
// Go has real pointers, so "address" is the pointer's identity
// (uintptr(unsafe.Pointer(p))) rather than the arena-index substitution
// spec §9 offers for pointer-free target languages; callers needing that
// substitution can key this map by an arbitrary comparable id instead of a
// true address.
type PointerMap struct {
	addrToOffset map[uintptr]int
	offsetToAddr map[int]uintptr
}

// NewPointerMap returns an empty map ready for either direction; callers
// only ever use the methods matching their own pass direction.
func NewPointerMap() *PointerMap {
	return &PointerMap{
		addrToOffset: make(map[uintptr]int),
		offsetToAddr: make(map[int]uintptr),
	}
}

// OffsetOf returns the offset previously recorded for addr, during
// serialize.
func (m *PointerMap) OffsetOf(addr uintptr) (int, bool) {
	off, ok := m.addrToOffset[addr]
	return off, ok
}

// RecordOffset records that addr was first written at offset, during
// serialize.
func (m *PointerMap) RecordOffset(addr uintptr, offset int) {
	m.addrToOffset[addr] = offset
}

// AddressOf returns the address previously recorded for offset, during
// deserialize.
func (m *PointerMap) AddressOf(offset int) (uintptr, bool) {
	addr, ok := m.offsetToAddr[offset]
	return addr, ok
}

// RecordAddress records that offset decoded to addr, during deserialize.
func (m *PointerMap) RecordAddress(offset int, addr uintptr) {
	m.offsetToAddr[offset] = addr
}

// AddedPointers is the per-decode owning container for heap allocations
// produced while resolving pointer fields (spec §3, §5). Ownership of
// every pointee it records transfers to whoever drains it.
type AddedPointers struct {
	items []any
}

// NewAddedPointers returns an empty container.
func NewAddedPointers() *AddedPointers {
	return &AddedPointers{}
}

// Add records a newly allocated pointee.
func (a *AddedPointers) Add(v any) {
	a.items = append(a.items, v)
}

// Len reports how many pointees are currently owned.
func (a *AddedPointers) Len() int { return len(a.items) }

// Drain returns and clears the owned pointees, transferring ownership to
// the caller.
func (a *AddedPointers) Drain() []any {
	out := a.items
	a.items = nil
	return out
}
