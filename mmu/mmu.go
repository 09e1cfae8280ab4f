// Package mmu implements the NES CPU memory management unit: address
// decoding, mirroring, write protection, and memory-mapped I/O
// callbacks.
//
// Mapped regions are kept in a sorted table rather than a hand-written
// switch over address ranges, so that RAM mirroring, PPU port
// mirroring, and PRG mirroring are all instances of the same
// mechanism instead of three separate special cases.
package mmu

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnmappedMemory is returned when an address has no mapped region.
var ErrUnmappedMemory = errors.New("unmapped memory access")

// ErrMemoryAlreadyMapped is returned by Map when the requested range
// intersects an already-mapped region.
var ErrMemoryAlreadyMapped = errors.New("memory region already mapped")

// ErrWritingROMemory is returned by WriteByte when the target region
// is not writable.
var ErrWritingROMemory = errors.New("write to read-only memory")

// Callback is invoked synchronously on every access to a mapped
// region that registered one. data is nil for a read access, and the
// byte being stored for a write access (after the store has already
// happened). The callback must not re-enter the CPU or the MMU; only
// the PPU listens, and only to update its own internal state and the
// shared NMI cell. A non-nil error return models a fatal,
// developer-visible condition and propagates out of
// ReadByte/WriteByte to the caller.
type Callback func(addr uint16, data *uint8) error

// Region is a single mapped address range. The half-open interval
// [Start, End) is the virtual address range; End may be 0x10000 to
// reach the top of the 16-bit space. When End-Start exceeds
// len(Backing), addresses mirror modulo len(Backing).
type Region struct {
	Start    uint16
	End      uint32 // allows End == 0x10000 without wrapping to 0
	Backing  []byte
	Writable bool
	OnAccess Callback
}

func (r *Region) contains(addr uint16) bool {
	return uint32(addr) >= uint32(r.Start) && uint32(addr) < r.End
}

func (r *Region) offset(addr uint16) int {
	return int((uint32(addr) - uint32(r.Start)) % uint32(len(r.Backing)))
}

// MMU owns the sorted, non-overlapping set of mapped regions backing
// the CPU's 16-bit address space.
type MMU struct {
	regions []*Region
	sorted  bool
}

// New returns an empty MMU with no mapped regions.
func New() *MMU {
	return &MMU{}
}

// Map appends region to the address space. It fails with
// ErrMemoryAlreadyMapped if [region.Start, region.End) intersects any
// region already mapped. Map does not require regions to be added in
// address order; call Sort once wiring is complete.
func (m *MMU) Map(region *Region) error {
	for _, r := range m.regions {
		if intervalsOverlap(uint32(region.Start), region.End, uint32(r.Start), r.End) {
			return fmt.Errorf("mmu: [0x%04x, 0x%x) overlaps existing [0x%04x, 0x%x): %w",
				region.Start, region.End, r.Start, r.End, ErrMemoryAlreadyMapped)
		}
	}
	m.regions = append(m.regions, region)
	m.sorted = false
	return nil
}

func intervalsOverlap(s1, e1, s2, e2 uint32) bool {
	return s1 < e2 && s2 < e1
}

// Sort orders the mapped regions by start address ascending, so
// Lookup can binary search them. Called once after wiring is
// complete; the region list is read-only thereafter.
func (m *MMU) Sort() {
	sort.Slice(m.regions, func(i, j int) bool {
		return m.regions[i].Start < m.regions[j].Start
	})
	m.sorted = true
}

// Lookup returns the region containing addr, or nil if unmapped. It
// binary searches the sorted region table.
func (m *MMU) Lookup(addr uint16) *Region {
	if !m.sorted {
		m.Sort()
	}
	regions := m.regions
	i := sort.Search(len(regions), func(i int) bool {
		return uint32(regions[i].Start) > uint32(addr)
	})
	// regions[i] is the first region starting after addr; the
	// candidate, if any, is the one just before it.
	if i == 0 {
		return nil
	}
	r := regions[i-1]
	if r.contains(addr) {
		return r
	}
	return nil
}

// ReadByte returns the byte at addr, mirroring into the backing
// buffer as needed. If the matched region has a callback, it fires
// after the read with data == nil. Fails with ErrUnmappedMemory if no
// region matches.
func (m *MMU) ReadByte(addr uint16) (uint8, error) {
	r := m.Lookup(addr)
	if r == nil {
		return 0, fmt.Errorf("mmu: read 0x%04x: %w", addr, ErrUnmappedMemory)
	}
	v := r.Backing[r.offset(addr)]
	if r.OnAccess != nil {
		if err := r.OnAccess(addr, nil); err != nil {
			return v, err
		}
	}
	return v, nil
}

// WriteByte stores val at addr, mirroring into the backing buffer as
// needed. Fails with ErrWritingROMemory if the region is not
// writable, or ErrUnmappedMemory if no region matches. If the region
// has a callback, it fires after the store with data == &val.
func (m *MMU) WriteByte(addr uint16, val uint8) error {
	r := m.Lookup(addr)
	if r == nil {
		return fmt.Errorf("mmu: write 0x%04x: %w", addr, ErrUnmappedMemory)
	}
	if !r.Writable {
		return fmt.Errorf("mmu: write 0x%04x: %w", addr, ErrWritingROMemory)
	}
	r.Backing[r.offset(addr)] = val
	if r.OnAccess != nil {
		if err := r.OnAccess(addr, &val); err != nil {
			return err
		}
	}
	return nil
}

// ReadBytes fills buf starting at addr, wrapping the 16-bit address
// as needed, preserving mirroring at region boundaries. It is a
// straightforward per-byte loop; correctness at region boundaries
// matters more than a single-region fast path here.
func (m *MMU) ReadBytes(addr uint16, buf []byte) error {
	for i := range buf {
		v, err := m.ReadByte(addr + uint16(i))
		if err != nil {
			return err
		}
		buf[i] = v
	}
	return nil
}

// Read16 reads a little-endian 16-bit value at addr.
func (m *MMU) Read16(addr uint16) (uint16, error) {
	lo, err := m.ReadByte(addr)
	if err != nil {
		return 0, err
	}
	hi, err := m.ReadByte(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}
