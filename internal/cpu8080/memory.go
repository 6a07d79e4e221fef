// memory.go - the flat 64 KiB address space. All accesses are by 16-bit
// address; a read or write is tagged with a size of 1 or 2 bytes, and
// 16-bit accesses are little-endian. Grounded in machine_bus.go's
// byte-array bus and the original source's cpu/memory.rs (same 0xFFFF
// wrap-past-end-of-space rule for 16-bit accesses).

package cpu8080

// Memory is a flat, zero-initialised 64 KiB byte array.
type Memory struct {
	data [0x10000]byte
}

// NewMemory returns an empty 64 KiB memory image.
func NewMemory() *Memory {
	return &Memory{}
}

// Read8 returns the byte at addr.
func (m *Memory) Read8(addr uint16) byte {
	return m.data[addr]
}

// Write8 stores v at addr.
func (m *Memory) Write8(addr uint16, v byte) {
	m.data[addr] = v
}

// Read16 returns the little-endian 16-bit value at addr. It fails if addr
// is 0xFFFF, since the high byte would fall outside the address space.
func (m *Memory) Read16(addr uint16) (uint16, error) {
	if addr == 0xFFFF {
		return 0, addressErrorf(addr)
	}
	return joinBytes(m.data[addr+1], m.data[addr]), nil
}

// Write16 stores v little-endian at addr. It fails if addr is 0xFFFF.
func (m *Memory) Write16(addr uint16, v uint16) error {
	if addr == 0xFFFF {
		return addressErrorf(addr)
	}
	hi, lo := splitWord(v)
	m.data[addr] = lo
	m.data[addr+1] = hi
	return nil
}

// Read performs a size-tagged read, returning a Value of matching width.
func (m *Memory) Read(addr uint16, size int) (Value, error) {
	if size == 1 {
		return U8(m.Read8(addr)), nil
	}
	v, err := m.Read16(addr)
	if err != nil {
		return Value{}, err
	}
	return U16(v), nil
}

// Write performs a size-tagged write. The Value's width determines whether
// an 8-bit or 16-bit store is performed.
func (m *Memory) Write(addr uint16, v Value) error {
	if v.Width() == 1 {
		b, err := v.Byte()
		if err != nil {
			return err
		}
		m.Write8(addr, b)
		return nil
	}
	return m.Write16(addr, v.Word())
}

// LoadBytes writes image into memory starting at origin.
// origin+len(image) must not exceed 0x10000.
func (m *Memory) LoadBytes(image []byte, origin uint16) error {
	end := int(origin) + len(image)
	if end > 0x10000 {
		return addressErrorf(uint16(end - 1))
	}
	copy(m.data[origin:], image)
	return nil
}
