package cpu8080

import "testing"

func TestMemoryReadWrite8(t *testing.T) {
	m := NewMemory()
	m.Write8(0x1000, 0x42)
	requireEqualU8(t, "0x1000", m.Read8(0x1000), 0x42)
}

func TestMemoryReadWrite16LittleEndian(t *testing.T) {
	m := NewMemory()
	if err := m.Write16(0x2000, 0xBEEF); err != nil {
		t.Fatalf("Write16: %v", err)
	}
	requireEqualU8(t, "low byte", m.Read8(0x2000), 0xEF)
	requireEqualU8(t, "high byte", m.Read8(0x2001), 0xBE)

	got, err := m.Read16(0x2000)
	if err != nil {
		t.Fatalf("Read16: %v", err)
	}
	requireEqualU16(t, "0x2000", got, 0xBEEF)
}

func TestMemory16BitAccessAtTopOfAddressSpaceFails(t *testing.T) {
	m := NewMemory()
	if _, err := m.Read16(0xFFFF); err == nil {
		t.Fatalf("expected a 16-bit read at 0xFFFF to fail")
	}
	if err := m.Write16(0xFFFF, 0x1234); err == nil {
		t.Fatalf("expected a 16-bit write at 0xFFFF to fail")
	}
}

func TestMemoryLoadBytesAtOrigin(t *testing.T) {
	m := NewMemory()
	if err := m.LoadBytes([]byte{0xC3, 0x00, 0x01}, 0x0100); err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	requireEqualU8(t, "0x0100", m.Read8(0x0100), 0xC3)
	requireEqualU8(t, "0x0102", m.Read8(0x0102), 0x01)
}

func TestMemoryLoadBytesPastTopFails(t *testing.T) {
	m := NewMemory()
	if err := m.LoadBytes([]byte{0x00, 0x00}, 0xFFFF); err == nil {
		t.Fatalf("expected LoadBytes to reject an image that runs past 0xFFFF")
	}
}
