package pptxtest

import (
	"encoding/binary"
	"os"
	"testing"
	"unicode/utf16"
)

const (
	sectorSize = 512
	freeSect   = 0xFFFFFFFF
	endOfChain = 0xFFFFFFFE
	fatSect    = 0xFFFFFFFD
	noStream   = 0xFFFFFFFF
	// streamSectors keeps the stream at the 4096-byte mini stream cutoff so
	// it lives in regular sectors.
	streamSectors = 8
)

// WriteCompound writes a version 3 OLE compound file holding a single
// zero-filled stream called streamName. Office stores password-protected
// packages ("EncryptedPackage") and legacy decks ("PowerPoint Document")
// in this container.
func WriteCompound(t testing.TB, filename, streamName string) {
	t.Helper()
	if err := os.WriteFile(filename, BuildCompound(streamName), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", filename, err)
	}
}

// BuildCompound renders the file written by WriteCompound.
func BuildCompound(streamName string) []byte {
	// Sector 0 holds the FAT, sector 1 the directory, 2.. the stream.
	buf := make([]byte, sectorSize*(3+streamSectors))
	le := binary.LittleEndian

	h := buf[:sectorSize]
	copy(h, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	le.PutUint16(h[0x18:], 0x003E)
	le.PutUint16(h[0x1A:], 0x0003)
	le.PutUint16(h[0x1C:], 0xFFFE)
	le.PutUint16(h[0x1E:], 9)
	le.PutUint16(h[0x20:], 6)
	le.PutUint32(h[0x2C:], 1)
	le.PutUint32(h[0x30:], 1)
	le.PutUint32(h[0x38:], 4096)
	le.PutUint32(h[0x3C:], endOfChain)
	le.PutUint32(h[0x44:], endOfChain)
	le.PutUint32(h[0x4C:], 0)
	for i := 1; i < 109; i++ {
		le.PutUint32(h[0x4C+4*i:], freeSect)
	}

	fat := buf[sectorSize : 2*sectorSize]
	for i := 0; i < sectorSize/4; i++ {
		le.PutUint32(fat[4*i:], freeSect)
	}
	le.PutUint32(fat[0:], fatSect)
	le.PutUint32(fat[4:], endOfChain)
	for s := 2; s < 2+streamSectors; s++ {
		next := uint32(s + 1)
		if s == 1+streamSectors {
			next = endOfChain
		}
		le.PutUint32(fat[4*s:], next)
	}

	dir := buf[2*sectorSize : 3*sectorSize]
	dirEntry(dir[0:128], "Root Entry", 5, 1, endOfChain, 0)
	dirEntry(dir[128:256], streamName, 2, noStream, 2, sectorSize*streamSectors)
	dirEntry(dir[256:384], "", 0, noStream, 0, 0)
	dirEntry(dir[384:512], "", 0, noStream, 0, 0)

	return buf
}

func dirEntry(e []byte, name string, objType byte, child, start uint32, size uint64) {
	le := binary.LittleEndian
	if name != "" {
		units := utf16.Encode([]rune(name))
		for i, u := range units {
			le.PutUint16(e[2*i:], u)
		}
		le.PutUint16(e[0x40:], uint16(2*(len(units)+1)))
	}
	e[0x42] = objType
	e[0x43] = 1
	le.PutUint32(e[0x44:], noStream)
	le.PutUint32(e[0x48:], noStream)
	le.PutUint32(e[0x4C:], child)
	le.PutUint32(e[0x74:], start)
	le.PutUint64(e[0x78:], size)
}
