package source

import (
	"fmt"

	"fortio.org/safecast"
)

func detectBOM(content []byte) FileFlags {
	switch {
	case len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF:
		return FileHadBOM
	case len(content) >= 2 && content[0] == 0xFE && content[1] == 0xFF,
		len(content) >= 2 && content[0] == 0xFF && content[1] == 0xFE:
		return FileHadBOM | FileTranscoded
	}
	return 0
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 16)
	for i, b := range content {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("line offset overflow: %w", err))
			}
			out = append(out, off)
		}
	}
	return out
}
