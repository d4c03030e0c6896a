package source

import (
	"bytes"
	"fmt"
	"os"

	"fortio.org/safecast"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// FileSet keeps every file loaded during a run.
type FileSet struct {
	files []File
	index map[string]FileID // path -> id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores a file from already decoded bytes and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	return fileSet.add(path, KindOf(path), int64(len(content)), content, flags)
}

// AddVirtual adds a file that does not exist on disk (tests, stdin).
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

func (fileSet *FileSet) add(path string, kind Kind, size int64, content []byte, flags FileFlags) FileID {
	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    path,
		Kind:    kind,
		Size:    size,
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   flags,
	})
	// индекс всегда указывает на последнюю версию файла
	fileSet.index[path] = id
	return id
}

// Load checks that path is a regular, non-empty file with a supported
// extension, reads it and decodes a leading BOM. The checks run in that order,
// so an empty file is reported as empty whatever its extension.
// All failures are *LoadError.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, &LoadError{Path: path, Err: err}
	}
	if info.IsDir() {
		return 0, &LoadError{Path: path, Err: fmt.Errorf("%s is a directory", path)}
	}
	if info.Size() == 0 {
		return 0, &LoadError{Path: path, Err: ErrEmpty}
	}
	kind := KindOf(path)
	if kind == KindUnknown {
		return 0, &LoadError{Path: path, Err: ErrUnsupportedKind}
	}

	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, &LoadError{Path: path, Err: err}
	}
	content, flags, err := decode(raw)
	if err != nil {
		return 0, &LoadError{Path: path, Err: fmt.Errorf("decode %s: %w", path, err)}
	}
	if len(content) == 0 {
		// файл из одного BOM
		return 0, &LoadError{Path: path, Err: ErrEmpty}
	}
	return fileSet.add(path, kind, info.Size(), content, flags), nil
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// GetByPath returns the latest file loaded under path.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fileSet.index[path]; ok {
		return &fileSet.files[id], true
	}
	return nil, false
}

// Len returns the number of loaded files.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// GetLine returns line lineNum (1-based) without its terminator.
// Out of range lines yield an empty string.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}

	var start, end, lenLineIdx, lenContent uint32
	var err error
	lenLineIdx, err = safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent, err = safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}

	if (lineNum - 1) < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}

	if start >= lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}

	return string(bytes.TrimSuffix(f.Content[start:end], []byte{'\r'}))
}

// decode strips a UTF-8 BOM and transcodes UTF-16 with a BOM to UTF-8.
// Content without a BOM is returned untouched.
func decode(raw []byte) ([]byte, FileFlags, error) {
	flags := detectBOM(raw)
	if flags == 0 {
		return raw, 0, nil
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), raw)
	if err != nil {
		return nil, flags, err
	}
	return out, flags, nil
}
