package source

type (
	// FileID uniquely identifies a loaded file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a loaded file.
	FileFlags uint8
	// Kind selects the analyzer responsible for a file.
	Kind uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска
	FileHadBOM
	FileTranscoded // UTF-16 с BOM перекодирован в UTF-8
)

const (
	KindUnknown Kind = iota
	KindHTML
	KindCSS
)

func (k Kind) String() string {
	switch k {
	case KindHTML:
		return "html"
	case KindCSS:
		return "css"
	default:
		return "unknown"
	}
}

// File captures metadata and content for a single input file.
type File struct {
	ID      FileID
	Path    string
	Kind    Kind
	Size    int64 // размер на диске, до декодирования
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}
