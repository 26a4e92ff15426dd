package source

type (
	// FileID uniquely identifies a document within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a document.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the document was added from memory (editor buffer, stdin, test).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска
	FileHadBOM
	FileNormalizedCRLF
	// FileDecodedUTF16 marks a document transcoded from UTF-16 to UTF-8.
	FileDecodedUTF16
)

// File captures metadata and content for a single document.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a document.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, bytes
}
