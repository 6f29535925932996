package imgdec

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// SourceKind tells how a Source holds its image.
type SourceKind uint8

const (
	// SourceFile is an image stored in a file.
	SourceFile SourceKind = iota
	// SourceBytes is an encoded image held in memory.
	SourceBytes
	// SourceRaw is an in-memory RawImage descriptor.
	SourceRaw
)

// String returns a short name of k.
func (k SourceKind) String() string {
	switch k {
	case SourceFile:
		return "file"
	case SourceBytes:
		return "bytes"
	case SourceRaw:
		return "raw"
	default:
		return fmt.Sprintf("SourceKind(%d)", k)
	}
}

// Source identifies an image to decode.
type Source interface {
	Kind() SourceKind
	// Key identifies the source in the cache.
	Key() Key
}

// Key is the cache identity of a Source: a file path, the address of a
// RawImage, or the SHA-256 of encoded bytes.
type Key struct {
	kind SourceKind
	path string
	raw  *RawImage
	sum  [sha256.Size]byte
}

// Kind returns the kind of source the key was derived from.
func (k Key) Kind() SourceKind { return k.kind }

// String formats k for logs.
func (k Key) String() string {
	switch k.kind {
	case SourceFile:
		return "file:" + k.path
	case SourceRaw:
		return fmt.Sprintf("raw:%p", k.raw)
	default:
		return fmt.Sprintf("bytes:%x", k.sum[:8])
	}
}

// FileSource is an image file on disk.
type FileSource string

// File returns a Source for the file at path.
func File(path string) FileSource { return FileSource(path) }

// Kind implements Source.
func (FileSource) Kind() SourceKind { return SourceFile }

// Key implements Source.
func (f FileSource) Key() Key { return Key{kind: SourceFile, path: string(f)} }

// Path returns the file path.
func (f FileSource) Path() string { return string(f) }

// Ext returns the lower-case file extension without the dot.
func (f FileSource) Ext() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(string(f))), ".")
}

// BytesSource is an encoded image held in memory. Sources with equal
// content share one cache entry.
type BytesSource struct {
	data []byte
	sum  [sha256.Size]byte
}

// Bytes returns a Source for encoded image data. The slice must not be
// modified afterwards.
func Bytes(data []byte) *BytesSource {
	return &BytesSource{data: data, sum: sha256.Sum256(data)}
}

// Kind implements Source.
func (*BytesSource) Kind() SourceKind { return SourceBytes }

// Key implements Source.
func (b *BytesSource) Key() Key { return Key{kind: SourceBytes, sum: b.sum} }

// Data returns the encoded bytes.
func (b *BytesSource) Data() []byte { return b.data }

// head returns up to n leading bytes of an encoded source.
func head(src Source, n int) ([]byte, error) {
	switch s := src.(type) {
	case *BytesSource:
		return s.data[:min(n, len(s.data))], nil
	case *RawImage:
		if s.encoded() {
			return s.Data[:min(n, len(s.Data))], nil
		}
	case FileSource:
		f, err := os.Open(s.Path())
		if err != nil {
			return nil, err
		}
		defer f.Close()
		buf := make([]byte, n)
		k, err := io.ReadFull(f, buf)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return nil, err
		}
		return buf[:k], nil
	}
	return nil, nil
}

// readAll returns the complete encoded content of src.
func readAll(src Source) ([]byte, error) {
	switch s := src.(type) {
	case *BytesSource:
		return s.data, nil
	case *RawImage:
		if s.encoded() {
			return s.Data, nil
		}
	case FileSource:
		return os.ReadFile(s.Path())
	}
	return nil, fmt.Errorf("imgdec: %s source has no encoded bytes", src.Kind())
}
