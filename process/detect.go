package process

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

const (
	documentExt = ".xml"
	archiveExt  = ".zip"
	headerSize  = 512
)

var docType = filetype.NewType("tabxml", "application/xml")

func init() {
	filetype.AddMatcher(docType, docMatcher)
}

// docMatcher expects already decoded header.
func docMatcher(buf []byte) bool {
	buf = bytes.TrimLeft(buf, " \t\r\n")
	return bytes.HasPrefix(buf, []byte("<?xml")) || bytes.HasPrefix(buf, []byte("<doc"))
}

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

// detectUTF looks at BOM only. UTF-32LE has to be checked before UTF-16LE.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF8BOM3(buf):
		return encUTF8
	case isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	}
	return encUnknown
}

// selectReader wraps r so the result is UTF-8 without BOM. Documents without
// BOM are passed as is, XML decoder handles declared encoding.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUnknown:
		return r
	case encUTF8:
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
	case encUTF16BigEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF16LittleEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF32BigEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder())
	case encUTF32LittleEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder())
	}
	panic(fmt.Sprintf("unknown source encoding %d", enc))
}

func readHeader(r io.Reader) ([]byte, error) {
	buf := make([]byte, headerSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

// isDocument checks decoded header of the stream.
func isDocument(header []byte) (bool, srcEncoding, error) {
	enc := detectUTF(header)
	decoded, err := io.ReadAll(selectReader(bytes.NewReader(header), enc))
	if err != nil && len(decoded) == 0 {
		return false, encUnknown, nil
	}
	if !filetype.IsType(decoded, docType) {
		return false, encUnknown, nil
	}
	return true, enc, nil
}

func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), archiveExt) {
		return false, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	header, err := readHeader(f)
	if err != nil {
		return false, err
	}
	return filetype.Is(header, "zip"), nil
}

func isDocumentFile(path string) (bool, srcEncoding, error) {
	if !strings.EqualFold(filepath.Ext(path), documentExt) {
		return false, encUnknown, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, encUnknown, err
	}
	defer f.Close()

	header, err := readHeader(f)
	if err != nil {
		return false, encUnknown, err
	}
	return isDocument(header)
}

func isDocumentInArchive(f *zip.File) (bool, srcEncoding, error) {
	if !strings.EqualFold(filepath.Ext(f.Name), documentExt) {
		return false, encUnknown, nil
	}
	r, err := f.Open()
	if err != nil {
		return false, encUnknown, err
	}
	defer r.Close()

	header, err := readHeader(r)
	if err != nil {
		return false, encUnknown, err
	}
	return isDocument(header)
}
