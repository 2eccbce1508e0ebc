package fs

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

const (
	textDetectionSampleSize      = 4096
	nonPrintableThresholdPercent = 30
)

var binaryExtensions = map[string]struct{}{
	".7z":    {},
	".apk":   {},
	".avi":   {},
	".bin":   {},
	".bmp":   {},
	".bz2":   {},
	".class": {},
	".dll":   {},
	".dylib": {},
	".exe":   {},
	".flac":  {},
	".gif":   {},
	".gz":    {},
	".ico":   {},
	".iso":   {},
	".jar":   {},
	".jpeg":  {},
	".jpg":   {},
	".mkv":   {},
	".mov":   {},
	".mp3":   {},
	".mp4":   {},
	".ogg":   {},
	".otf":   {},
	".pdf":   {},
	".png":   {},
	".psd":   {},
	".so":    {},
	".tar":   {},
	".tgz":   {},
	".ttf":   {},
	".wav":   {},
	".wasm":  {},
	".woff":  {},
	".woff2": {},
	".xz":    {},
	".zip":   {},
}

// LooksBinary reports whether the file behind r is unlikely to be text. The
// name short-circuits well known binary extensions; otherwise the head of the
// file is sniffed with ReadAt, so the caller's read offset is left alone.
func LooksBinary(name string, r io.ReaderAt) (bool, error) {
	if looksBinaryByExtension(name) {
		return true, nil
	}
	sample := make([]byte, textDetectionSampleSize)
	n, err := r.ReadAt(sample, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return !IsText(sample[:n]), nil
}

// IsText determines if a content sample is text or binary.
func IsText(sample []byte) bool {
	if len(sample) == 0 {
		return true
	}
	if len(sample) > textDetectionSampleSize {
		sample = sample[:textDetectionSampleSize]
	}

	if hasUnicodeBOM(sample) {
		return true
	}
	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}
	nonPrintable := 0
	for _, b := range sample {
		if !isCommonTextByte(b) {
			nonPrintable++
		}
	}
	return nonPrintable*100/len(sample) < nonPrintableThresholdPercent
}

func looksBinaryByExtension(name string) bool {
	if name == "" {
		return false
	}
	_, ok := binaryExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// isCommonTextByte accepts backspace as well, since overstruck man pages
// are full of it.
func isCommonTextByte(b byte) bool {
	switch {
	case b == 0x08 || b == 0x09 || b == 0x0A || b == 0x0C || b == 0x0D:
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	case b == 0x1B:
		return true
	case b >= 0x80:
		return true
	default:
		return false
	}
}

func hasUnicodeBOM(sample []byte) bool {
	switch {
	case len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF:
		return true
	case len(sample) >= 2 && sample[0] == 0xFF && sample[1] == 0xFE:
		return true
	case len(sample) >= 2 && sample[0] == 0xFE && sample[1] == 0xFF:
		return true
	}
	return false
}
