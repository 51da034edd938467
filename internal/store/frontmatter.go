package store

import (
	"bytes"
	"errors"
)

var (
	// ErrMissingFrontMatter indicates the document did not start with a YAML fence.
	ErrMissingFrontMatter = errors.New("store: missing front matter")
	// ErrMalformedFrontMatter indicates the front matter block was not closed.
	ErrMalformedFrontMatter = errors.New("store: malformed front matter")
)

var fence = []byte("---\n")

// SplitFrontMatter separates a document that starts with `---` YAML
// fences into its raw metadata block and body. The metadata is returned
// unparsed so callers can apply their own typed schema.
func SplitFrontMatter(content []byte) (meta, body []byte, err error) {
	normalized := normalizeNewlines(content)
	if !bytes.HasPrefix(normalized, fence) {
		return nil, nil, ErrMissingFrontMatter
	}
	rest := normalized[len(fence):]
	parts := bytes.SplitN(rest, []byte("\n---\n"), 2)
	if len(parts) < 2 {
		return nil, nil, ErrMalformedFrontMatter
	}
	return parts[0], parts[1], nil
}

// JoinFrontMatter renders a metadata block and body with YAML fences.
func JoinFrontMatter(meta, body []byte) []byte {
	var buf bytes.Buffer
	buf.Write(fence)
	buf.Write(bytes.TrimRight(meta, "\n"))
	buf.WriteString("\n---\n")
	buf.Write(body)
	return buf.Bytes()
}

func normalizeNewlines(content []byte) []byte {
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
}
