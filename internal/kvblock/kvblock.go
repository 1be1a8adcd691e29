// Package kvblock reads plain-text logs made of "Key: value" blocks.
//
// Blocks are separated by one or more blank lines. Within a block, the first
// colon on a line separates key and value, both trimmed. Lines without a colon
// are skipped. The last block is kept even when the file does not end with a
// blank line. A key repeated inside a block keeps its last value.
package kvblock

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single line; memo fields can be long.
const maxLineSize = 1 << 20

// Block is one record: key -> value, keys as written.
type Block map[string]string

// Get returns the value for key, or def when the key is absent.
// A key present with an empty value returns the empty string.
func (b Block) Get(key, def string) string {
	if v, ok := b[key]; ok {
		return v
	}
	return def
}

// ParseFile reads the blocks of the file at path.
func ParseFile(path string) ([]Block, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Parse reads every block from r in order.
func Parse(r io.Reader) ([]Block, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		blocks  []Block
		current Block
	)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if current == nil {
			current = make(Block)
		}
		current[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks, nil
}
