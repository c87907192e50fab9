package domain

import (
	"bufio"
	"bytes"
	"strings"
)

// maxLineSize bounds a single source line; generated headers can be long.
const maxLineSize = 4 * 1024 * 1024

// splitLines breaks content into lines without their terminators. A trailing
// "\r" is dropped along with the "\n", so CRLF files come back as plain lines.
func splitLines(content []byte) ([]string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// joinLines renders lines as newline-terminated text.
func joinLines(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}

	return []byte(strings.Join(lines, "\n") + "\n")
}
