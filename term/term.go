// Package term sizes and wraps text for the interactive host console,
// the way a disassembly dump or warrior listing needs to fit the
// attached terminal rather than spill past its right edge.
package term

import (
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// DefaultWidth is used whenever the terminal size cannot be determined
// (piped output, a non-tty, or an unsupported platform ioctl).
const DefaultWidth = 80

// Width reports the current width of fd in columns, falling back to
// DefaultWidth when the ioctl fails.
func Width(fd int) int {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return DefaultWidth
	}
	return int(ws.Col)
}

// StdoutWidth is Width(os.Stdout.Fd()), the common case for the host
// console.
func StdoutWidth() int {
	return Width(int(os.Stdout.Fd()))
}

// Wrap breaks text into lines no wider than width, breaking only at
// spaces so a disassembly mnemonic or operand is never split mid-token.
func Wrap(text string, width int) []string {
	if width <= 0 {
		width = DefaultWidth
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	lines = append(lines, line)
	return lines
}
