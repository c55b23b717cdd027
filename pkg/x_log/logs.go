// file:artkv/pkg/x_log/logs.go
package x_log

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// GetLogs reads and returns the last N lines from a file.
func GetLogs(filename string, n int) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if len(lines) > n {
			lines = lines[1:]
		}
	}
	return lines, scanner.Err()
}

// PrintLogs writes each line to w behind a styled prefix.
func PrintLogs(w io.Writer, lines []string, prefix string, style lipgloss.Style) {
	for _, line := range lines {
		fmt.Fprintln(w, style.Render(prefix), line)
	}
}
