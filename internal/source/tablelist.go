package source

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadTableList reads the table-list file: one table name per line, blank
// lines and lines starting with '#' ignored.
func LoadTableList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table list %s: %w", path, err)
	}
	defer f.Close()

	var tables []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tables = append(tables, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table list %s: %w", path, err)
	}
	return tables, nil
}
