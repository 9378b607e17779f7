// SPDX-License-Identifier: MPL-2.0

package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadEnvFile reads a dotenv file and merges its entries into env, later
// entries overriding earlier ones. Relative paths resolve against the
// current working directory. A path suffixed with '?' marks the file as
// optional: a missing optional file is not an error.
//
// Supported format:
//   - '#' comment lines and blank lines are ignored
//   - KEY=value, with an optional leading "export "
//   - KEY="value" processes \n \r \t \\ \" escapes
//   - KEY='value' is taken literally
//   - an unquoted value is trimmed and cut at an inline " #" comment
func LoadEnvFile(env map[string]string, path string) error {
	optional := strings.HasSuffix(path, "?")
	if optional {
		path = strings.TrimSuffix(path, "?")
	}

	full := path
	if !filepath.IsAbs(full) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving env file %q: %w", path, err)
		}
		full = filepath.Join(cwd, full)
	}

	content, err := os.ReadFile(full)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading env file %q: %w", path, err)
	}
	return ParseEnv(env, content, path)
}

// ParseEnv parses dotenv-format content into env. The name parameter is
// only used to position error messages.
func ParseEnv(env map[string]string, content []byte, name string) error {
	for i, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

		key, value, found := strings.Cut(line, "=")
		if !found {
			return fmt.Errorf("%s:%d: missing '='", name, i+1)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("%s:%d: empty variable name", name, i+1)
		}

		parsed, err := parseValue(value)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", name, i+1, err)
		}
		env[key] = parsed
	}
	return nil
}

func parseValue(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}

	switch value[0] {
	case '"':
		if len(value) < 2 || value[len(value)-1] != '"' {
			return "", fmt.Errorf("unterminated double quote")
		}
		return unescape(value[1 : len(value)-1]), nil
	case '\'':
		if len(value) < 2 || value[len(value)-1] != '\'' {
			return "", fmt.Errorf("unterminated single quote")
		}
		return value[1 : len(value)-1], nil
	}

	// Unquoted: cut an inline comment.
	if idx := strings.Index(value, " #"); idx != -1 {
		value = strings.TrimSpace(value[:idx])
	}
	return value, nil
}

func unescape(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		if value[i] != '\\' || i+1 == len(value) {
			b.WriteByte(value[i])
			continue
		}
		i++
		switch value[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\', '"':
			b.WriteByte(value[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(value[i])
		}
	}
	return b.String()
}
