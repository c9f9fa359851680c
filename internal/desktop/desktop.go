// Package desktop writes the freedesktop launcher entry for the managed app.
//
// The launcher's Exec line points at the active-version symlink, so a
// version switch never requires touching the .desktop file again. Updates
// preserve unknown lines and replace the file atomically.
package desktop

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Entry describes the launcher file to write.
type Entry struct {
	// Path is the .desktop file location.
	Path string

	// DisplayName is the Name= value.
	DisplayName string

	// Icon is the Icon= value.
	Icon string

	// Exec is the command the launcher runs, normally the active symlink.
	Exec string
}

// Write creates or updates the launcher file. An existing file keeps any
// lines this tool does not manage; Name, Icon and Exec are replaced.
func Write(e Entry) error {
	if e.Path == "" || e.Exec == "" {
		return fmt.Errorf("desktop entry needs a path and an exec command")
	}

	var content string
	if data, err := os.ReadFile(e.Path); err == nil {
		content = updateEntry(string(data), e)
	} else {
		content = newEntry(e)
	}

	dir := filepath.Dir(e.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create launcher directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(e.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp launcher file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write launcher file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write launcher file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write launcher file: %w", err)
	}

	if err := os.Rename(tmpPath, e.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace launcher file: %w", err)
	}
	return nil
}

// ExecPath reads the command path out of a launcher file's Exec line.
// Returns empty string when the file or the line is missing.
func ExecPath(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "Exec=") {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, "Exec="))
		if len(fields) == 0 {
			return ""
		}
		return fields[0]
	}
	return ""
}

func newEntry(e Entry) string {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", e.DisplayName)
	fmt.Fprintf(&b, "Exec=%s %%U\n", e.Exec)
	if e.Icon != "" {
		fmt.Fprintf(&b, "Icon=%s\n", e.Icon)
	}
	b.WriteString("Terminal=false\n")
	b.WriteString("Categories=Development;\n")
	return b.String()
}

func updateEntry(existing string, e Entry) string {
	lines := strings.Split(strings.TrimRight(existing, "\n"), "\n")
	sawExec, sawName, sawIcon := false, false, false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Exec="):
			lines[i] = fmt.Sprintf("Exec=%s %%U", e.Exec)
			sawExec = true
		case strings.HasPrefix(trimmed, "Name="):
			lines[i] = "Name=" + e.DisplayName
			sawName = true
		case strings.HasPrefix(trimmed, "Icon="):
			if e.Icon != "" {
				lines[i] = "Icon=" + e.Icon
			}
			sawIcon = true
		}
	}

	if !sawExec {
		lines = append(lines, fmt.Sprintf("Exec=%s %%U", e.Exec))
	}
	if !sawName && e.DisplayName != "" {
		lines = append(lines, "Name="+e.DisplayName)
	}
	if !sawIcon && e.Icon != "" {
		lines = append(lines, "Icon="+e.Icon)
	}

	return strings.Join(lines, "\n") + "\n"
}
