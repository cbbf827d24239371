package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DeckExtensions are the file suffixes recognised as deck files
var DeckExtensions = []string{".yaml", ".yml"}

// FindLatestDeck возвращает самый свежий файл презентации в папке dir
func FindLatestDeck(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !hasExtension(f.Name(), DeckExtensions) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("в папке %s не найдено файлов презентаций (.yaml)", dir)
	}

	return latestFile, nil
}

// EnsureDirs создает рабочие директории, если их нет
func EnsureDirs(dirs ...string) error {
	for _, d := range dirs {
		if d == "" {
			continue
		}
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("create %s: %w", d, err)
		}
	}
	return nil
}

func hasExtension(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
