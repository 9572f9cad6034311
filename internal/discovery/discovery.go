// Package discovery locates game data files across the base game directory
// and its extension overlays by the fixed directory convention
// <base>/<dir>/<file> and <base>/extensions/<name>/<dir>/<file>.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// OriginalSource labels records taken from the base game files.
const OriginalSource = "original"

// File is a discovered data file together with the overlay it came from:
// "original" for the base game, otherwise the extension directory name.
type File struct {
	Source string
	Path   string
}

// ValidateBase checks the base folder has the expected shape. A missing
// libraries directory is fatal; a missing extensions directory only warns.
func ValidateBase(base string) error {
	info, err := os.Stat(base)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("base folder not found: %s", base)
	}
	if !isDir(filepath.Join(base, "libraries")) {
		return fmt.Errorf("'libraries' folder not found in %s", base)
	}
	if !isDir(filepath.Join(base, "extensions")) {
		log.Warn().Str("base", base).Msg("No 'extensions' folder found, proceeding without extensions")
	}
	return nil
}

// RequireLocalization checks the base folder carries a 't' localization
// directory. Commands that resolve names call this before loading.
func RequireLocalization(base string) error {
	if !isDir(filepath.Join(base, "t")) {
		return fmt.Errorf("'t' folder not found in %s", base)
	}
	return nil
}

// LibraryFiles returns the base game's libraries/<name> file plus one entry
// per extension that ships the same file. The original, when present, is
// always first; extensions follow in sorted directory order.
func LibraryFiles(base, name string) []File {
	return overlayFiles(base, "libraries", name)
}

// LanguageFiles returns the base game's localization file for the given
// language id plus every extension overlay of it, in load order.
func LanguageFiles(base string, language int) []File {
	return overlayFiles(base, "t", LanguageFileName(language))
}

// LanguageFileName names the text-catalog file for a language id, e.g.
// 44 -> "0001-l044.xml".
func LanguageFileName(language int) string {
	return fmt.Sprintf("0001-l%03d.xml", language)
}

func overlayFiles(base, dir, name string) []File {
	var files []File

	original := filepath.Join(base, dir, name)
	if fileExists(original) {
		files = append(files, File{Source: OriginalSource, Path: original})
	}

	extensions := filepath.Join(base, "extensions")
	if entries, err := os.ReadDir(extensions); err == nil {
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			path := filepath.Join(extensions, e.Name(), dir, name)
			if fileExists(path) {
				files = append(files, File{Source: e.Name(), Path: path})
			}
		}
	}

	if len(files) == 0 {
		log.Warn().Str("file", name).Str("base", base).Msg("No data files found")
	} else {
		log.Info().Int("count", len(files)).Str("file", name).Msg("Discovered data files")
	}
	return files
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
