package validate

import (
	"fmt"
	"path/filepath"

	"github.com/gruppe-adler/altimesh/internal/utils"
)

// InputFile validates that given path exists and is a file
func InputFile(filePath string) error {
	if !utils.IsFile(filePath) {
		return fmt.Errorf("%s does not exists or is no file", filePath)
	}
	return nil
}

// OutputDirectory validates that given directory exists
func OutputDirectory(dirPath string) error {
	if !utils.IsDirectory(dirPath) {
		return fmt.Errorf("%s does not exists or is no directory", dirPath)
	}
	return nil
}

// OutputFile validates that the directory of given output file exists and
// that the path itself is not a directory
func OutputFile(filePath string) error {
	if utils.IsDirectory(filePath) {
		return fmt.Errorf("%s is a directory", filePath)
	}
	return OutputDirectory(filepath.Dir(filePath))
}
