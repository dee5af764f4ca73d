package utils

import "os"

// IsFile reports whether filePath exists and is not a directory.
func IsFile(filePath string) bool {
	info, err := os.Stat(filePath)
	return err == nil && !info.IsDir()
}

// IsDirectory reports whether dirPath exists and is a directory.
func IsDirectory(dirPath string) bool {
	info, err := os.Stat(dirPath)
	return err == nil && info.IsDir()
}
