package utils

import (
	"errors"
	"log"
	"os"
)

func FileExist(filePath string) bool {
	_, err := os.Stat(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}

	if err != nil {
		log.Panic(err)
	}

	return true
}

func CreateDirIfNotExist(dir string) error {
	if FileExist(dir) {
		return nil
	}

	return os.MkdirAll(dir, 0755)
}
