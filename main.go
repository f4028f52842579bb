package main

import (
	"log"
	"os"
	"strings"

	"uvflags/cmd"
	"uvflags/pkg/logging"

	"golang.org/x/term"
)

func main() {
	err := cmd.Execute()

	// Syncing a console stderr fails with "invalid argument" on some platforms.
	if logging.Logger != nil && (term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr)) {
		if syncErr := logging.Logger.Sync(); syncErr != nil {
			lowerErr := strings.ToLower(syncErr.Error())
			if !strings.Contains(lowerErr, "invalid argument") {
				log.Printf("Logger sync failed: %v", syncErr)
			}
		}
	}

	if err != nil {
		os.Exit(1)
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
