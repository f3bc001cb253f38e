package utils

import "os"

// Standard permissions for files created by batchsub
const (
	PermDir  = os.FileMode(0755) // directories
	PermFile = os.FileMode(0644) // regular files
	PermExec = os.FileMode(0755) // executable scripts
)
