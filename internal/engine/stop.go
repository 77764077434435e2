package engine

import (
	"os"
)

const stopFile = ".queuectl-stop"

// Stop requests travel through a marker file so `worker stop` can reach
// workers in other processes, including on platforms without POSIX signals.

func ShouldStop() bool {
	_, err := os.Stat(stopFile)
	return err == nil
}

func CreateStopFile() error {
	return os.WriteFile(stopFile, []byte("stop"), 0644)
}

func RemoveStopFile() {
	_ = os.Remove(stopFile)
}
