package engine

import (
	"os"
	"strconv"
)

const pidFile = ".queuectl-pid"

// The worker host records its PID so operators can find the process that
// owns the running loops.

func WritePID(pid int) error {
	return os.WriteFile(pidFile, []byte(strconv.Itoa(pid)), 0644)
}

func ReadPID() (int, error) {
	b, err := os.ReadFile(pidFile)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(string(b))
}

func RemovePID() {
	_ = os.Remove(pidFile)
}
