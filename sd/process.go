package sd

import (
	"os"
	"os/exec"
	"sync"
)

// In order to keep the working directory the same as when we started we record
// it at startup.
var originalWD, _ = os.Getwd()

var startProcMu sync.Mutex

// StartProcess starts a new instance of the running program with the same
// arguments, working directory and standard files, and the current environment
// plus env. It returns the pid of the new process.
func StartProcess(env []string) (int, error) {
	startProcMu.Lock()
	defer startProcMu.Unlock()

	// Use the original binary location. This works with symlinks such that if
	// the file it points to has been changed we will use the updated symlink.
	argv0, err := exec.LookPath(os.Args[0])
	if err != nil {
		// started via a relative name no longer on PATH
		if argv0, err = os.Executable(); err != nil {
			return 0, err
		}
	}

	fullenv := append(os.Environ(), env...)

	process, err := os.StartProcess(argv0, os.Args, &os.ProcAttr{
		Dir:   originalWD,
		Env:   fullenv,
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	})
	if err != nil {
		return 0, err
	}
	pid := process.Pid
	// The new process is not waited for.
	process.Release()
	return pid, nil
}
