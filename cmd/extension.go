package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
)

const (
	EnvConfig  = "FIPLAN_CONFIG"
	EnvVerbose = "FIPLAN_VERBOSE"
)

// RunExtension attempts to find and execute an external fip-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
//
// Global flags are passed to the extension as environment variables.
func RunExtension(subcommand string, args []string, stdin io.Reader, stdout, stderr io.Writer) (bool, int) {
	name := "fip-" + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = append(os.Environ(),
		EnvConfig+"="+*configFile,
		EnvVerbose+"="+strconv.FormatBool(*Verbose),
	)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}

// Known reports whether name is a builtin subcommand.
func Known(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, c := range Commands() {
		if c.Name() == name {
			return true
		}
	}
	return false
}
