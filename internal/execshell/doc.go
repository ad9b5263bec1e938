// Package execshell runs the git executable on behalf of gitsweep.
//
// ShellExecutor wraps a CommandRunner with lifecycle reporting and converts
// process outcomes into CommandFailedError (non-zero exit) or
// CommandExecutionError (the process never ran). OSCommandRunner is the
// os/exec-backed runner used outside of tests.
package execshell
