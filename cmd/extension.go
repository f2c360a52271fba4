package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/etnz/stockbook/config"
)

// Environment passed to extensions, read back by config.Load.
const (
	EnvLedgerFile = "SBK_LEDGER_FILE"
	EnvStore      = "SBK_STORE"
	EnvCurrency   = "SBK_CURRENCY"
	EnvLogLevel   = "LOG_LEVEL"
)

// extensionEnv returns the environment of an extension run with cfg.
func extensionEnv(cfg *config.Config) []string {
	env := os.Environ()
	env = append(env, EnvLedgerFile+"="+cfg.LedgerFile)
	env = append(env, EnvStore+"="+cfg.Store)
	env = append(env, EnvCurrency+"="+cfg.Currency)
	env = append(env, EnvLogLevel+"="+cfg.LogLevel)
	return env
}

// RunExtension attempts to find and execute an external sbk-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "sbk-" + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		slog.Debug("external command not found in PATH", "command", name, "error", err)
		return false, 0
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return true, 1
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = extensionEnv(cfg)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
