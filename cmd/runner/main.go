package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// toolchain describes how one language turns a source file into a process.
type toolchain struct {
	file    string
	compile []string
	run     []string
}

func toolchainFor(language, workdir string) (toolchain, error) {
	switch strings.ToLower(language) {
	case "python", "py":
		return toolchain{
			file: "main.py",
			run:  []string{"python3", filepath.Join(workdir, "main.py")},
		}, nil
	case "java":
		return toolchain{
			file:    "Main.java",
			compile: []string{"javac", filepath.Join(workdir, "Main.java")},
			run:     []string{"java", "-cp", workdir, "Main"},
		}, nil
	case "rust":
		return toolchain{
			file:    "main.rs",
			compile: []string{"rustc", "-O", "-o", filepath.Join(workdir, "main"), filepath.Join(workdir, "main.rs")},
			run:     []string{filepath.Join(workdir, "main")},
		}, nil
	default:
		return toolchain{}, fmt.Errorf("unsupported language %q", language)
	}
}

func decodeEnv(key string) (string, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return "", nil
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("error decoding %s: %w", key, err)
	}
	return string(decoded), nil
}

func run() int {
	workdir := os.Getenv("RUNNER_WORKDIR")
	if workdir == "" {
		workdir = "/code"
	}

	tc, err := toolchainFor(os.Getenv("RUNNER_LANGUAGE"), workdir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if os.Getenv("SOURCE_CODE") == "" {
		fmt.Fprintln(os.Stderr, "Error: SOURCE_CODE environment variable not set")
		return 1
	}
	source, err := decodeEnv("SOURCE_CODE")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	input, err := decodeEnv("TEST_INPUT")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := os.WriteFile(filepath.Join(workdir, tc.file), []byte(source), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing source file: %v\n", err)
		return 1
	}

	if len(tc.compile) > 0 {
		compileCmd := exec.Command(tc.compile[0], tc.compile[1:]...)
		compileCmd.Dir = workdir
		out, err := compileCmd.CombinedOutput()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Compilation error:")
			os.Stderr.Write(out)
			return 1
		}
	}

	ctx := context.Background()
	if v := os.Getenv("RUNNER_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, time.Duration(ms)*time.Millisecond)
			defer cancel()
		}
	}

	cmd := exec.CommandContext(ctx, tc.run[0], tc.run[1:]...)
	cmd.Dir = workdir
	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			fmt.Fprintln(os.Stderr, "Error: execution timed out")
			return 124
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Runner error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
