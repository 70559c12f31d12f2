//go:build mage

// Package main provides build targets for the steane project using Mage.
//
// Usage:
//
//	mage build          Compile the steane binary to bin/
//	mage test           Run all tests
//	mage testRace       Run all tests with the race detector
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install steane to GOPATH/bin
//	mage evaluate       Build, then evaluate trials from $STEANE_TRIALS
//	mage stats          Print Go LOC per package
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "steane"
	binaryDir  = "bin"
	cmdDir     = "./cmd/steane"
)

// Build compiles the steane binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// TestRace runs all tests with the race detector. The harness evaluates
// trials concurrently.
func TestRace() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV("go", "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Evaluate builds the binary and runs the fault-tolerance check over the
// JSONL trial file named by STEANE_TRIALS, writing metrics to bin/.
func Evaluate() error {
	mg.Deps(Build)
	trials := os.Getenv("STEANE_TRIALS")
	if trials == "" {
		return fmt.Errorf("STEANE_TRIALS is not set")
	}
	return sh.RunV(filepath.Join(binaryDir, binaryName), "evaluate",
		"--metrics-file", filepath.Join(binaryDir, "metrics.prom"), trials)
}

// Stats prints production and test lines of Go code per package directory.
func Stats() error {
	type counts struct{ prod, test int }
	perDir := map[string]*counts{}

	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			switch {
			case path == "vendor", path == ".git", path == binaryDir, strings.HasPrefix(path, "_"):
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasPrefix(path, "magefiles") {
			return nil
		}
		n, countErr := countLines(path)
		if countErr != nil {
			return nil
		}
		dir := filepath.Dir(path)
		c, ok := perDir[dir]
		if !ok {
			c = &counts{}
			perDir[dir] = c
		}
		if strings.HasSuffix(path, "_test.go") {
			c.test += n
		} else {
			c.prod += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(perDir))
	for d := range perDir {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	var prod, test int
	for _, d := range dirs {
		c := perDir[d]
		fmt.Printf("%-24s %6d prod %6d test\n", d, c.prod, c.test)
		prod += c.prod
		test += c.test
	}
	fmt.Printf("%-24s %6d prod %6d test\n", "total", prod, test)
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}
