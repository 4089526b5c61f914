//go:build stave

package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target when running `stave` with no arguments.
var Default = All

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"c": Clean,
}

// All runs the complete build pipeline: lint, test, and build.
func All() error {
	st.Deps(Init)
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

// Init ensures the module dependencies are up to date.
func Init() error {
	return sh.Run("go", "mod", "tidy")
}

// binaries lists the commands under ./cmd built by Build.
var binaries = []string{"uidet-eval", "uidet-sweep", "uidet-predict", "uidet-serve"}

// Build compiles every uidet binary.
func Build() error {
	st.Deps(Init)
	st.Deps(Build_Eval, Build_Sweep, Build_Predict, Build_Serve)
	return nil
}

// Build_Eval compiles the uidet-eval binary.
func Build_Eval() error { return buildBinary("uidet-eval") }

// Build_Sweep compiles the uidet-sweep binary.
func Build_Sweep() error { return buildBinary("uidet-sweep") }

// Build_Predict compiles the uidet-predict binary.
func Build_Predict() error { return buildBinary("uidet-predict") }

// Build_Serve compiles the uidet-serve binary with version information.
func Build_Serve() error { return buildBinary("uidet-serve") }

func buildBinary(name string) error {
	st.Deps(Init)

	out := "bin/" + name
	rebuild, err := target.Glob(out, "**/*.go", "go.mod", "go.sum")
	if err != nil {
		return fmt.Errorf("checking rebuild: %w", err)
	}
	if !rebuild {
		if st.Verbose() {
			fmt.Printf("%s is up to date\n", name)
		}
		return nil
	}

	ldflags := buildLdflags()
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, "./cmd/"+name)
}

// buildLdflags returns ldflags for version injection.
func buildLdflags() string {
	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	date := time.Now().Format(time.RFC3339)

	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		strings.TrimSpace(version),
		strings.TrimSpace(commit),
		date,
	)
}

// Test runs all tests with race detection and coverage.
func Test() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// TestShort runs tests in short mode (skips long-running tests).
func TestShort() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-short", "-race", "./...")
}

// TestVerbose runs tests with verbose output.
func TestVerbose() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "-v", "./...")
}

// Lint runs golangci-lint on the codebase.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// LintFix runs golangci-lint with auto-fix enabled.
func LintFix() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code using gofmt and goimports.
func Fmt() error {
	if err := sh.Run("gofmt", "-w", "."); err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if err := sh.Run("goimports", "-w", "."); err != nil {
		return fmt.Errorf("goimports: %w", err)
	}
	return nil
}

// Vet runs go vet on all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	artifacts := []string{
		"bin/",
		"coverage.out",
		"coverage.html",
	}
	for _, a := range artifacts {
		if err := sh.Rm(a); err != nil {
			return fmt.Errorf("removing %s: %w", a, err)
		}
	}
	return nil
}

// Install builds and installs the binaries to GOBIN.
func Install() error {
	st.Deps(Build)

	gocmd := st.GoCmd()
	bin, err := sh.Output(gocmd, "env", "GOBIN")
	if err != nil {
		return fmt.Errorf("determining GOBIN: %w", err)
	}
	if bin == "" {
		gopath, err := sh.Output(gocmd, "env", "GOPATH")
		if err != nil {
			return fmt.Errorf("determining GOPATH: %w", err)
		}
		bin = gopath + "/bin"
	}

	for _, name := range binaries {
		src := "bin/" + name
		dst := bin + "/" + name
		if runtime.GOOS == "windows" {
			dst += ".exe"
		}
		if err := sh.Copy(dst, src); err != nil {
			return fmt.Errorf("installing %s: %w", name, err)
		}
		if st.Verbose() {
			fmt.Printf("Installed %s to %s\n", name, dst)
		}
	}
	return nil
}

// Eval namespace for evaluation-related targets.
type Eval st.Namespace

// corpusDirs returns the ground-truth and prediction folders, overridable
// through UIDET_GT and UIDET_PRED.
func corpusDirs() (string, string) {
	gt := os.Getenv("UIDET_GT")
	if gt == "" {
		gt = "testdata/labels"
	}
	pred := os.Getenv("UIDET_PRED")
	if pred == "" {
		pred = "testdata/predictions"
	}
	return gt, pred
}

// Run scores the prediction folder against the ground-truth folder.
func (Eval) Run() error {
	st.Deps(Build_Eval)

	gt, pred := corpusDirs()
	return sh.RunV("./bin/uidet-eval", "--ground-truth", gt, "--predictions", pred)
}

// Sweep reports pooled metrics across IoU thresholds.
func (Eval) Sweep() error {
	st.Deps(Build_Sweep)

	gt, pred := corpusDirs()
	return sh.RunV("./bin/uidet-sweep", "--ground-truth", gt, "--predictions", pred)
}

// Predict regenerates the prediction folder from testdata/images.
// Requires the model at UIDET_MODEL (default models/best.onnx).
func (Eval) Predict() error {
	st.Deps(Build_Predict)

	modelPath := os.Getenv("UIDET_MODEL")
	if modelPath == "" {
		modelPath = "models/best.onnx"
	}
	_, pred := corpusDirs()
	return sh.RunV("./bin/uidet-predict",
		"-model", modelPath,
		"-images", "testdata/images",
		"-out", pred,
		"-lib", os.Getenv("ORT_LIB_PATH"),
	)
}

// Serve runs the inference endpoint with the local .env configuration.
func Serve() error {
	st.Deps(Build_Serve)
	return sh.RunV("./bin/uidet-serve")
}

// CI runs the full CI pipeline (lint, test, build).
func CI() error {
	st.Deps(Init)
	st.SerialDeps(Lint, Test, Build)
	return nil
}

// Check runs quick validation (vet, lint, short tests).
func Check() error {
	st.Deps(Vet, Lint, TestShort)
	return nil
}

// Coverage generates a coverage report.
func Coverage() error {
	st.Deps(Init)
	if err := sh.RunV("go", "test", "-race", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Tidy runs go mod tidy and verifies the go.sum is clean.
func Tidy() error {
	if err := sh.Run("go", "mod", "tidy"); err != nil {
		return err
	}
	// Verify no changes to go.sum (useful for CI)
	output, err := sh.Output("git", "diff", "--exit-code", "go.sum")
	if err != nil {
		if output != "" {
			return fmt.Errorf("go.sum is not clean:\n%s", output)
		}
	}
	return nil
}
