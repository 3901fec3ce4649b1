//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var (
	binDir  = "bin"
	appName = "lifestyles-web"
)

var Default = Run

func Run() error {
	fmt.Println("Running (go run) ...")
	return sh.RunV("go", "run", "./cmd/web")
}

func Build() error {
	mg.Deps(Tidy)

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}

	out := filepath.Join(binDir, appName+exeSuffix())
	fmt.Println("Building:", out)

	env := map[string]string{"CGO_ENABLED": "0"}
	return sh.RunWithV(env, "go", "build", "-trimpath", "-o", out, "./cmd/web")
}

// Tools builds the helper binaries (mockwebhook, migrate) next to the app.
func Tools() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}
	for _, tool := range []string{"mockwebhook", "migrate"} {
		out := filepath.Join(binDir, tool+exeSuffix())
		fmt.Println("Building:", out)
		if err := sh.RunV("go", "build", "-o", out, "./cmd/tools/"+tool); err != nil {
			return err
		}
	}
	return nil
}

func Test() error {
	fmt.Println("Testing...")
	return sh.RunV("go", "test", "./...", "-count=1")
}

func Lint() error {
	fmt.Println("Linting...")
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("gofmt", "-l", ".")
}

func Tidy() error {
	return sh.RunV("go", "mod", "tidy")
}

func Clean() error {
	return os.RemoveAll(binDir)
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
