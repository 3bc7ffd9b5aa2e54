//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

const binaryName = "gyre"

// Downloads the modules and builds the demo binary into bin/.
func (Build) Binary() error {
	if _, err := executeCmd("go", withArgs("mod", "download")); err != nil {
		return err
	}
	out := filepath.Join("bin", binaryName)
	if _, err := executeCmd("go", withArgs("build", "-o", out, "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs go vet and the whole test suite with the race detector.
func (Build) Test() error {
	if _, err := executeCmd("go", withArgs("vet", "./..."), withStream()); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("test", "-race", "-count=1", "./..."), withStream())
	return err
}
