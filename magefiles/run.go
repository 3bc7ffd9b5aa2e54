//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the demo driver. GYRE_CONFIG, when set, is passed as -config.
func (Run) Demo() error {
	mg.Deps(Build.Binary)
	fmt.Println("Run demo...")
	args := []string{}
	if path := os.Getenv("GYRE_CONFIG"); path != "" {
		args = append(args, "-config", path)
	}
	_, err := executeCmd("bin/"+binaryName, withArgs(args...), withStream(), withStdin())
	return err
}

// Removes the snapshot frames written by previous runs.
func (Run) Clean() error {
	dir := "frames"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	fmt.Printf("Removing %s\n", dir)
	return os.RemoveAll(dir)
}
