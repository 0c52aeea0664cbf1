package main

import (
	"io"
	"os"
	"time"

	cvpdf "github.com/jason7337/go-cvpdf"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string

	// Extra generator options, applied last. Tests inject renderers here.
	GeneratorOptions []cvpdf.Option
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
	}
}
