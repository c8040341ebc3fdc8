//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package main

import (
	"errors"
	"os"
)

var errRawTerm = errors.New("raw terminal not supported, use -headless")

func enterRawTerm(in *os.File) (restore func(), err error) {
	err = errRawTerm
	return
}
