//go:build !windows

package main

import "log"

func main() {
	log.Fatal("ScreenTone targets Windows; this platform build is a stub")
}
