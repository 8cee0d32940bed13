package main

import (
	"log"
	"os"
)

func SomePanicFunction() {
	panic("this is forbidden") // want "panic is forbidden"
}

func SomeLogFatalFunction() {
	log.Fatal("this is forbidden") // want "log.Fatal is forbidden outside main function"
}

func SomeLogFatalfFunction() {
	log.Fatalf("this is %s", "forbidden") // want "log.Fatalf is forbidden outside main function"
}

func SomeOsExitFunction() {
	os.Exit(1) // want "os.Exit is forbidden outside main function"
}

func AllowedLogging() {
	log.Printf("plain logging is fine")
}

type server struct{}

func (server) main() {
	os.Exit(1) // want "os.Exit is forbidden outside main function"
}
