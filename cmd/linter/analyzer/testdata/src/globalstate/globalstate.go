package globalstate

import (
	"os"
	"sync"
)

var urlDatabase = map[string]string{} // want "package-level map variable urlDatabase, pass state explicitly instead"

type codeSet map[string]struct{}

var reserved codeSet // want "package-level map variable reserved, pass state explicitly instead"

var mu sync.Mutex

const alphabet = "0123456789abcdef"

type Store struct {
	urls map[string]string
}

func NewStore() *Store {
	local := make(map[string]string)
	return &Store{urls: local}
}

func Exit() {
	os.Exit(1) // want "os.Exit is forbidden outside main function"
}

func main() {
	os.Exit(0) // want "os.Exit is forbidden outside main function"
}
