// Command linter runs the shortener static checks.
//
//	go run ./cmd/linter ./...
package main

import (
	"github.com/hexlink/url-shortener/cmd/linter/analyzer"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(analyzer.Analyzer)
}
