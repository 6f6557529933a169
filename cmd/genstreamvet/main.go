// Genstreamvet reports misuse of generator contexts in code that builds on
// genstream. It currently runs the ctxescape analyzer.
//
// Invoke it the way go vet is invoked:
//
//	genstreamvet ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/stealthrocket/genstream/ctxescape"
)

func main() {
	singlechecker.Main(ctxescape.Analyzer)
}
