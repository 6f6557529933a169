package ctxescape_test

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/stealthrocket/genstream/ctxescape"
)

func TestAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), ctxescape.Analyzer, "a")
}
