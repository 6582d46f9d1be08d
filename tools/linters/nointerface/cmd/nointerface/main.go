// Command nointerface runs the nointerface analyzer as a standalone vet tool.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/rezkam/calendar/tools/linters/nointerface"
)

func main() {
	singlechecker.Main(nointerface.Analyzer)
}
