package display

import (
	"fmt"
	"os"

	"github.com/AlexGiov/file-renamer/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Cyan if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Cyan)
	}
	fmt.Fprint(os.Stdout, ` ____
|  _ \ ___ _ __   __ _ _ __ ___   ___ _ __
| |_) / _ \ '_ \ / _`+"`"+` | '_ `+"`"+` _ \ / _ \ '__|
|  _ <  __/ | | | (_| | | | | | |  __/ |
|_| \_\___|_| |_|\__,_|_| |_| |_|\___|_|
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
