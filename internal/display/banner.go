package display

import (
	"fmt"
	"io"

	"github.com/backmassage/pbrexpress/internal/term"
)

const banner = ` ____  ____  ____    _____
|  _ \| __ )|  _ \  | ____|_  ___ __  _ __ ___  ___ ___
| |_) |  _ \| |_) | |  _| \ \/ / '_ \| '__/ _ \/ __/ __|
|  __/| |_) |  _ <  | |___ >  <| |_) | | |  __/\__ \__ \
|_|   |____/|_| \_\ |_____/_/\_\ .__/|_|  \___||___/___/
                               |_|
`

// PrintBanner writes the ASCII art banner to w, in magenta when colors are
// enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Magenta.Sprint(banner))
	if term.Enabled() {
		fmt.Fprintln(w)
	}
}
