package runner

import (
	"github.com/projectdiscovery/gologger"
)

var banner = (`
     __         __               _  _
  __/ /___ ____/ /__ _________ _| || |_  ___
 / _  / -_) __/ / _ \/ __/ -_) // || ' \/ _ \
 \_,_/\__/\__/_/\_,_/_/  \__/_/ |_||_||_\___/

`)

var version = "v0.1.0"

// showBanner prints the CLI banner, grounded on alterx's showBanner.
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\tdeclarative process mining toolkit\n\n")
}
