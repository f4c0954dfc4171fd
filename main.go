package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/brelied/strum/internal/app"
)

var version = "0.1.0"

var (
	cli = kingpin.New("strum", "A playlist-driven terminal music player")

	noShuffle = cli.Flag("no-shuffle", "Play songs in playlist order").Short('n').Bool()
	flatten   = cli.Flag("flatten", "Merge all playlists into one").Short('f').Bool()
	repeatSet = cli.Flag("repeat", "Repeat the whole set forever").Short('p').Bool()
	repeatTrk = cli.Flag("repeat-track", "Repeat every track forever").Short('t').Bool()
	headless  = cli.Flag("headless", "Run without the interactive display").Short('h').Bool()
	verbose   = cli.Flag("verbose", "Enable verbose (DEBUG) logging").Bool()
	files     = cli.Arg("files", "Playlist files or bare audio tracks").Strings()
)

func main() {
	cli.Version(version)
	cli.VersionFlag.Short('v')
	kingpin.MustParse(cli.Parse(os.Args[1:]))

	err := app.Run(app.Options{
		NoShuffle:     *noShuffle,
		Flatten:       *flatten,
		RepeatForever: *repeatSet,
		RepeatTracks:  *repeatTrk,
		Headless:      *headless,
		Verbose:       *verbose,
		Files:         *files,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "strum: %v\n", err)
		os.Exit(1)
	}
}
