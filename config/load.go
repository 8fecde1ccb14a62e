package config

import (
	"os"

	"github.com/zeebo/errs"
	"github.com/zeebo/mon"
	"golang.org/x/sys/unix"

	"github.com/zeebo/reels"
)

// Load reads the game description at path, or the embedded default game if
// path is empty.
func Load(path string) (g *Game, err error) {
	defer mon.Start().Stop(&err)

	if path == "" {
		return Default()
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer fh.Close()

	fi, err := fh.Stat()
	if err != nil {
		return nil, Error.Wrap(err)
	}
	if fi.Size() == 0 {
		return nil, Error.New("%s: empty game description", path)
	}

	// the yaml decoder copies everything it keeps, so the mapping only has to
	// live until Parse returns.
	buf, err := unix.Mmap(int(fh.Fd()), 0, int(fi.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer func() { err = errs.Combine(err, Error.Wrap(unix.Munmap(buf))) }()

	g, err = Parse(buf)
	if err != nil {
		return nil, Error.New("%s: %v", path, err)
	}
	return g, nil
}

// LoadGame loads the game description at path and compiles it.
func LoadGame(path string) (*Game, *reels.Game, error) {
	g, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	game, err := g.Compile()
	if err != nil {
		return nil, nil, err
	}
	return g, game, nil
}
