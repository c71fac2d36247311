package main

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bodgit/oledgen"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func newGenerator(c *cli.Context) (*oledgen.Generator, func(), error) {
	var cache *oledgen.Cache
	if file := c.String("cache"); file != "" {
		var err error
		if cache, err = oledgen.NewCache(file); err != nil {
			return nil, nil, err
		}
	}

	closeFunc := func() {
		if cache != nil {
			cache.Close()
		}
	}

	return oledgen.New(oledgen.DefaultImageDecoder(), cache, c.Int("jobs"), newLogger(c)), closeFunc, nil
}

func manifestFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "manifest",
			Aliases:  []string{"m"},
			EnvVars:  []string{"OLEDGEN_MANIFEST"},
			Usage:    "path to the animation manifest",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "assets-root",
			Aliases:  []string{"r"},
			EnvVars:  []string{"OLEDGEN_ASSETS_ROOT"},
			Usage:    "directory frame paths are relative to",
			Required: true,
		},
	}
}

func main() {
	// A missing .env is fine, the flags and environment still apply
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal(err)
	}

	app := cli.NewApp()

	app.Name = "oledgen"
	app.Usage = "OLED animation header generator"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "cache",
			EnvVars: []string{"OLEDGEN_CACHE"},
			Usage:   "path to decoded frame cache",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			EnvVars: []string{"OLEDGEN_JOBS"},
			Value:   runtime.NumCPU(),
			Usage:   "number of frames to decode in parallel",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "generate",
			Usage:       "Generate the animation header",
			Description: "",
			Flags: append(manifestFlags(),
				&cli.StringFlag{
					Name:     "out",
					Aliases:  []string{"o"},
					EnvVars:  []string{"OLEDGEN_OUT"},
					Usage:    "path to the generated header",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "dump",
					Usage: "also write every decoded frame as a PBM to this directory",
				},
			),
			Action: func(c *cli.Context) error {
				g, closeFunc, err := newGenerator(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer closeFunc()

				animations, err := g.Compile(c.Context, c.String("manifest"), c.String("assets-root"))
				if err != nil {
					return cli.Exit(err, 1)
				}

				if dir := c.String("dump"); dir != "" {
					if err := g.Dump(dir, animations); err != nil {
						return cli.Exit(err, 1)
					}
				}

				if err := g.Write(c.String("out"), filepath.Base(c.String("manifest")), animations); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "check",
			Usage:       "Validate the manifest and decode every frame without writing anything",
			Description: "",
			Flags:       manifestFlags(),
			Action: func(c *cli.Context) error {
				g, closeFunc, err := newGenerator(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer closeFunc()

				if _, err := g.Compile(c.Context, c.String("manifest"), c.String("assets-root")); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "purge",
			Usage:       "Empty the decoded frame cache",
			Description: "",
			Action: func(c *cli.Context) error {
				if c.String("cache") == "" {
					return cli.Exit("no cache configured", 1)
				}

				cache, err := oledgen.NewCache(c.String("cache"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer cache.Close()

				n, err := cache.Purge()
				if err != nil {
					return cli.Exit(err, 1)
				}
				newLogger(c).Printf("Removed %d cached frame(s)\n", n)

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
