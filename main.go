package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/blang/semver/v4"
	"github.com/pkg/profile"

	"github.com/fg2019/huffcat/fgz"
	"github.com/fg2019/huffcat/internal/diag"
)

// flags is a ContinueOnError set rather than the default CommandLine: an
// unrecognized flag must end in the same exit(1) every other malformed
// invocation gets, not flag's own exit(2).
var flags = flag.NewFlagSet("fg2019", flag.ContinueOnError)

var (
	flagCompress   = flags.Bool("C", false, "compress <src> into <dest>")
	flagDecompress = flags.Bool("D", false, "decompress <src> into <dest>")
	flagHelp       = flags.Bool("H", false, "print usage")
	flagVersion    = flags.Bool("version", false, "report executable version")
	flagPprof      = flags.String("pprof", "", "profile the run: cpu or mem")
)

// version is validated against semver at startup (see checkVersion) so a
// malformed build-time constant fails fast instead of being printed as-is.
const version = "1.0.0"

const usage = `fg2019 - a length-limited canonical Huffman codec.

To compress, run with:   fg2019 -C <source-name> <compressed-name>
To decompress, run with: fg2019 -D <source-name> <decompressed-name>
`

var log = diag.New(os.Stderr)

func quitf(kind diag.Kind, err error, format string, args ...interface{}) {
	_ = log.Fatal(kind, err, fmt.Sprintf(format, args...))
	os.Exit(1)
}

func checkVersion() semver.Version {
	v, err := semver.Parse(version)
	if err != nil {
		quitf(diag.AllocationFailed, err, "invalid build-time version constant %q", version)
	}
	return v
}

type stopper interface{ Stop() }

type noopStopper struct{}

func (noopStopper) Stop() {}

func startProfile() stopper {
	switch *flagPprof {
	case "":
		return noopStopper{}
	case "cpu":
		return profile.Start(profile.CPUProfile)
	case "mem":
		return profile.Start(profile.MemProfile)
	default:
		quitf(diag.UnknownMode, nil, "unknown -pprof mode %q, want cpu or mem", *flagPprof)
	}
	return noopStopper{}
}

func main() {
	flags.SetOutput(io.Discard)
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "run with -H for help.")
		os.Exit(1)
	}

	v := checkVersion()

	if *flagVersion {
		fmt.Println("fg2019 v" + v.String())
		os.Exit(0)
	}

	if *flagHelp {
		fmt.Print(usage)
		os.Exit(0)
	}

	args := flags.Args()

	switch {
	case *flagCompress && len(args) == 2:
		runCompress(args[0], args[1])
	case *flagDecompress && len(args) == 2:
		runDecompress(args[0], args[1])
	default:
		fmt.Fprintln(os.Stderr, "Not enough arguments, run with -H for help.")
		os.Exit(1)
	}
}

func runCompress(src, dest string) {
	defer startProfile().Stop()

	in, err := os.ReadFile(src)
	if err != nil {
		quitf(diag.IoRead, err, "reading %s", src)
	}
	if len(in) == 0 {
		quitf(diag.EmptyInput, nil, "%s is empty", src)
	}

	out, err := os.Create(dest)
	if err != nil {
		quitf(diag.IoWrite, err, "creating %s", dest)
	}
	defer out.Close()

	if err := fgz.Compress(in, out); err != nil {
		quitf(diag.IoWrite, err, "compressing %s", src)
	}
}

func runDecompress(src, dest string) {
	defer startProfile().Stop()

	in, err := os.Open(src)
	if err != nil {
		quitf(diag.IoRead, err, "opening %s", src)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		quitf(diag.IoWrite, err, "creating %s", dest)
	}
	defer out.Close()

	if err := fgz.Decompress(in, out); err != nil {
		kind := diag.IoRead
		switch {
		case errors.Is(err, fgz.ErrMagicMissing), errors.Is(err, fgz.ErrMalformedHeader):
			kind = diag.MalformedHeader
		case errors.Is(err, fgz.ErrTruncatedPayload):
			kind = diag.TruncatedPayload
		}
		quitf(kind, err, "decompressing %s", src)
	}
}
