package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"git.gammaspectra.live/P2Pool/md5sum/md5"
	"git.gammaspectra.live/P2Pool/md5sum/types"
	"git.gammaspectra.live/P2Pool/md5sum/utils"
	"github.com/ulikunitz/xz"
)

type entry struct {
	Name   string       `json:"name"`
	Digest types.Digest `json:"digest"`
	Size   uint64       `json:"size"`
}

func main() {
	str := flag.String("s", "", "Hash this string instead of files")
	chunkSize := flag.Int("chunk", md5.DefaultChunkSize, "Read buffer size in bytes, must be a multiple of 64")
	decompress := flag.Bool("xz", false, "Hash the decompressed content of xz files")
	jsonOutput := flag.Bool("json", false, "Print one JSON object per input")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [file ...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Prints the MD5 digest of each file, or of standard input when no file or \"-\" is given.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	utils.SetDebug(*debug)
	utils.LogFile = utils.IsLogLevelDebug()

	output := func(e entry) {
		if *jsonOutput {
			buf, err := utils.MarshalJSON(e)
			if err != nil {
				utils.Panicf("marshal: %s", err)
			}
			fmt.Printf("%s\n", buf)
		} else {
			fmt.Printf("%s  %s\n", e.Digest, e.Name)
		}
	}

	flagSet := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		flagSet[f.Name] = true
	})

	if flagSet["s"] {
		output(entry{Name: fmt.Sprintf("%q", *str), Digest: md5.Sum([]byte(*str)), Size: uint64(len(*str))})
		return
	}

	files := flag.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}

	var failed bool
	for _, name := range files {
		sum, size, err := hashInput(name, *chunkSize, *decompress)
		if err != nil {
			// SumFile already logged its own I/O failures
			if ioErr := (*md5.IOError)(nil); !errors.As(err, &ioErr) {
				utils.Errorf("md5sum", "%s: %s", name, err)
			}
			failed = true
			continue
		}
		output(entry{Name: name, Digest: sum, Size: size})
	}

	if failed {
		os.Exit(1)
	}
}

func hashInput(name string, chunkSize int, decompress bool) (types.Digest, uint64, error) {
	if name == "-" && !decompress {
		return md5.SumReader(os.Stdin, chunkSize)
	}

	if !decompress {
		return md5.SumFile(name, chunkSize)
	}

	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			utils.Errorf("md5sum", "can not open file %s: %s", name, err)
			return types.ZeroDigest, 0, &md5.IOError{Op: "open", Path: name, Err: err}
		}
		defer f.Close()
		r = f
	}

	xzReader, err := xz.NewReader(r)
	if err != nil {
		return types.ZeroDigest, 0, fmt.Errorf("xz: %w", err)
	}
	return md5.SumReader(xzReader, chunkSize)
}
