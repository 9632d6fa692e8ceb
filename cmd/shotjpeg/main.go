// Command shotjpeg is a command-line tool to compress screen captures as
// baseline JPEGs, optionally downscaled and wrapped as base64 text the way they
// are uploaded. It can also turn base64 text back into a JPEG, pack several
// base64 screenshots into one zstd bundle, and serve the output over HTTP.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"net/http"
	"os"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/pkg/errors"
	_ "github.com/xfmoulet/qoi"

	"github.com/dlecorfec/shotjpeg"
	"github.com/dlecorfec/shotjpeg/capture"
)

type options struct {
	in, out, hostPort string
	quality           int
	width, height     int
	asBase64, decode  bool
	bundle            bool
}

func (o *options) register(fs *flag.FlagSet) {
	fs.StringVar(&o.in, "i", "", "Input image file path (png, jpeg, gif, qoi), or base64 text with -decode")
	fs.StringVar(&o.out, "o", "", "Output file path")
	fs.IntVar(&o.quality, "q", shotjpeg.DefaultQuality, "JPEG quality, 1-100")
	fs.IntVar(&o.width, "width", 0, "Target width bound; 0 keeps the input size")
	fs.IntVar(&o.height, "height", 0, "Target height bound; 0 keeps the input size")
	fs.BoolVar(&o.asBase64, "base64", false, "Write base64 text instead of JPEG bytes")
	fs.BoolVar(&o.decode, "decode", false, "Decode base64 text from -i into a JPEG file")
	fs.BoolVar(&o.bundle, "bundle", false, "Pack the base64 screenshots listed as arguments (one per file) into a zstd bundle at -o")
	fs.StringVar(&o.hostPort, "http", "", "Host and port for HTTP server serving output")
}

func main() {
	var o options
	o.register(flag.CommandLine)
	flag.Parse()
	in, out, hostPort := o.in, o.out, o.hostPort

	if out == "" || (in == "" && !o.bundle) {
		fmt.Fprintf(os.Stderr, "Input and output file paths must be specified\n")
		os.Exit(1)
	}

	var err error
	switch {
	case o.bundle:
		err = bundleFiles(flag.Args(), out)
	case o.decode:
		err = decodeFile(in, out)
	default:
		err = encodeFile(in, out, o.quality, o.width, o.height, o.asBase64)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "shotjpeg: %s\n", err)
		os.Exit(1)
	}

	if hostPort != "" {
		fmt.Printf("Serving %s on http://%s/\n", out, hostPort)
		http.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, out)
		}))
		if err := http.ListenAndServe(hostPort, nil); err != nil {
			fmt.Fprintf(os.Stderr, "cant start http server on %s: %s\n", hostPort, err)
			os.Exit(1)
		}
	}
}

func encodeFile(in, out string, quality, width, height int, asBase64 bool) error {
	file, err := os.Open(in)
	if err != nil {
		return errors.Wrapf(err, "cant open input %s", in)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return errors.Wrapf(err, "cant decode input %s", in)
	}

	if width > 0 || height > 0 {
		b := img.Bounds()
		cfg := capture.Config{TargetWidth: width, TargetHeight: height}
		if cfg.TargetWidth <= 0 {
			cfg.TargetWidth = b.Dx()
		}
		if cfg.TargetHeight <= 0 {
			cfg.TargetHeight = b.Dy()
		}
		w, h := capture.TargetSize(b.Dx(), b.Dy(), cfg)
		img = capture.Downscale(img, w, h)
	}

	output, err := os.Create(out)
	if err != nil {
		return errors.Wrapf(err, "cant open output %s", out)
	}
	if err := writeOutput(output, img, quality, asBase64); err != nil {
		output.Close()
		return err
	}
	return errors.Wrapf(output.Close(), "cant close output %s", out)
}

func writeOutput(output *os.File, img image.Image, quality int, asBase64 bool) error {
	if !asBase64 {
		return shotjpeg.EncodeImage(output, img, &shotjpeg.Options{Quality: quality})
	}
	var buf bytes.Buffer
	if err := shotjpeg.EncodeImage(&buf, img, &shotjpeg.Options{Quality: quality}); err != nil {
		return err
	}
	_, err := output.WriteString(capture.EncodeBase64(buf.Bytes()))
	return errors.WithStack(err)
}

func decodeFile(in, out string) error {
	text, err := os.ReadFile(in)
	if err != nil {
		return errors.Wrapf(err, "cant read input %s", in)
	}
	data, err := capture.DecodeBase64(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	return errors.WithStack(os.WriteFile(out, data, 0o644))
}

func bundleFiles(paths []string, out string) error {
	shots := make([]string, 0, len(paths))
	for _, p := range paths {
		text, err := os.ReadFile(p)
		if err != nil {
			return errors.Wrapf(err, "cant read %s", p)
		}
		shots = append(shots, strings.TrimSpace(string(text)))
	}
	frame, err := capture.Bundle(shots)
	if err != nil {
		return err
	}
	return errors.WithStack(os.WriteFile(out, frame, 0o644))
}
