package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/driftbyte/imagecraft"
	bilddrv "github.com/driftbyte/imagecraft/drivers/bild"
	"github.com/driftbyte/imagecraft/drivers/native"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("imagecraft %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case "--help", "-h", "help":
		usage()
		return
	case "info":
		if err := runInfo(os.Args[2:]); err != nil {
			log.Fatalf("info: %v", err)
		}
	case "convert":
		if err := runConvert(os.Args[2:]); err != nil {
			log.Fatalf("convert: %v", err)
		}
	case "resize":
		if err := runResize(os.Args[2:]); err != nil {
			log.Fatalf("resize: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("imagecraft - driver-agnostic image manipulation")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  imagecraft info [-driver native|bild] <file>")
	fmt.Println("  imagecraft convert [-driver native|bild] -format jpeg|png|gif|webp|bmp|avif [-quality n] <in> <out>")
	fmt.Println("  imagecraft resize [-driver native|bild] -width n -height n [-down] <in> <out>")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
}

func newDriver(name string) (imagecraft.Driver, error) {
	switch name {
	case "native", "":
		return native.New()
	case "bild":
		return bilddrv.New()
	}
	return nil, fmt.Errorf("unknown driver %q", name)
}

func decodeFile(d imagecraft.Driver, path string) (*imagecraft.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return d.Decode(f)
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	driverName := fs.String("driver", "native", "processing backend")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("expected exactly one input file")
	}

	d, err := newDriver(*driverName)
	if err != nil {
		return err
	}
	img, err := decodeFile(d, fs.Arg(0))
	if err != nil {
		return err
	}
	defer img.Destroy()

	fmt.Printf("driver:   %s\n", img.Driver().ID())
	fmt.Printf("size:     %dx%d\n", img.Width(), img.Height())
	fmt.Printf("frames:   %d\n", img.Count())
	if img.IsAnimated() {
		fmt.Printf("loops:    %d\n", img.LoopCount())
	}

	exif, err := img.Exif()
	if err != nil {
		if imagecraft.IsNotSupported(err) || imagecraft.IsNotReadable(err) {
			return nil
		}
		return err
	}
	for name, value := range exif {
		fmt.Printf("exif:     %s = %s\n", name, value)
	}
	return nil
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	driverName := fs.String("driver", "native", "processing backend")
	format := fs.String("format", "", "output format")
	quality := fs.Int("quality", 0, "lossy quality (1-100, 0 = default)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("expected input and output files")
	}

	d, err := newDriver(*driverName)
	if err != nil {
		return err
	}
	img, err := decodeFile(d, fs.Arg(0))
	if err != nil {
		return err
	}
	defer img.Destroy()

	var enc *imagecraft.Encoded
	switch *format {
	case "jpeg", "jpg":
		enc, err = img.ToJPEG(*quality)
	case "png":
		enc, err = img.ToPNG()
	case "gif":
		enc, err = img.ToGIF()
	case "webp":
		enc, err = img.ToWebP(*quality, false)
	case "bmp":
		enc, err = img.ToBMP()
	case "avif":
		enc, err = img.ToAVIF(*quality)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		return err
	}

	if err := enc.Save(fs.Arg(1)); err != nil {
		return err
	}
	log.Printf("wrote %s (%s, %d bytes)", fs.Arg(1), enc.MediaType(), enc.Len())
	return nil
}

func runResize(args []string) error {
	fs := flag.NewFlagSet("resize", flag.ExitOnError)
	driverName := fs.String("driver", "native", "processing backend")
	width := fs.Int("width", 0, "target width")
	height := fs.Int("height", 0, "target height")
	down := fs.Bool("down", false, "shrink only, never enlarge")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("expected input and output files")
	}

	d, err := newDriver(*driverName)
	if err != nil {
		return err
	}
	img, err := decodeFile(d, fs.Arg(0))
	if err != nil {
		return err
	}
	defer img.Destroy()

	if *down {
		_, err = img.ResizeDown(*width, *height)
	} else {
		_, err = img.Resize(*width, *height)
	}
	if err != nil {
		return err
	}

	enc, err := img.ToPNG()
	if err != nil {
		return err
	}
	if err := enc.Save(fs.Arg(1)); err != nil {
		return err
	}
	log.Printf("wrote %s (%dx%d)", fs.Arg(1), img.Width(), img.Height())
	return nil
}
