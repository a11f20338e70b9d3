package main

import (
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sugarlabs/icon"
	"github.com/sugarlabs/icon/theme"
	"github.com/sugarlabs/icon/utils"
	"github.com/sugarlabs/icon/widget"
	"golang.org/x/exp/slog"
	"golang.org/x/term"
)

const HelpBanner = `
┬ ┬┌─┐┬  ┬  ┌─┐┬┌─┐┌─┐┌┐┌
├─┤├┤ │  │  │ ││││ ││ ││││
┴ ┴└─┘┴─┘┴─┘└─┘┴└─┘└─┘┘└┘

Sugar icon renderer.
    Version: %s

`

// pipeName is the file name that indicates stdout is being used.
const pipeName = "-"

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

//go:embed wrap.svg
var wrapIcon []byte

// result holds the outcome of rendering a single icon.
type result struct {
	path string
	err  error
}

// spinner used to instantiate and call the progress indicator.
var spinner *utils.Spinner

// Version indicates the current build version.
var Version string

var (
	// Flags
	file        = flag.String("file", "", "Icon file, the HelloWorld canvas icon when empty")
	name        = flag.String("name", "", "Theme icon name")
	themeDirs   = flag.String("theme", "", "Icon theme roots, separated by the OS path list separator")
	materialDir = flag.String("material", filepath.Join(os.TempDir(), "helloicon-material"), "Directory of the Material Design fallback icons")
	fillColor   = flag.String("fill", "#fff", "Fill color")
	strokeColor = flag.String("stroke", "#aaa", "Stroke color")
	xoColor     = flag.String("xo", "", "XO color as stroke,fill; overrides -fill and -stroke")
	badgeName   = flag.String("badge", "", "Theme name of the badge")
	pixelSize   = flag.Int("size", 600, "Icon size in pixels")
	background  = flag.String("bg", "", "Background color, transparent when empty")
	alpha       = flag.Float64("alpha", 1, "Icon opacity")
	scale       = flag.Float64("scale", 1, "Scale of the painted icon")
	insensitive = flag.Bool("insensitive", false, "Render the insensitive variant")
	destination = flag.String("out", "helloworld.png", "Destination file, directory with -dir, or - for stdout")
	sourceDir   = flag.String("dir", "", "Render every icon of the directory")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of icons to render concurrently")
	verbose     = flag.Bool("v", false, "Log debug messages")
)

// Supported files
var (
	srcExtensions = []string{".svg", ".png", ".bmp"}
	dstExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tif", ".tiff"}
)

// options are the rendering parameters shared by every icon.
type options struct {
	lookup     theme.Lookup
	background color.Color
	fill       string
	stroke     string
	xo         string
	badge      string
	size       int
	alpha      float64
	scale      float64
	sensitive  bool
}

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	icon.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	opts, err := newOptions()
	if err != nil {
		log.Fatalf(utils.DecorateText("Invalid options: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage))
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ HELLOICON", utils.StatusMessage),
		utils.DecorateText("is rendering the icon...", utils.DefaultMessage))
	spinner = utils.NewSpinner(os.Stderr, spinnerText, time.Millisecond*200, true)

	// Capture CTRL-C signal and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		spinner.RestoreCursor()
		os.Exit(1)
	}()

	now := time.Now()

	if *sourceDir != "" {
		renderDir(*sourceDir, *destination, opts)
	} else {
		src := *file
		if src == "" && *name == "" {
			tmp, err := writeWrapIcon()
			if err != nil {
				log.Fatalf(utils.DecorateText("Unable to prepare the canvas icon: %v", utils.ErrorMessage),
					utils.DecorateText(err.Error(), utils.DefaultMessage))
			}
			defer os.Remove(tmp)
			src = tmp
		}

		ext := strings.ToLower(filepath.Ext(*destination))
		if *destination != pipeName && !utils.Contains(dstExtensions, ext) {
			log.Fatal(utils.DecorateText(fmt.Sprintf("%v file type not supported", ext), utils.ErrorMessage))
		}

		spinner.Start()
		err := processor(src, *name, *destination, opts)
		spinner.StopMsg = fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ HELLOICON", utils.StatusMessage),
			utils.DecorateText("is rendering the icon... ✔", utils.DefaultMessage))
		spinner.Stop()

		printStatus(*destination, err)
	}
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
}

// newOptions validates the flags.
func newOptions() (*options, error) {
	var lookup theme.Chain
	if *themeDirs != "" {
		lookup = theme.Open(filepath.SplitList(*themeDirs)...)
	} else {
		lookup = theme.Default()
	}
	if *materialDir != "" {
		lookup = append(lookup, theme.NewMaterial(*materialDir))
	}

	opts := &options{
		lookup:    lookup,
		fill:      *fillColor,
		stroke:    *strokeColor,
		xo:        *xoColor,
		badge:     *badgeName,
		size:      *pixelSize,
		alpha:     utils.Clamp(*alpha, 0, 1),
		scale:     *scale,
		sensitive: !*insensitive,
	}
	if *background != "" {
		c, err := utils.ParseColor(*background)
		if err != nil {
			return nil, err
		}
		opts.background = c
	}
	if opts.size < 0 {
		return nil, fmt.Errorf("negative icon size %d", opts.size)
	}
	if opts.scale <= 0 {
		return nil, fmt.Errorf("scale must be positive, got %v", opts.scale)
	}
	return opts, nil
}

// writeWrapIcon stores the embedded canvas icon in a temporary file,
// since icons are loaded by path.
func writeWrapIcon() (string, error) {
	f, err := os.CreateTemp("", "wrap-*.svg")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(wrapIcon); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// renderDir renders every supported icon of src into the dest directory.
func renderDir(src, dest string, opts *options) {
	if _, err := os.Stat(dest); err != nil {
		if err := os.MkdirAll(dest, 0755); err != nil {
			log.Fatalf(
				utils.DecorateText("Unable to create the destination directory: %v\n", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
	}

	// Limit the concurrently running workers to maxWorkers.
	if *workers <= 0 || *workers > maxWorkers {
		*workers = runtime.NumCPU()
	}

	ch := make(chan result)
	done := make(chan interface{})
	defer close(done)

	paths, errc := walkDir(done, src, srcExtensions)

	var wg sync.WaitGroup
	wg.Add(*workers)
	for i := 0; i < *workers; i++ {
		go func() {
			defer wg.Done()
			consumer(done, paths, dest, opts, ch)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	spinner.Start()
	var failed int
	for res := range ch {
		if res.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "\n%s %s\n",
				utils.DecorateText(res.path, utils.ErrorMessage),
				utils.DecorateText(res.err.Error(), utils.DefaultMessage))
			continue
		}
		spinner.SetMessage(fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ HELLOICON", utils.StatusMessage),
			utils.DecorateText(filepath.Base(res.path), utils.DefaultMessage)))
	}
	spinner.Stop()

	if err := <-errc; err != nil {
		fmt.Fprint(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "\n%s\n", utils.DecorateText(fmt.Sprintf("%d icons could not be rendered", failed), utils.ErrorMessage))
	}
}

// walkDir starts a goroutine to walk the specified directory tree in recursive manner
// and send the path of each supported icon on the string channel.
// It sends the result of the walk on the error channel.
// It terminates in case done channel is closed.
func walkDir(
	done <-chan interface{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.Mode().IsRegular() {
				return nil
			}
			if !utils.Contains(srcExts, strings.ToLower(filepath.Ext(info.Name()))) {
				return nil
			}

			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// consumer reads the icon paths from the paths channel, renders them
// into the dest directory and sends the results on the res channel.
func consumer(
	done <-chan interface{},
	paths <-chan string,
	dest string,
	opts *options,
	res chan<- result,
) {
	for src := range paths {
		base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		err := processor(src, "", filepath.Join(dest, base+".png"), opts)

		select {
		case <-done:
			return
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
}

// processor renders the icon and writes it to out.
func processor(file, name, out string, opts *options) error {
	img, err := render(file, name, opts)
	if err != nil {
		return err
	}

	if out == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		return encode(os.Stdout, img)
	}
	if err := imaging.Save(img, out); err != nil {
		return fmt.Errorf("unable to save the icon: %w", err)
	}
	return nil
}

// render draws the icon through a widget the size of the icon.
func render(file, name string, opts *options) (image.Image, error) {
	ic := widget.NewWithBuffer(&icon.Buffer{Theme: opts.lookup})
	ic.SetFile(file)
	ic.SetIconName(name)
	ic.SetPixelSize(opts.size)
	ic.SetFillColor(opts.fill)
	ic.SetStrokeColor(opts.stroke)
	if opts.xo != "" {
		if _, err := ic.SetXoColor(opts.xo); err != nil {
			return nil, err
		}
	}
	ic.SetBadgeName(opts.badge)
	ic.SetAlpha(opts.alpha)
	ic.SetScale(opts.scale)
	ic.SetSensitive(opts.sensitive)

	format := icon.FormatARGB32
	if opts.background != nil {
		ic.Buffer().SetBackground(opts.background)
		format = icon.FormatRGB24
	}

	size := ic.PreferredSize()
	if ic.Buffer().GetSurface(true, nil) == nil {
		return nil, fmt.Errorf("no icon for file %q name %q", file, name)
	}

	surface := icon.NewSurface(size.X, size.Y, format, opts.background)
	ic.Draw(icon.NewCanvas(surface.Image()), size)

	return surface.Image(), nil
}

// encode writes img as PNG to w.
func encode(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// printStatus displays the relevant information about the rendering.
func printStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr,
			utils.DecorateText("\nError rendering the icon: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
		os.Exit(1)
	}
	if fname != pipeName {
		fmt.Fprintf(os.Stderr, "\nThe icon has been saved as: %s %s\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}
