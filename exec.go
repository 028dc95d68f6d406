package hexmap

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/geonext/hexmap/utils"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Ops describes where a build reads the map from and where it writes to.
type Ops struct {
	// Src is the vector map, a local path or a url.
	Src string
	// Dst is the output directory.
	Dst     string
	GeoJSON bool
	// Stderr receives the status lines. It defaults to os.Stderr.
	Stderr io.Writer
}

// Execute runs the whole build. The output files are only written once every
// phase succeeded, so a failed build leaves Dst untouched.
func (p *Processor) Execute(op *Ops) error {
	stderr := op.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	src, cleanup, err := op.openSource()
	if err != nil {
		return err
	}
	defer cleanup()

	var spinner *utils.Spinner
	if isTerminal(stderr) {
		defaultMsg := fmt.Sprintf("%s %s",
			utils.DecorateText("⬡ HEXMAP", utils.StatusMessage),
			utils.DecorateText("⇢ building the map...", utils.DefaultMessage),
		)
		spinner = utils.NewSpinner(defaultMsg, time.Millisecond*80, true)
		spinner.Start()

		// Capture CTRL-C signal and restore the cursor visibility.
		signalChan := make(chan os.Signal, 1)
		done := make(chan struct{})
		signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
		defer func() {
			signal.Stop(signalChan)
			close(done)
		}()
		go func() {
			select {
			case <-signalChan:
				spinner.RestoreCursor()
				os.Exit(1)
			case <-done:
			}
		}()
	}
	// The spinner only lives for this build.
	p.Spinner = spinner
	defer func() { p.Spinner = nil }()

	now := time.Now()
	res, err := p.Process(src)
	if err == nil {
		var outputs []Output
		if outputs, err = res.Outputs(op.GeoJSON); err == nil {
			err = WriteOutputs(op.Dst, outputs)
		}
	}

	if spinner != nil {
		if err != nil {
			spinner.StopMsg = fmt.Sprintf("%s %s %s\n",
				utils.DecorateText("⬡ HEXMAP", utils.StatusMessage),
				utils.DecorateText("building the map failed...", utils.DefaultMessage),
				utils.DecorateText("✘", utils.ErrorMessage),
			)
		} else {
			spinner.StopMsg = fmt.Sprintf("%s %s %s\n",
				utils.DecorateText("⬡ HEXMAP", utils.StatusMessage),
				utils.DecorateText("⇢", utils.DefaultMessage),
				utils.DecorateText("the map has been built successfully ✔", utils.SuccessMessage),
			)
		}
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	r := res.Report
	fmt.Fprintf(stderr, "\n%d hexes, %d countries, %d unclaimed, %d unfilled samples\n",
		r.Hexes, r.Countries, r.Unclaimed, r.Unfilled)
	fmt.Fprintf(stderr, "The assets have been saved in: %s\n",
		utils.DecorateText(op.Dst, utils.SuccessMessage))
	fmt.Fprintf(stderr, "Execution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	return nil
}

// openSource opens the vector map, downloading it first when Src is a url.
func (op *Ops) openSource() (io.Reader, func(), error) {
	path := op.Src
	remove := func() {}
	if utils.IsValidUrl(op.Src) {
		tmp, err := utils.DownloadFile(op.Src)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to load the source map")
		}
		tmp.Close()
		path = tmp.Name()
		remove = func() { os.Remove(path) }
	} else if ext := filepath.Ext(path); ext != ".svg" {
		return nil, nil, errors.Errorf("%q file type not supported, expected an svg", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		remove()
		return nil, nil, errors.Wrap(err, "unable to open the source map")
	}
	return f, func() {
		f.Close()
		remove()
	}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
