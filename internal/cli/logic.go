package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/idelchi/linkstat/internal/config"
	"github.com/idelchi/linkstat/internal/linkstat"
	applog "github.com/idelchi/linkstat/internal/log"
	"github.com/idelchi/linkstat/internal/storage"
	"github.com/idelchi/linkstat/internal/walk"
)

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}

// resolveRoot picks the directory to scan: the positional argument, else the
// path named by the storage INI file, else the current directory.
func resolveRoot(args []string, cfg config.Config, log *logrus.Entry) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	ini := cfg.StorageINI
	if ini == "" {
		path, err := storage.DefaultINIPath()
		if err != nil {
			log.WithError(err).Debug("no default storage file")

			return ".", nil
		}

		ini = path
	}

	root, found, err := storage.Lookup(ini)
	if err != nil {
		return "", err
	}

	if !found {
		log.WithField("file", ini).Debug("storage file names no path, using current directory")

		return ".", nil
	}

	log.WithFields(logrus.Fields{"file": ini, "path": root}).Debug("using path from storage file")

	return root, nil
}

func logic(ctx context.Context, cfg config.Config, cfgFile string, args []string, std streams) error {
	log := applog.New(cfg.Debug, std.err)

	if cfgFile != "" {
		log.WithField("file", cfgFile).Debug("using config file")
	}

	root, err := resolveRoot(args, cfg, log)
	if err != nil {
		return err
	}

	enableProgress := cfg.Output != "json" && !cfg.Debug && isTerminal(std.err)

	// Simple progress callback that prints directly to stderr
	var progressHook func(linkstat.Progress)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(std.err, "\033[?25l")
		defer fmt.Fprint(std.err, "\033[?25h")

		progressHook = func(p linkstat.Progress) {
			msg := fmt.Sprintf("Scanning… %d files found, %d measured, %s",
				p.Discovered, p.Measured, humanize.IBytes(p.Bytes))
			fmt.Fprintf(std.err, "\r\033[2K%s\r", msg)
		}
	}

	stats, err := linkstat.Run(ctx, linkstat.Options{
		Path:    root,
		Walker:  walk.Kind(cfg.Walker),
		Workers: cfg.Workers,
		Policy:  linkstat.Policy(cfg.Policy),
		Logger:  log,
	}, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(std.err, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	switch cfg.Output {
	case "json":
		err = PrintJSON(stats, std.out)
	default:
		err = PrintTable(stats, std.out)
	}

	if err != nil {
		return err
	}

	if cfg.Pause {
		pause(std)
	}

	return nil
}

// pause waits for a line on stdin, keeping a console window open when the
// tool was started outside a terminal.
func pause(std streams) {
	fmt.Fprint(std.err, "Press Enter to exit...")

	_, _ = bufio.NewReader(std.in).ReadString('\n')
}
