package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	config "github.com/media-luna/eureka/configs"
	"github.com/media-luna/eureka/internal/errs"
	"github.com/media-luna/eureka/internal/eureka"
	"github.com/media-luna/eureka/internal/libraryio"
	"github.com/media-luna/eureka/utils/logger"
)

func main() {
	// spec.md §6's two contract commands: `index <input>` and
	// `search <input> <index>`. These are recognized as a leading
	// positional subcommand, ahead of (and independent from) the richer
	// flag-driven surface below.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "index":
			runIndexCommand(os.Args[2:])
			return
		case "search":
			runSearchCommand(os.Args[2:])
			return
		}
	}

	runFlagCLI()
}

// runIndexCommand implements `index <input>`: fingerprint one file and
// write its index-format entry to standard output.
func runIndexCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: eureka index <input>")
		os.Exit(1)
	}

	entry, err := eureka.Fingerprint(args[0])
	if err != nil {
		logger.Error(fmt.Errorf("error indexing %s: %v", args[0], err))
		os.Exit(1)
	}

	if err := libraryio.WriteEntry(os.Stdout, entry); err != nil {
		logger.Error(fmt.Errorf("error writing index entry: %v", err))
		os.Exit(1)
	}
}

// runSearchCommand implements `search <input> <index>`: fingerprint one
// file and search for it in the given index file, printing the match or
// "No match found".
func runSearchCommand(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	verbose := fs.Bool("v", false, "print every top-candidate's score and match count before deciding")
	fs.Parse(args)

	positional := fs.Args()
	if len(positional) != 2 {
		fmt.Fprintln(os.Stderr, "usage: eureka search [-v] <input> <index>")
		os.Exit(1)
	}
	input, indexPath := positional[0], positional[1]

	result, err := eureka.RecognizeAgainstIndex(input, indexPath, *verbose)
	if errs.Is(err, errs.KindNoMatch) {
		fmt.Println("No match found")
		return
	}
	if err != nil {
		logger.Error(fmt.Errorf("error searching %s: %v", input, err))
		os.Exit(1)
	}

	fmt.Printf("match: %s (average score %.2f, %d matching signatures)\n", result.Name, result.AverageScore, result.NumMatches)
}

// runFlagCLI is the teacher's richer flag-driven surface: add to /
// enrich the SQL catalog, list/delete/cleanup it, and live microphone
// recognition, all against the library index path configured in
// configs/config.yaml.
func runFlagCLI() {
	audioFile := flag.String("file", "", "Path to an audio file, or a directory of audio files, to fingerprint and add to the library")
	recognizeFile := flag.String("recognize", "", "Path to an audio file to identify against the library")
	microphoneCmd := flag.Bool("microphone", false, "Listen on the default input device until a confident match is found")
	listCmd := flag.Bool("list", false, "List every track in the library")
	cleanupCmd := flag.Bool("cleanup", false, "Remove catalog entries that never received any fingerprint (requires a SQL catalog)")
	deleteCmd := flag.Int("delete", -1, "Delete a track by its catalog ID (requires a SQL catalog)")
	verbose := flag.Bool("v", false, "print every top-candidate's score and match count before deciding")
	flag.Parse()

	dir, _ := os.Getwd()
	configFilePath := filepath.Join(dir, "configs", "config.yaml")
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Error(fmt.Errorf("failed to load configuration: %v", err))
		os.Exit(1)
	}

	app, err := eureka.NewEureka(*cfg)
	if err != nil {
		logger.Error(fmt.Errorf("error initializing eureka: %v", err))
		os.Exit(1)
	}

	switch {
	case *deleteCmd >= 0:
		if err := app.Delete(*deleteCmd); err != nil {
			logger.Error(fmt.Errorf("error deleting track: %v", err))
			os.Exit(1)
		}

	case *cleanupCmd:
		if err := app.Cleanup(); err != nil {
			logger.Error(fmt.Errorf("error cleaning up catalog: %v", err))
			os.Exit(1)
		}

	case *listCmd:
		runList(app)

	case *microphoneCmd:
		runMicrophone(app, *verbose)

	case *recognizeFile != "":
		runRecognize(app, *recognizeFile, *verbose)

	case *audioFile != "":
		runSave(app, *audioFile)

	default:
		logger.Error(fmt.Errorf("nothing to do: use \"index <input>\"/\"search <input> <index>\" for the standard commands, or pass -file to index audio, -recognize to identify it, -microphone to listen live, or -list to see the library"))
		flag.Usage()
		os.Exit(1)
	}
}

func runList(app *eureka.Eureka) {
	tracks, err := app.List()
	if err != nil {
		logger.Error(fmt.Errorf("error listing tracks: %v", err))
		os.Exit(1)
	}
	if len(tracks) == 0 {
		logger.Info("library is empty")
		return
	}
	logger.Info(fmt.Sprintf("%d track(s) in library:", len(tracks)))
	for _, t := range tracks {
		fmt.Printf("%d | %s | %s - %s | %d signatures\n", t.ID, t.Filename, t.Artist, t.TrackTitle, t.NumSignatures)
	}
}

func runMicrophone(app *eureka.Eureka, verbose bool) {
	result, err := app.RecognizeFromMicrophone(verbose)
	if err != nil {
		logger.Error(fmt.Errorf("error in microphone recognition: %v", err))
		os.Exit(1)
	}
	fmt.Printf("match: %s (average score %.2f, %d matching signatures)\n", result.Name, result.AverageScore, result.NumMatches)
}

func runRecognize(app *eureka.Eureka, path string, verbose bool) {
	result, err := app.Recognize(path, verbose)
	if err != nil {
		logger.Error(fmt.Errorf("error recognizing %s: %v", path, err))
		os.Exit(1)
	}
	fmt.Printf("match: %s (average score %.2f, %d matching signatures)\n", result.Name, result.AverageScore, result.NumMatches)
}

// runSave indexes a single audio file, or every audio file directly
// inside a directory, reporting progress with a bar when there is more
// than one file to process.
func runSave(app *eureka.Eureka, path string) {
	info, err := os.Stat(path)
	if err != nil {
		logger.Error(fmt.Errorf("error reading %s: %v", path, err))
		os.Exit(1)
	}

	if !info.IsDir() {
		if err := app.Save(path); err != nil {
			logger.Error(fmt.Errorf("failed to index %s: %v", path, err))
			os.Exit(1)
		}
		return
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		logger.Error(fmt.Errorf("error reading directory %s: %v", path, err))
		os.Exit(1)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}

	bar := progressbar.Default(int64(len(files)), "indexing")
	var failures int
	for _, f := range files {
		if err := app.Save(f); err != nil {
			logger.Error(fmt.Errorf("failed to index %s: %v", f, err))
			failures++
		}
		bar.Add(1)
	}

	if failures > 0 {
		logger.Info(fmt.Sprintf("indexed %d file(s), %d failure(s)", len(files)-failures, failures))
		os.Exit(1)
	}
	logger.Info(fmt.Sprintf("indexed %d file(s)", len(files)))
}
