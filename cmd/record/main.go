package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/oooAHOYooo/pathr/internal/config"
	"github.com/oooAHOYooo/pathr/internal/recording"
	"github.com/oooAHOYooo/pathr/internal/shared/format"
	"github.com/oooAHOYooo/pathr/internal/store"
)

// record is a terminal trip recorder. It reads one command per line:
//
//	<lat> <lng>   append a GPS fix
//	pause         pause recording
//	resume        resume recording
//	status        print the live status line
//
// EOF stops the recording and persists the trip to the local store.
func main() {
	cfg := config.Load()

	dir := cfg.TripStoreDir
	if dir == "" {
		dir = "pathr-data"
	}
	storage, err := store.NewFileStorage(dir)
	if err != nil {
		log.Fatalf("open trip store: %v", err)
	}

	if err := run(os.Stdin, os.Stdout, store.NewTripStore(storage)); err != nil {
		log.Fatalf("record: %v", err)
	}
}

func run(in io.Reader, out io.Writer, trips *store.TripStore) error {
	rec := recording.NewRecorder(trips)
	rec.Start()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
		case line == "pause":
			rec.Pause()
		case line == "resume":
			rec.Resume()
		case line == "status":
			fmt.Fprintln(out, rec.StatusText())
		default:
			lat, lng, err := parseFix(line)
			if err != nil {
				fmt.Fprintf(out, "skipping %q: %v\n", line, err)
				continue
			}
			rec.AddPoint(lat, lng)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	stored, err := rec.Stop()
	if err != nil {
		return err
	}
	if stored == nil {
		fmt.Fprintln(out, "nothing to save")
		return nil
	}

	var meters, seconds float64
	if stored.Trip.DistanceMeters != nil {
		meters = *stored.Trip.DistanceMeters
	}
	if stored.Trip.DurationSeconds != nil {
		seconds = float64(*stored.Trip.DurationSeconds)
	}
	fmt.Fprintf(out, "saved trip %s: %s in %s\n",
		stored.Trip.ID, format.FormatDistanceMiles(meters), format.FormatDurationSeconds(seconds))
	return nil
}

func parseFix(line string) (float64, float64, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("want \"lat lng\"")
	}
	lat, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, err
	}
	lng, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}
