// Command levellint checks a level catalog file before it ships:
// every record is parsed and each malformed exercise is reported with
// its level, index and reason. Exit status 1 when anything failed.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"rse-quest/internal/catalog"
)

func main() {
	path := flag.String("file", "data/levels.json", "path of the level catalog JSON file")
	flag.Parse()

	data, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "levellint: %v\n", err)
		os.Exit(1)
	}

	var record catalog.CatalogRecord
	if err := json.Unmarshal(data, &record); err != nil {
		fmt.Fprintf(os.Stderr, "levellint: %s: %v\n", *path, err)
		os.Exit(1)
	}

	failures := 0
	exercises := 0
	seenLevels := map[int]bool{}
	for _, level := range record.Levels {
		if level.LevelID < 1 {
			fmt.Printf("level %d: id must be positive\n", level.LevelID)
			failures++
		}
		if seenLevels[level.LevelID] {
			fmt.Printf("level %d: duplicate level id\n", level.LevelID)
			failures++
		}
		seenLevels[level.LevelID] = true

		if len(level.Exercises) == 0 {
			fmt.Printf("level %d: no exercises\n", level.LevelID)
			failures++
			continue
		}

		for i, rec := range level.Exercises {
			exercises++
			if _, err := catalog.ParseExercise(rec); err != nil {
				fmt.Printf("level %d, exercise %d (%s): %v\n", level.LevelID, i, rec.ExerciseType, err)
				failures++
			}
		}
	}

	fmt.Printf("%s: %d levels, %d exercises, %d problems\n", *path, len(record.Levels), exercises, failures)
	if failures > 0 {
		os.Exit(1)
	}
}
