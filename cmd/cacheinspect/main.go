package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/cinepick/cinepick-server/internal/domain"
)

const ratingPrefix = "rating:movie:"

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/CinePick/data/db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Rating Cache Inspection ===")
	fmt.Println()

	total := 0
	withRating := 0
	withIDOnly := 0
	unresolved := 0
	shown := 0

	err = db.View(func(txn *badger.Txn) error {
		iopts := badger.DefaultIteratorOptions
		iopts.Prefix = []byte(ratingPrefix)
		it := txn.NewIterator(iopts)
		defer it.Close()

		for it.Seek([]byte(ratingPrefix)); it.ValidForPrefix([]byte(ratingPrefix)); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(val []byte) error {
				var rec domain.RatingRecord
				if err := json.Unmarshal(val, &rec); err != nil {
					return err
				}

				total++
				switch {
				case rec.IMDBRating != nil:
					withRating++
				case rec.IMDBID != nil:
					withIDOnly++
				default:
					unresolved++
				}

				// Show the first few records
				if shown < 10 {
					shown++
					fmt.Printf("Movie: %s\n", rec.TMDBID)
					if rec.IMDBID != nil {
						fmt.Printf("  IMDb ID: %s\n", *rec.IMDBID)
					} else {
						fmt.Printf("  IMDb ID: (none)\n")
					}
					if rec.IMDBRating != nil {
						fmt.Printf("  IMDb Rating: %.1f\n", *rec.IMDBRating)
					} else {
						fmt.Printf("  IMDb Rating: (none)\n")
					}
					fmt.Println()
				}

				return nil
			})
			if err != nil {
				log.Printf("Error reading record %s: %v", key, err)
			}
		}

		return nil
	})
	if err != nil {
		log.Fatalf("Failed to scan database: %v", err)
	}

	fmt.Println("=== Summary ===")
	fmt.Printf("Total cached movies:      %d\n", total)
	fmt.Printf("  With IMDb rating:       %d\n", withRating)
	fmt.Printf("  IMDb ID but no rating:  %d\n", withIDOnly)
	fmt.Printf("  No IMDb cross-ref:      %d\n", unresolved)

	// Genre list cache
	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("genres:list"))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var cached struct {
				Genres []domain.Genre `json:"genres"`
			}
			if err := json.Unmarshal(val, &cached); err != nil {
				return err
			}
			fmt.Printf("Cached genres:            %d\n", len(cached.Genres))
			return nil
		})
	})
	if err != nil {
		fmt.Println("Cached genres:            (none)")
	}
}
