package testutil

import (
	"database/sql"
	"fmt"
	"math/rand"
	"testing"

	_ "modernc.org/sqlite"
)

// RandomSwitch returns a function that will output various integers at different weights.
//
// Ex. RandomSwitch(2, 3, 5) will return a function that will output:
//   - `0` 20% of the time
//   - `1` 30% of the time
//   - `2` 50% of the time
func RandomSwitch(weights ...int) func(rndm *rand.Rand) int {
	if len(weights) == 0 {
		panic("a random switch must have at least 1 probability")
	}

	var sum int
	for _, p := range weights {
		if p <= 0 {
			panic("weights must be positive")
		}
		sum += p
	}

	return func(rndm *rand.Rand) int {
		value := rndm.Intn(sum)
		for i, w := range weights {
			if value < w {
				return i
			}
			value -= w
		}
		panic(fmt.Sprintf("random value generated was out of bounds: %d", value))
	}
}

// RandomString generates a random string with uppercase and lowercase
// letters given the pseudo random source.
func RandomString(rndm *rand.Rand, length int) string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	str := make([]byte, length)
	for i := range length {
		str[i] = letters[rndm.Intn(len(letters))]
	}
	return string(str)
}

// OpenMemoryDB opens an in-memory sqlite database with `schema` applied,
// the database is closed when the test ends.
func OpenMemoryDB(t testing.TB, schema string) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// every connection to :memory: is its own database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		db.Close()
	})

	_, err = db.Exec(schema)
	if err != nil {
		t.Fatal(err)
	}
	return db
}
