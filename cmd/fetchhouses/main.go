// Command fetchhouses downloads a street configuration directory from a
// remote source (git repo subdirectory, http archive, or local path) into a
// local directory and validates every street file it finds.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	get "github.com/hashicorp/go-getter"

	"github.com/suburbsim/street-layout-engine/internal/config"
)

func main() {
	var (
		src = flag.String("src", "", "source url (go-getter syntax, e.g. git::https://host/repo.git//streets)")
		out = flag.String("o", "./streets", "output dir path")
	)
	flag.Parse()

	if *src == "" {
		log.Fatal("source url required")
	}
	if *out == "" {
		log.Fatal("output dir path required")
	}

	if err := os.RemoveAll(*out); err != nil {
		log.Fatal(err)
	}

	log.Printf("start downloading streets to %s", *out)
	if err := get.Get(*out, *src); err != nil {
		log.Fatal(err)
	}

	streets, err := validateDir(*out)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("done: %d street files validated in %s", streets, *out)
}

// validateDir loads every .json file under dir as a street definition and
// fails on the first invalid one.
func validateDir(dir string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		street, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		log.Printf("%s: street %q with %d houses", path, street.Seed, len(street.Houses))
		count++
		return nil
	})
	return count, err
}
