package converter

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// FindSourceFiles lists .gltf and .glb files directly under dir.
func FindSourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "read dir")
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && FormatOf(e.Name()).IsSource() {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// ExpandPaths replaces every directory in paths with the source files it contains.
func ExpandPaths(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		st, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", p)
		}
		if !st.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := FindSourceFiles(p)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// ConvertFiles converts files with Concurrency workers. A failure is logged
// and does not stop the other files.
func (c *Converter) ConvertFiles(files []string) (int, int) {
	var (
		wg      sync.WaitGroup
		counter struct {
			sync.Mutex
			success, failed int
		}
	)

	tasks := make(chan string, len(files))
	for _, file := range files {
		tasks <- file
	}
	close(tasks)

	for i := 0; i < c.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range tasks {
				_, err := c.ConvertFile(file)
				counter.Lock()
				if err != nil {
					counter.failed++
					log.Printf("convert failed: %s: %v", file, err)
				} else {
					counter.success++
				}
				counter.Unlock()
			}
		}()
	}

	wg.Wait()
	return counter.success, counter.failed
}
