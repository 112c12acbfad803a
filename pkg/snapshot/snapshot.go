// Package snapshot compares JSON renderings of values against files in testdata/
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var (
	mu        sync.Mutex
	funcCount = make(map[string]int)
)

// ValidateSnapshot performs snapshot testing
// The first run writes testdata/<func>-<n>.json, later runs compare against it.
// depth is the number of helper frames between the test and this call.
func ValidateSnapshot(t *testing.T, obj interface{}, depth int, msgAndArgs ...interface{}) {
	t.Helper()
	filename := nextFilename(1 + depth)

	objJSON, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatalf("could not encode snapshot: %v", err)
	}

	expects, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			create(t, filename, objJSON)
			return
		}

		t.Fatalf("could not read snapshot %s: %v", filename, err)
	}

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(objJSON), "\n"), msgAndArgs...) {
		t.Logf("snapshot %s", filename)
	}
}

func nextFilename(skip int) string {
	pc, _, _, _ := runtime.Caller(skip + 1)
	funcName := filepath.Base(runtime.FuncForPC(pc).Name())

	mu.Lock()
	call := funcCount[funcName]
	funcCount[funcName] = call + 1
	mu.Unlock()

	return filepath.Join("testdata", fmt.Sprintf("%s-%d.json", funcName, call))
}

func create(t *testing.T, filename string, data []byte) {
	t.Helper()
	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		t.Fatalf("could not create snapshot directory: %v", err)
	}

	if err := os.WriteFile(filename, append(data, '\n'), 0644); err != nil {
		t.Fatalf("could not write snapshot: %v", err)
	}
}
