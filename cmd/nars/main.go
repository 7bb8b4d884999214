// Command nars records one fixed belief in a fresh memory, prints the
// memory as JSON and writes it to testmem.json.
package main

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/ntoxeg/narst/internal/logging"
	"github.com/ntoxeg/narst/pkg/narst/memory"
	"github.com/ntoxeg/narst/pkg/narst/nal"
)

const memoryFile = "testmem.json"

func main() {
	logger := logging.Must("info")
	defer func() { _ = logger.Sync() }()

	mem := memory.New()
	mem.Add("rA9.", nal.MustTruthValue(0.8, 0.9), nil)

	out, err := json.MarshalIndent(mem, "", "  ")
	if err != nil {
		logger.Error("encode memory", zap.Error(err))
		return
	}
	fmt.Println(string(out))

	if err := memory.Store(memoryFile, mem); err != nil {
		logger.Error("store memory", zap.String("path", memoryFile), zap.Error(err))
	}
}
