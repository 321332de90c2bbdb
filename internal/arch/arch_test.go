// internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

const module = "seqannot/"

type pkg struct {
	ImportPath string
	Imports    []string
}

// front is everything that knows about flags, prompts or process exit.
var front = []string{
	module + "internal/cli", module + "internal/cliutil", module + "internal/appshell",
	module + "internal/annotapp", module + "internal/extractapp", module + "cmd/",
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	bans := map[string][]string{
		module + "internal/seqfile":   append([]string{module + "internal/annot", module + "internal/store", module + "internal/writers"}, front...),
		module + "internal/translate": append([]string{module + "internal/seqfile", module + "internal/store"}, front...),
		module + "internal/store":     append([]string{module + "internal/seqfile", module + "internal/annot"}, front...),
		module + "internal/annot":     append([]string{module + "internal/seqfile", module + "internal/merge"}, front...),
		module + "internal/merge":     append([]string{module + "internal/store", module + "internal/writers"}, front...),
		module + "internal/extract":   append([]string{module + "internal/annot", module + "internal/store"}, front...),
		module + "internal/report":    front,
		module + "internal/writers":   front,
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		forbidden, ok := bans[p.ImportPath]
		if !ok {
			continue
		}
		for _, dep := range p.Imports {
			for _, ban := range forbidden {
				if strings.HasPrefix(dep, ban) {
					violations = append(violations, p.ImportPath+" → "+dep)
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
