// cmd/annot2seq/main.go
package main

import (
	"seqannot/internal/annotapp"
	"seqannot/internal/appshell"
)

func main() { appshell.Main(annotapp.RunContext) }
