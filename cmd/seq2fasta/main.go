// cmd/seq2fasta/main.go
package main

import (
	"seqannot/internal/appshell"
	"seqannot/internal/extractapp"
)

func main() { appshell.Main(extractapp.RunContext) }
