// Copyright © 2025 The failtrace authors

package main

import "github.com/quillsoft/failtrace/cmd"

func main() {
	cmd.Execute()
}
