// Package cli implements the sidenav subcommands. Each command is a kong
// struct with a Run method taking the shared *Context.
package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/MrSnakeDoc/sidenav/internal/domain"
	"github.com/MrSnakeDoc/sidenav/internal/sources/vuepress"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// Context is handed to every command's Run method.
type Context struct {
	Out io.Writer
	Err io.Writer
}

// loadFile reads, maps and loads a navigation file. The store is returned
// even when err carries violations, mirroring domain.Load.
func loadFile(path string) (*vuepress.Document, *domain.Store, error) {
	doc, err := vuepress.NewLoader(path).Load()
	if err != nil {
		return nil, nil, err
	}
	raw, err := vuepress.NewMapper().MapConfig(doc.File)
	if err != nil {
		return doc, nil, err
	}
	store, err := domain.Load(raw)
	return doc, store, err
}

// mustLoad is loadFile for commands that need a valid store.
func mustLoad(path string) (*domain.Store, error) {
	_, store, err := loadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s is not valid, run `sidenav validate %s`: %w", path, path, err)
	}
	return store, nil
}
