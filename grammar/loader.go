package grammar

import (
	"fmt"
	"os"

	cl "github.com/commonlexer/commonlexer"
)

// Loader retrieves the text of grammar files
type Loader interface {
	Load(path string) (*cl.SourceText, error)
}

// FileLoader reads grammar files from the file system
type FileLoader struct{}

func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

func (l *FileLoader) Load(path string) (*cl.SourceText, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return cl.NewSourceTextFromBytes(path, data), nil
}

// MemoryLoader serves grammar files registered with Add
type MemoryLoader struct{ files map[string][]byte }

func NewMemoryLoader() *MemoryLoader {
	return &MemoryLoader{files: map[string][]byte{}}
}

func (l *MemoryLoader) Add(path string, content []byte) {
	l.files[path] = content
}

func (l *MemoryLoader) Load(path string) (*cl.SourceText, error) {
	b, ok := l.files[path]
	if !ok {
		return nil, fmt.Errorf("grammar not found: %s", path)
	}
	return cl.NewSourceTextFromBytes(path, b), nil
}

// Load reads the grammar file at `path` with `loader` and compiles it
func Load(loader Loader, path string, opts ...CompileOption) (*Grammar, error) {
	src, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load grammar: %w", err)
	}
	return CompileSource(src, opts...)
}
