package commonlexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/commonlexer/commonlexer/ascii"
)

type FormatToken int

const (
	FormatToken_None FormatToken = iota
	FormatToken_Name
	FormatToken_Location
	FormatToken_Literal
)

type FormatFunc[T any] func(input string, token T) string

type treePrinter[T any] struct {
	padStr *[]string
	output *strings.Builder
	format FormatFunc[T]
}

func newTreePrinter[T any](format FormatFunc[T]) *treePrinter[T] {
	return &treePrinter[T]{
		padStr: &[]string{},
		output: &strings.Builder{},
		format: format,
	}
}

func (tp *treePrinter[T]) indent(s string) {
	*tp.padStr = append(*tp.padStr, s)
}

func (tp *treePrinter[T]) unindent() {
	index := len(*tp.padStr) - 1
	*tp.padStr = (*tp.padStr)[:index]
}

func (tp *treePrinter[T]) padding() {
	for _, item := range *tp.padStr {
		tp.write(item)
	}
}

func (tp *treePrinter[T]) writel(s string) {
	tp.write(s)
	tp.output.WriteRune('\n')
}

func (tp *treePrinter[T]) write(s string) {
	tp.output.WriteString(s)
}

func (tp *treePrinter[T]) pwrite(s string) {
	tp.padding()
	tp.write(s)
}

var nodePrinterTheme = map[FormatToken]string{
	FormatToken_None:     ascii.Reset,
	FormatToken_Name:     ascii.DefaultTheme.Accent,
	FormatToken_Location: ascii.DefaultTheme.Span,
	FormatToken_Literal:  ascii.DefaultTheme.Literal,
}

// nodePrinter renders a parse tree one node per line:
//
//	RuleName (line:col -> line:col) = "text"
//
// The text is only shown for nodes that don't span multiple lines.
type nodePrinter struct {
	src   *SourceText
	names func(RuleID) string
	*treePrinter[FormatToken]
}

func newNodePrinter(src *SourceText, names func(RuleID) string, format FormatFunc[FormatToken]) *nodePrinter {
	return &nodePrinter{
		src:         src,
		names:       names,
		treePrinter: newTreePrinter(format),
	}
}

func (np *nodePrinter) visit(n *Node) {
	np.write(np.format(np.names(n.RuleID), FormatToken_Name))
	np.write(" ")
	np.write(np.format(fmt.Sprintf("(%s)", n.Span.Location(np.src)), FormatToken_Location))
	if text := n.Text(np.src); !strings.ContainsRune(text, '\n') && n.Span.Start.Line(np.src) == n.Span.End.Line(np.src) {
		np.write(" = ")
		np.write(np.format(strconv.Quote(text), FormatToken_Literal))
	}
	np.writel("")

	for i, child := range n.Children {
		switch {
		case i == len(n.Children)-1:
			np.pwrite("└── ")
			np.indent("    ")
			np.visit(child)
			np.unindent()
		default:
			np.pwrite("├── ")
			np.indent("│   ")
			np.visit(child)
			np.unindent()
		}
	}
}
